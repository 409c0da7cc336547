//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestField(t *testing.T, db DBLike, name string, rateCents int64) uuid.UUID {
	t.Helper()

	fieldID := uuid.New()
	academyID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO fields (id, academy_id, name, hourly_rate_cents, open_minute, close_minute, is_available, is_active)
		VALUES ($1, $2, $3, $4, 480, 1320, true, true)`,
		fieldID, academyID, name, rateCents)
	require.NoError(t, err)

	return fieldID
}

func CreateTestBooking(t *testing.T, db DBLike, fieldID, bookedBy uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO bookings (id, field_id, booked_by, start_time, end_time, status, total_cost_cents, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, 0, true)`,
		bookingID, fieldID, bookedBy, start, end, status)
	require.NoError(t, err)

	return bookingID
}

func DisableField(t *testing.T, db DBLike, fieldID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE fields SET is_available = false WHERE id = $1", fieldID)
	require.NoError(t, err)
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so every subtest starts from an empty schedule
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
