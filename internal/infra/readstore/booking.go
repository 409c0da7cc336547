package readstore

import (
	"context"
	"time"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/domain/schedule"
	"fieldbook/internal/infra"
	"fieldbook/internal/infra/db"
	"fieldbook/internal/usecase/queries"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

var _ queries.BookingReadStore = (*BookingReadStore)(nil)

type bookingRow struct {
	ID             uuid.UUID
	FieldID        uuid.UUID
	FieldName      string
	AcademyID      uuid.UUID
	BookedBy       uuid.UUID
	StartTime      time.Time
	EndTime        time.Time
	Status         string
	TotalCostCents int64
	Note           *string
	MatchID        *uuid.UUID
	RefundEligible bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const findBookingByIDSQL = `
SELECT b.id, b.field_id, f.name AS field_name, f.academy_id, b.booked_by,
       b.start_time, b.end_time, b.status, b.total_cost_cents,
       b.note, b.match_id, b.refund_eligible, b.created_at, b.updated_at
FROM bookings b
JOIN fields f ON f.id = b.field_id
WHERE b.id = $1 AND b.is_active`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var row bookingRow
	err := r.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&row.ID, &row.FieldID, &row.FieldName, &row.AcademyID, &row.BookedBy,
		&row.StartTime, &row.EndTime, &row.Status, &row.TotalCostCents,
		&row.Note, &row.MatchID, &row.RefundEligible, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view := &queries.BookingView{}
	if err := copier.Copy(view, &row); err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking row", err)
	}
	view.TotalCost = booking.NewMoney(row.TotalCostCents).String()
	return view, nil
}

const findBookingsByUserSQL = `
SELECT b.id, b.field_id, f.name AS field_name, b.start_time, b.end_time,
       b.status, b.total_cost_cents, b.created_at
FROM bookings b
JOIN fields f ON f.id = b.field_id
WHERE b.booked_by = $1 AND b.is_active
ORDER BY b.start_time DESC`

func (r *BookingReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, findBookingsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by user", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		item := &queries.BookingListItem{}
		var cents int64
		if err := rows.Scan(
			&item.ID, &item.FieldID, &item.FieldName, &item.StartTime, &item.EndTime,
			&item.Status, &cents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		item.TotalCost = booking.NewMoney(cents).String()
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return result, nil
}

const dayScheduleSQL = `
SELECT id, start_time, end_time, status
FROM bookings
WHERE field_id = $1
  AND is_active
  AND status IN ('pending', 'confirmed')
  AND start_time < $3
  AND end_time > $2
ORDER BY start_time`

func (r *BookingReadStore) DaySchedule(ctx context.Context, fieldID uuid.UUID, dayStart, dayEnd time.Time) ([]queries.DayScheduleEntry, error) {
	rows, err := r.db.Query(ctx, dayScheduleSQL, fieldID, dayStart, dayEnd)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load day schedule", err)
	}
	defer rows.Close()

	var result []queries.DayScheduleEntry
	for rows.Next() {
		var e queries.DayScheduleEntry
		if err := rows.Scan(&e.BookingID, &e.StartTime, &e.EndTime, &e.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule entry", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate schedule", err)
	}
	return result, nil
}

// Overlap with the report window is clipped so a booking straddling the
// boundary only contributes the hours inside it.
const bookedSecondsSQL = `
SELECT COALESCE(SUM(EXTRACT(EPOCH FROM (LEAST(end_time, $3) - GREATEST(start_time, $2)))), 0)::bigint,
       COUNT(*)
FROM bookings
WHERE field_id = $1
  AND is_active
  AND status IN ('confirmed', 'completed')
  AND start_time < $3
  AND end_time > $2`

func (r *BookingReadStore) BookedSecondsBetween(ctx context.Context, fieldID uuid.UUID, from, to time.Time) (int64, int, error) {
	var seconds int64
	var count int
	err := r.db.QueryRow(ctx, bookedSecondsSQL, fieldID, from, to).Scan(&seconds, &count)
	if err != nil {
		return 0, 0, infra.WrapRepoErr("failed to sum booked time", err)
	}
	return seconds, count, nil
}

const dueRemindersSQL = `
SELECT id, field_id, booked_by, start_time, end_time
FROM bookings
WHERE is_active
  AND status = 'confirmed'
  AND start_time >= $1
  AND start_time < $2
ORDER BY start_time`

func (r *BookingReadStore) DueReminders(ctx context.Context, from, to time.Time) ([]queries.ReminderCandidate, error) {
	rows, err := r.db.Query(ctx, dueRemindersSQL, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find due reminders", err)
	}
	defer rows.Close()

	var result []queries.ReminderCandidate
	for rows.Next() {
		var c queries.ReminderCandidate
		if err := rows.Scan(&c.BookingID, &c.FieldID, &c.BookedBy, &c.StartTime, &c.EndTime); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reminder candidate", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reminders", err)
	}
	return result, nil
}

const bookingSnapshotSQL = `
SELECT id, field_id, booked_by, start_time, end_time, status, total_cost_cents,
       note, match_id, refund_eligible, is_active, created_at, updated_at
FROM bookings
WHERE id = $1 AND is_active`

// SnapshotByID is the command-side read used for domain reconstruction.
func (r *BookingReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var snap shared.BookingSnapshot
	err := r.db.QueryRow(ctx, bookingSnapshotSQL, id).Scan(
		&snap.ID, &snap.FieldID, &snap.BookedBy, &snap.StartTime, &snap.EndTime,
		&snap.Status, &snap.TotalCostCents, &snap.Note, &snap.MatchID,
		&snap.RefundEligible, &snap.IsActive, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking snapshot", err)
	}
	return &snap, nil
}

// Blocking overlap predicate: half-open intervals overlap when each starts
// before the other ends.
const blockingForSQL = `
SELECT id, start_time, end_time, status
FROM bookings
WHERE field_id = $1
  AND is_active
  AND status IN ('pending', 'confirmed')
  AND start_time < $3
  AND end_time > $2
ORDER BY start_time`

// BlockingFor lists every booking that can clash inside window. The gateway
// calls it under the field lock; availability reads call it through the
// read-only unit of work.
func (r *BookingReadStore) BlockingFor(ctx context.Context, fieldID uuid.UUID, window booking.Interval) ([]schedule.Busy, error) {
	rows, err := r.db.Query(ctx, blockingForSQL, fieldID, window.Start(), window.End())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find blocking bookings", err)
	}
	defer rows.Close()

	return scanBusy(rows)
}

type busyScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanBusy(rows busyScanner) ([]schedule.Busy, error) {
	var result []schedule.Busy
	for rows.Next() {
		var (
			id         uuid.UUID
			start, end time.Time
			status     string
		)
		if err := rows.Scan(&id, &start, &end, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan busy row", err)
		}
		iv, err := booking.NewInterval(start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has invalid interval", err)
		}
		result = append(result, schedule.Busy{
			BookingID: id,
			Status:    booking.Status(status),
			Interval:  iv,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate busy rows", err)
	}
	return result, nil
}
