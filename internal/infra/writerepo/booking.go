package writerepo

import (
	"context"
	"errors"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/infra"
	"fieldbook/internal/infra/db"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeForeignKeyViolated = "23503"
	pgErrCodeExclusionViolation = "23P01"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

var _ shared.BookingRepository = (*BookingRepository)(nil)

const createBookingSQL = `
INSERT INTO bookings (
    id, field_id, booked_by, start_time, end_time,
    status, total_cost_cents, note, match_id, refund_eligible, is_active
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	var note *string
	if !b.Note().IsEmpty() {
		v := b.Note().String()
		note = &v
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx, createBookingSQL,
		b.ID(), b.FieldID(), b.BookedBy(),
		b.Interval().Start(), b.Interval().End(),
		b.Status().String(), b.TotalCost().Cents(),
		note, b.MatchID(), b.RefundEligible(), b.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapBookingWriteErr("failed to create booking", err)
	}
	return id, nil
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2, refund_eligible = $3, updated_at = now()
WHERE id = $1 AND is_active`

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingStatusSQL, b.ID(), b.Status().String(), b.RefundEligible())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const updateBookingIntervalSQL = `
UPDATE bookings
SET start_time = $2, end_time = $3, total_cost_cents = $4, updated_at = now()
WHERE id = $1 AND is_active`

func (r *BookingRepository) UpdateInterval(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingIntervalSQL,
		b.ID(), b.Interval().Start(), b.Interval().End(), b.TotalCost().Cents())
	if err != nil {
		return wrapBookingWriteErr("failed to update booking interval", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const countOverlappingSQL = `
SELECT count(*)
FROM bookings
WHERE field_id = $1
  AND id <> $4
  AND is_active
  AND status IN ('pending', 'confirmed')
  AND start_time < $3
  AND end_time > $2`

func (r *BookingRepository) CountOverlapping(ctx context.Context, fieldID uuid.UUID, iv booking.Interval, excludeID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, countOverlappingSQL, fieldID, iv.Start(), iv.End(), excludeID).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}
	return n, nil
}

func wrapBookingWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeExclusionViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolated:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
