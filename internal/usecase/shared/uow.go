package shared

import (
	"context"
	"time"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/domain/schedule"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction so multi-statement reads see
	// one consistent snapshot
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads CommandReads) error) error
}

// Tx is the per-transaction repository set. LockField is the per-resource
// critical section: it blocks until this transaction holds the field's
// write lock or the configured timeout elapses (KindLockTimeout).
type Tx interface {
	LockField(ctx context.Context, fieldID uuid.UUID) error
	Bookings() BookingRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CommandReads interface {
	FieldByID(ctx context.Context, id uuid.UUID) (*FieldSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// BlockingBookings returns every pending/confirmed active booking for
	// the field that overlaps window, ordered by start time.
	BlockingBookings(ctx context.Context, fieldID uuid.UUID, window booking.Interval) ([]schedule.Busy, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
	UpdateInterval(ctx context.Context, b *booking.Booking) error
	// CountOverlapping is the post-write invariant assertion: the number of
	// blocking bookings overlapping iv, excluding excludeID.
	CountOverlapping(ctx context.Context, fieldID uuid.UUID, iv booking.Interval, excludeID uuid.UUID) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, dedupeKey string, runAt time.Time) error
}

// Minimal snapshots for command-side reads.

type FieldSnapshot struct {
	ID          uuid.UUID
	AcademyID   uuid.UUID
	Name        string
	RateCents   int64
	OpenMinute  *int32
	CloseMinute *int32
	IsAvailable bool
	IsActive    bool
}

type BookingSnapshot struct {
	ID             uuid.UUID
	FieldID        uuid.UUID
	BookedBy       uuid.UUID
	StartTime      time.Time
	EndTime        time.Time
	Status         string
	TotalCostCents int64
	Note           *string
	MatchID        *uuid.UUID
	RefundEligible bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
