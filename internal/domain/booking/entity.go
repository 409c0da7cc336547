package booking

import (
	"time"

	"fieldbook/internal/domain/actor"

	"github.com/google/uuid"
)

// Booking is a reservation of a field for a half-open interval. Destruction
// is always logical (cancelled status or is_active=false) so audit history
// survives.
type Booking struct {
	id             uuid.UUID
	fieldID        uuid.UUID
	bookedBy       uuid.UUID
	interval       Interval
	status         Status
	totalCost      Money
	note           Note
	matchID        *uuid.UUID
	refundEligible bool
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

func newBooking(fieldID, bookedBy uuid.UUID, iv Interval, cost Money, note Note, matchID *uuid.UUID) *Booking {
	return &Booking{
		id:        uuid.New(),
		fieldID:   fieldID,
		bookedBy:  bookedBy,
		interval:  iv,
		status:    StatusPending,
		totalCost: cost,
		note:      note,
		matchID:   matchID,
		isActive:  true,
	}
}

func Reconstruct(
	id, fieldID, bookedBy uuid.UUID,
	iv Interval,
	status Status,
	totalCost Money,
	note Note,
	matchID *uuid.UUID,
	refundEligible, isActive bool,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		fieldID:        fieldID,
		bookedBy:       bookedBy,
		interval:       iv,
		status:         status,
		totalCost:      totalCost,
		note:           note,
		matchID:        matchID,
		refundEligible: refundEligible,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// IsBlocking reports whether this booking occupies its slot: pending or
// confirmed, and not soft-deleted. Only blocking bookings ever conflict.
func (b *Booking) IsBlocking() bool {
	return b.isActive && b.status.IsBlocking()
}

func (b *Booking) HasEnded(now time.Time) bool {
	return !now.Before(b.interval.End())
}

// Confirm moves pending -> confirmed. Manager capability required.
func (b *Booking) Confirm(by actor.Actor) error {
	if !by.CanManageField() {
		return ErrActorNotAllowed
	}
	next, err := NextStatus(b.status, EventConfirm)
	if err != nil {
		return err
	}
	b.status = next
	return nil
}

// Cancel is legal from pending or confirmed, by the requester or a manager,
// and only before the booking has started being in the past.
func (b *Booking) Cancel(by actor.Actor, now time.Time) error {
	if !by.CanCancel(b.bookedBy) {
		return ErrActorNotAllowed
	}
	next, err := NextStatus(b.status, EventCancel)
	if err != nil {
		return err
	}
	if b.HasEnded(now) {
		return ErrBookingInPast
	}
	// Confirmed bookings were already charged; flag them for refund review.
	b.refundEligible = b.status == StatusConfirmed
	b.status = next
	return nil
}

// Complete moves confirmed -> completed once the interval has elapsed, or
// earlier when a manager overrides.
func (b *Booking) Complete(by actor.Actor, now time.Time, override bool) error {
	if !by.CanManageField() {
		return ErrActorNotAllowed
	}
	next, err := NextStatus(b.status, EventComplete)
	if err != nil {
		return err
	}
	if !b.HasEnded(now) && !override {
		return ErrBookingNotEnded
	}
	b.status = next
	return nil
}

// Reschedule swaps the interval and cost snapshot in place. The conflict
// re-check against the new interval is the gateway's responsibility; the
// entity only enforces the state machine.
func (b *Booking) Reschedule(iv Interval, cost Money) error {
	if _, err := NextStatus(b.status, EventModify); err != nil {
		return err
	}
	b.interval = iv
	b.totalCost = cost
	return nil
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) FieldID() uuid.UUID   { return b.fieldID }
func (b *Booking) BookedBy() uuid.UUID  { return b.bookedBy }
func (b *Booking) Interval() Interval   { return b.interval }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) TotalCost() Money     { return b.totalCost }
func (b *Booking) Note() Note           { return b.note }
func (b *Booking) MatchID() *uuid.UUID  { return b.matchID }
func (b *Booking) RefundEligible() bool { return b.refundEligible }
func (b *Booking) IsActive() bool       { return b.isActive }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
