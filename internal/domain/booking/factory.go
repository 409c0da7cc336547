package booking

import (
	"errors"

	"fieldbook/internal/domain/field"
	"fieldbook/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrFieldNotBookable = errors.New("field is not open for booking")
	ErrIntervalInPast   = errors.New("booking interval cannot start in the past")
	ErrActorNotAllowed  = errors.New("actor lacks permission for this transition")
	ErrBookingInPast    = errors.New("booking interval is already in the past")
	ErrBookingNotEnded  = errors.New("booking interval has not ended yet")
)

type Factory struct {
	Clock          clock.Clock
	CostCalculator CostCalculator
}

func NewFactory(clk clock.Clock, calc CostCalculator) *Factory {
	return &Factory{
		Clock:          clk,
		CostCalculator: calc,
	}
}

// CreateBooking builds a pending booking with the cost snapshotted at the
// field's current rate. Conflict detection is not done here; the gateway
// runs it inside the same transaction as the insert.
func (f *Factory) CreateBooking(
	fld *field.Field,
	bookedBy uuid.UUID,
	iv Interval,
	note Note,
	matchID *uuid.UUID,
) (*Booking, error) {
	if !fld.Bookable() {
		return nil, ErrFieldNotBookable
	}
	if iv.Start().Before(f.Clock.Now()) {
		return nil, ErrIntervalInPast
	}

	cost, err := f.CostCalculator.Cost(fld, iv)
	if err != nil {
		return nil, err
	}

	return newBooking(fld.ID(), bookedBy, iv, cost, note, matchID), nil
}

// PriceInterval recomputes a cost snapshot for a reschedule.
func (f *Factory) PriceInterval(fld *field.Field, iv Interval) (Money, error) {
	return f.CostCalculator.Cost(fld, iv)
}
