package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fieldbook/internal/domain/actor"
	"fieldbook/internal/domain/booking"
	"fieldbook/internal/domain/field"
	"fieldbook/internal/domain/schedule"
	"fieldbook/internal/infra"
	"fieldbook/internal/pkg/clock"
	"fieldbook/internal/pkg/config"
	"fieldbook/internal/pkg/errs"
	"fieldbook/internal/usecase/queries"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// ConflictError is the expected negative result of a reservation attempt:
// it carries every clashing booking plus ranked alternatives. Not a fault.
type ConflictError struct {
	Conflicts   []queries.BookingSummary
	Suggestions []queries.IntervalView
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested interval conflicts with %d booking(s)", len(e.Conflicts))
}

type CreateBookingParams struct {
	FieldID  uuid.UUID
	BookedBy uuid.UUID // zero value books for the actor themself
	Start    time.Time
	End      time.Time
	Note     *string
	MatchID  *uuid.UUID
}

type TransitionParams struct {
	Event    booking.Event
	Override bool // manager override for early completion
}

// BookingCommands is the scheduling gateway. Every mutating operation runs
// lock-then-verify-then-write inside one transaction so the conflict check
// and the write are atomic per field.
type BookingCommands interface {
	Create(ctx context.Context, params CreateBookingParams, by actor.Actor) (*queries.BookingView, error)
	Transition(ctx context.Context, bookingID uuid.UUID, params TransitionParams, by actor.Actor) (*queries.BookingView, error)
	Reschedule(ctx context.Context, bookingID uuid.UUID, start, end time.Time, by actor.Actor) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow       shared.UnitOfWork
	factory   *booking.Factory
	suggester *schedule.Suggester
	views     queries.BookingQueries
	clock     clock.Clock
	cfg       config.BookingConfig
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	suggester *schedule.Suggester,
	views queries.BookingQueries,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:       uow,
		factory:   factory,
		suggester: suggester,
		views:     views,
		clock:     clk,
		cfg:       cfg,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, params CreateBookingParams, by actor.Actor) (*queries.BookingView, error) {
	iv, err := booking.NewInterval(params.Start, params.End)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInterval)
	}

	bookedBy := params.BookedBy
	if bookedBy == uuid.Nil {
		bookedBy = by.ID
	}
	if bookedBy != by.ID && !by.Caps.CanBookOnBehalf {
		return nil, errs.ErrPermissionDenied
	}

	note := booking.NewNote("")
	if params.Note != nil {
		note = booking.NewNote(*params.Note)
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if lockErr := c.lockField(ctx, tx, params.FieldID); lockErr != nil {
			return lockErr
		}

		fld, ferr := c.loadField(ctx, tx, params.FieldID)
		if ferr != nil {
			return ferr
		}

		busy, berr := tx.Reads().BlockingBookings(ctx, params.FieldID, queries.SearchWindow(iv, c.cfg.SearchWindowDays))
		if berr != nil {
			return errs.Mark(berr, errs.ErrDatabaseOperationFailed)
		}

		if conflicts := schedule.Overlapping(busy, iv, uuid.Nil); len(conflicts) > 0 {
			return c.conflictError(iv, conflicts, busy, fld.Hours())
		}

		b, cerr := c.factory.CreateBooking(fld, bookedBy, iv, note, params.MatchID)
		if cerr != nil {
			return markFactoryError(cerr)
		}

		if _, werr := tx.Bookings().Create(ctx, b); werr != nil {
			if infra.IsKind(werr, infra.KindConflict) {
				return errs.Mark(werr, errs.ErrBookingConflict)
			}
			return errs.Mark(werr, errs.ErrDatabaseOperationFailed)
		}

		if aerr := c.assertNoOverlap(ctx, tx, b); aerr != nil {
			return aerr
		}

		if nerr := c.enqueueEvent(ctx, tx, b, booking.TopicCreated); nerr != nil {
			return errs.Mark(nerr, errs.ErrDatabaseOperationFailed)
		}

		bookingID = b.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.views.GetByID(ctx, bookingID)
}

func (c *bookingCommandsImpl) Transition(ctx context.Context, bookingID uuid.UUID, params TransitionParams, by actor.Actor) (*queries.BookingView, error) {
	if !params.Event.IsValid() || params.Event == booking.EventCreate || params.Event == booking.EventModify {
		return nil, errs.Mark(errs.Newf("unsupported transition event %q", params.Event), errs.ErrInvalidTransition)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The pre-lock read only locates the field to lock. The status check
		// must run on a row read after the lock, or a concurrent transition
		// committed while we waited would be invisible here.
		locator, serr := c.loadBooking(ctx, tx, bookingID)
		if serr != nil {
			return serr
		}
		if lockErr := c.lockField(ctx, tx, locator.FieldID); lockErr != nil {
			return lockErr
		}

		snap, serr := c.loadBooking(ctx, tx, bookingID)
		if serr != nil {
			return serr
		}

		b, berr := bookingFromSnapshot(snap)
		if berr != nil {
			return errs.Mark(berr, errs.ErrDatabaseOperationFailed)
		}

		now := c.clock.Now()
		var terr error
		var topic string
		switch params.Event {
		case booking.EventConfirm:
			terr = b.Confirm(by)
			topic = booking.TopicConfirmed
		case booking.EventCancel:
			terr = b.Cancel(by, now)
			topic = booking.TopicCancelled
		case booking.EventComplete:
			terr = b.Complete(by, now, params.Override)
			topic = booking.TopicCompleted
		}
		if terr != nil {
			return markTransitionError(terr)
		}

		if uerr := tx.Bookings().UpdateStatus(ctx, b); uerr != nil {
			return errs.Mark(uerr, errs.ErrDatabaseOperationFailed)
		}

		if nerr := c.enqueueEvent(ctx, tx, b, topic); nerr != nil {
			return errs.Mark(nerr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.views.GetByID(ctx, bookingID)
}

func (c *bookingCommandsImpl) Reschedule(ctx context.Context, bookingID uuid.UUID, start, end time.Time, by actor.Actor) (*queries.BookingView, error) {
	iv, err := booking.NewInterval(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInterval)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locator, serr := c.loadBooking(ctx, tx, bookingID)
		if serr != nil {
			return serr
		}
		if lockErr := c.lockField(ctx, tx, locator.FieldID); lockErr != nil {
			return lockErr
		}

		// Re-read under the lock; the pre-lock row may be stale.
		snap, serr := c.loadBooking(ctx, tx, bookingID)
		if serr != nil {
			return serr
		}
		if !by.CanManageField() && by.ID != snap.BookedBy {
			return errs.ErrPermissionDenied
		}

		fld, ferr := c.loadField(ctx, tx, snap.FieldID)
		if ferr != nil {
			return ferr
		}

		busy, berr := tx.Reads().BlockingBookings(ctx, snap.FieldID, queries.SearchWindow(iv, c.cfg.SearchWindowDays))
		if berr != nil {
			return errs.Mark(berr, errs.ErrDatabaseOperationFailed)
		}

		// The booking being moved must not conflict with itself.
		if conflicts := schedule.Overlapping(busy, iv, bookingID); len(conflicts) > 0 {
			return c.conflictError(iv, conflicts, busy, fld.Hours())
		}

		b, rerr := bookingFromSnapshot(snap)
		if rerr != nil {
			return errs.Mark(rerr, errs.ErrDatabaseOperationFailed)
		}

		cost, perr := c.factory.PriceInterval(fld, iv)
		if perr != nil {
			return errs.Mark(perr, errs.ErrDomainValidation)
		}
		if merr := b.Reschedule(iv, cost); merr != nil {
			return markTransitionError(merr)
		}

		if uerr := tx.Bookings().UpdateInterval(ctx, b); uerr != nil {
			if infra.IsKind(uerr, infra.KindConflict) {
				return errs.Mark(uerr, errs.ErrBookingConflict)
			}
			return errs.Mark(uerr, errs.ErrDatabaseOperationFailed)
		}

		if aerr := c.assertNoOverlap(ctx, tx, b); aerr != nil {
			return aerr
		}

		if nerr := c.enqueueEvent(ctx, tx, b, booking.TopicUpdated); nerr != nil {
			return errs.Mark(nerr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.views.GetByID(ctx, bookingID)
}

func (c *bookingCommandsImpl) lockField(ctx context.Context, tx shared.Tx, fieldID uuid.UUID) error {
	if err := tx.LockField(ctx, fieldID); err != nil {
		if infra.IsKind(err, infra.KindLockTimeout) {
			return errs.Mark(err, errs.ErrLockTimeout)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *bookingCommandsImpl) loadField(ctx context.Context, tx shared.Tx, fieldID uuid.UUID) (*field.Field, error) {
	snap, err := tx.Reads().FieldByID(ctx, fieldID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrFieldNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return fieldFromSnapshot(snap, c.cfg)
}

func (c *bookingCommandsImpl) loadBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shared.BookingSnapshot, error) {
	snap, err := tx.Reads().BookingByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snap, nil
}

func (c *bookingCommandsImpl) conflictError(iv booking.Interval, conflicts []schedule.Busy, busy []schedule.Busy, hours field.OperatingHours) error {
	window := queries.SearchWindow(iv, c.cfg.SearchWindowDays)

	summaries := make([]queries.BookingSummary, 0, len(conflicts))
	for _, cf := range conflicts {
		summaries = append(summaries, queries.BookingSummary{
			ID:        cf.BookingID,
			StartTime: cf.Interval.Start(),
			EndTime:   cf.Interval.End(),
			Status:    cf.Status.String(),
		})
	}

	suggestions := []queries.IntervalView{}
	for _, s := range c.suggester.Suggest(iv, schedule.Intervals(busy), window, hours) {
		suggestions = append(suggestions, queries.IntervalView{StartTime: s.Start(), EndTime: s.End()})
	}

	return &ConflictError{Conflicts: summaries, Suggestions: suggestions}
}

// assertNoOverlap is the post-write invariant check. It failing means the
// lock or the isolation level is broken; the transaction must abort.
func (c *bookingCommandsImpl) assertNoOverlap(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	n, err := tx.Bookings().CountOverlapping(ctx, b.FieldID(), b.Interval(), b.ID())
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if n > 0 {
		return errs.Mark(
			errs.Newf("booking %s overlaps %d active booking(s) after write", b.ID(), n),
			errs.ErrScheduleCorruption,
		)
	}
	return nil
}

func (c *bookingCommandsImpl) enqueueEvent(ctx context.Context, tx shared.Tx, b *booking.Booking, topic string) error {
	event := booking.NewLifecycleEvent(b, topic, c.clock.Now())
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	dedupe := fmt.Sprintf("%s:%s", topic, b.ID())
	return tx.Notifications().CreateJob(ctx, "email", topic, payload, dedupe, c.clock.Now())
}

func markFactoryError(err error) error {
	switch {
	case errors.Is(err, booking.ErrFieldNotBookable),
		errors.Is(err, booking.ErrIntervalInPast),
		errors.Is(err, booking.ErrInvalidField):
		return errs.Mark(err, errs.ErrDomainValidation)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}

func markTransitionError(err error) error {
	var ite *booking.InvalidTransitionError
	switch {
	case errors.As(err, &ite):
		return errs.Mark(err, errs.ErrInvalidTransition)
	case errors.Is(err, booking.ErrActorNotAllowed):
		return errs.Mark(err, errs.ErrPermissionDenied)
	case errors.Is(err, booking.ErrBookingInPast), errors.Is(err, booking.ErrBookingNotEnded):
		// Guard violations reject the edge the same way an illegal edge does.
		return errs.Mark(err, errs.ErrInvalidTransition)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}

func fieldFromSnapshot(snap *shared.FieldSnapshot, cfg config.BookingConfig) (*field.Field, error) {
	hours := queries.EffectiveHours(snap.OpenMinute, snap.CloseMinute, cfg)
	fld, err := field.NewField(snap.ID, snap.AcademyID, snap.Name, snap.RateCents, hours, snap.IsAvailable, snap.IsActive)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	return fld, nil
}

func bookingFromSnapshot(snap *shared.BookingSnapshot) (*booking.Booking, error) {
	iv, err := booking.NewInterval(snap.StartTime, snap.EndTime)
	if err != nil {
		return nil, err
	}
	note := booking.NewNote("")
	if snap.Note != nil {
		note = booking.NewNote(*snap.Note)
	}
	return booking.Reconstruct(
		snap.ID, snap.FieldID, snap.BookedBy,
		iv,
		booking.Status(snap.Status),
		booking.NewMoney(snap.TotalCostCents),
		note,
		snap.MatchID,
		snap.RefundEligible, snap.IsActive,
		snap.CreatedAt, snap.UpdatedAt,
	), nil
}
