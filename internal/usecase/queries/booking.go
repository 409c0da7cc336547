package queries

import (
	"context"
	"time"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/domain/field"
	"fieldbook/internal/domain/schedule"
	"fieldbook/internal/infra"
	"fieldbook/internal/pkg/config"
	"fieldbook/internal/pkg/errs"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingReadStore is the read-side port implemented by infra/readstore.
type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	DaySchedule(ctx context.Context, fieldID uuid.UUID, dayStart, dayEnd time.Time) ([]DayScheduleEntry, error)
	BookedSecondsBetween(ctx context.Context, fieldID uuid.UUID, from, to time.Time) (int64, int, error)
	DueReminders(ctx context.Context, from, to time.Time) ([]ReminderCandidate, error)
}

type FieldReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FieldView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	CheckAvailability(ctx context.Context, fieldID uuid.UUID, start, end time.Time) (*AvailabilityResult, error)
	FieldSchedule(ctx context.Context, fieldID uuid.UUID, day time.Time) ([]DayScheduleEntry, error)
	FieldUtilization(ctx context.Context, fieldID uuid.UUID, from, to time.Time) (*UtilizationResult, error)
	DueReminders(ctx context.Context, from, to time.Time) ([]ReminderCandidate, error)
}

type bookingQueriesImpl struct {
	bookings  BookingReadStore
	fields    FieldReadStore
	uow       shared.UnitOfWork
	suggester *schedule.Suggester
	cfg       config.BookingConfig
}

func NewBookingQueries(
	bookings BookingReadStore,
	fields FieldReadStore,
	uow shared.UnitOfWork,
	suggester *schedule.Suggester,
	cfg config.BookingConfig,
) BookingQueries {
	return &bookingQueriesImpl{
		bookings:  bookings,
		fields:    fields,
		uow:       uow,
		suggester: suggester,
		cfg:       cfg,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	items, err := q.bookings.FindByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return items, nil
}

// CheckAvailability is a pure read. Field row and busy intervals come out
// of one read-only transaction so the answer is a consistent snapshot; the
// authoritative answer for an actual reservation is still re-derived under
// the gateway lock.
func (q *bookingQueriesImpl) CheckAvailability(ctx context.Context, fieldID uuid.UUID, start, end time.Time) (*AvailabilityResult, error) {
	iv, err := booking.NewInterval(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInterval)
	}

	var result *AvailabilityResult
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		fld, ferr := reads.FieldByID(ctx, fieldID)
		if ferr != nil {
			if infra.IsKind(ferr, infra.KindNotFound) {
				return errs.ErrFieldNotFound
			}
			return errs.Mark(ferr, errs.ErrDatabaseOperationFailed)
		}

		window := SearchWindow(iv, q.cfg.SearchWindowDays)
		busy, berr := reads.BlockingBookings(ctx, fieldID, window)
		if berr != nil {
			return errs.Mark(berr, errs.ErrDatabaseOperationFailed)
		}

		result = &AvailabilityResult{
			Available:     true,
			Conflicts:     []BookingSummary{},
			Suggestions:   []IntervalView{},
			EstimatedCost: booking.HourlyCost(fld.RateCents, iv).String(),
		}

		conflicts := schedule.Overlapping(busy, iv, uuid.Nil)
		if len(conflicts) == 0 {
			return nil
		}

		result.Available = false
		for _, cf := range conflicts {
			result.Conflicts = append(result.Conflicts, BookingSummary{
				ID:        cf.BookingID,
				StartTime: cf.Interval.Start(),
				EndTime:   cf.Interval.End(),
				Status:    cf.Status.String(),
			})
		}

		hours := EffectiveHours(fld.OpenMinute, fld.CloseMinute, q.cfg)
		for _, s := range q.suggester.Suggest(iv, schedule.Intervals(busy), window, hours) {
			result.Suggestions = append(result.Suggestions, IntervalView{StartTime: s.Start(), EndTime: s.End()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (q *bookingQueriesImpl) FieldSchedule(ctx context.Context, fieldID uuid.UUID, day time.Time) ([]DayScheduleEntry, error) {
	if _, err := q.fields.FindByID(ctx, fieldID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrFieldNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	entries, err := q.bookings.DaySchedule(ctx, fieldID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return entries, nil
}

func (q *bookingQueriesImpl) FieldUtilization(ctx context.Context, fieldID uuid.UUID, from, to time.Time) (*UtilizationResult, error) {
	fld, err := q.fields.FindByID(ctx, fieldID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrFieldNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	bookedSeconds, count, err := q.bookings.BookedSecondsBetween(ctx, fieldID, from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// to is an exclusive bound, so a single day arrives as from..from+24h.
	hours := EffectiveHours(fld.OpenMinute, fld.CloseMinute, q.cfg)
	days := to.Sub(from).Hours() / 24
	availableHours := days * float64(hours.CloseMinute-hours.OpenMinute) / 60

	result := &UtilizationResult{
		BookedHours:    float64(bookedSeconds) / 3600,
		AvailableHours: availableHours,
		BookingCount:   count,
	}
	if availableHours > 0 {
		result.Rate = result.BookedHours / availableHours * 100
	}
	return result, nil
}

func (q *bookingQueriesImpl) DueReminders(ctx context.Context, from, to time.Time) ([]ReminderCandidate, error) {
	due, err := q.bookings.DueReminders(ctx, from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return due, nil
}

// SearchWindow spans the candidate's calendar day plus/minus windowDays.
func SearchWindow(candidate booking.Interval, windowDays int) booking.Interval {
	s := candidate.Start()
	dayStart := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, s.Location())
	start := dayStart.AddDate(0, 0, -windowDays)
	end := dayStart.AddDate(0, 0, windowDays+1)
	if candidate.End().After(end) {
		end = candidate.End()
	}
	return booking.MustInterval(start, end)
}

// EffectiveHours prefers the field's own window and falls back to the
// configured default (the original schedule scanned 08:00-22:00).
func EffectiveHours(openMinute, closeMinute *int32, cfg config.BookingConfig) field.OperatingHours {
	if openMinute != nil && closeMinute != nil {
		if h, err := field.NewOperatingHours(int(*openMinute), int(*closeMinute)); err == nil {
			return h
		}
	}
	h, err := field.NewOperatingHours(cfg.DefaultOpenMinute, cfg.DefaultCloseMinute)
	if err != nil {
		return field.OperatingHours{}
	}
	return h
}
