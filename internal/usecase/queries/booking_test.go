//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/domain/schedule"
	"fieldbook/internal/infra"
	"fieldbook/internal/pkg/config"
	"fieldbook/internal/pkg/errs"
	"fieldbook/internal/usecase/queries"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type stubBookingStore struct {
	views     map[uuid.UUID]*queries.BookingView
	schedule  []queries.DayScheduleEntry
	bookedSec int64
	count     int
	reminders []queries.ReminderCandidate
}

func (s *stubBookingStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if v, ok := s.views[id]; ok {
		return v, nil
	}
	return nil, infra.WrapRepoErr("booking not found", errs.New("no rows"), infra.KindNotFound)
}

func (s *stubBookingStore) FindByUser(context.Context, uuid.UUID) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (s *stubBookingStore) DaySchedule(context.Context, uuid.UUID, time.Time, time.Time) ([]queries.DayScheduleEntry, error) {
	return s.schedule, nil
}

func (s *stubBookingStore) BookedSecondsBetween(context.Context, uuid.UUID, time.Time, time.Time) (int64, int, error) {
	return s.bookedSec, s.count, nil
}

func (s *stubBookingStore) DueReminders(context.Context, time.Time, time.Time) ([]queries.ReminderCandidate, error) {
	return s.reminders, nil
}

type stubFieldStore struct {
	fields map[uuid.UUID]*queries.FieldView
}

func (s *stubFieldStore) FindByID(_ context.Context, id uuid.UUID) (*queries.FieldView, error) {
	if f, ok := s.fields[id]; ok {
		return f, nil
	}
	return nil, infra.WrapRepoErr("field not found", errs.New("no rows"), infra.KindNotFound)
}

// stubReads serves the snapshots availability checks read inside the
// read-only unit of work.
type stubReads struct {
	fields map[uuid.UUID]*shared.FieldSnapshot
	busy   []schedule.Busy
}

func (r *stubReads) FieldByID(_ context.Context, id uuid.UUID) (*shared.FieldSnapshot, error) {
	if f, ok := r.fields[id]; ok {
		return f, nil
	}
	return nil, infra.WrapRepoErr("field not found", errs.New("no rows"), infra.KindNotFound)
}

func (r *stubReads) BookingByID(context.Context, uuid.UUID) (*shared.BookingSnapshot, error) {
	return nil, infra.WrapRepoErr("booking not found", errs.New("no rows"), infra.KindNotFound)
}

func (r *stubReads) BlockingBookings(context.Context, uuid.UUID, booking.Interval) ([]schedule.Busy, error) {
	return r.busy, nil
}

// stubUoW serves read-only work only; queries never open write transactions.
type stubUoW struct {
	reads *stubReads
}

func (u *stubUoW) Within(context.Context, func(context.Context, shared.Tx) error) error {
	return errs.New("write transaction opened from the read side")
}

func (u *stubUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	return fn(ctx, u.reads)
}

type BookingQueriesSuite struct {
	suite.Suite
	bookings *stubBookingStore
	fields   *stubFieldStore
	reads    *stubReads
	q        queries.BookingQueries
	fieldID  uuid.UUID
}

func TestBookingQueriesSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesSuite))
}

func (s *BookingQueriesSuite) SetupTest() {
	s.fieldID = uuid.New()
	open := int32(8 * 60)
	closeAt := int32(22 * 60)

	s.bookings = &stubBookingStore{views: map[uuid.UUID]*queries.BookingView{}}
	s.fields = &stubFieldStore{fields: map[uuid.UUID]*queries.FieldView{
		s.fieldID: {
			ID:          s.fieldID,
			AcademyID:   uuid.New(),
			Name:        "Center Court",
			HourlyRate:  "150.00",
			RateCents:   15000,
			OpenMinute:  &open,
			CloseMinute: &closeAt,
			IsAvailable: true,
		},
	}}

	s.reads = &stubReads{fields: map[uuid.UUID]*shared.FieldSnapshot{
		s.fieldID: {
			ID:          s.fieldID,
			AcademyID:   uuid.New(),
			Name:        "Center Court",
			RateCents:   15000,
			OpenMinute:  &open,
			CloseMinute: &closeAt,
			IsAvailable: true,
			IsActive:    true,
		},
	}}

	cfg := config.NewTestConfig().Booking
	s.q = queries.NewBookingQueries(s.bookings, s.fields, &stubUoW{reads: s.reads}, schedule.NewSuggester(cfg.MaxSuggestions), cfg)
}

// ErrorMarked asserts that err carries sentinel, whether attached as a
// mark or present in the wrap chain.
func (s *BookingQueriesSuite) ErrorMarked(err, sentinel error) {
	s.T().Helper()
	s.True(errs.Is(err, sentinel), "expected %v, got %v", sentinel, err)
}

func (s *BookingQueriesSuite) slot(hour, durationHours int) (time.Time, time.Time) {
	start := time.Date(2026, 9, 12, hour, 0, 0, 0, time.UTC)
	return start, start.Add(time.Duration(durationHours) * time.Hour)
}

func (s *BookingQueriesSuite) TestGetByID() {
	s.Run("found", func() {
		id := uuid.New()
		s.bookings.views[id] = &queries.BookingView{ID: id, Status: "pending"}

		view, err := s.q.GetByID(context.Background(), id)
		s.Require().NoError(err)
		s.Equal(id, view.ID)
	})

	s.Run("missing", func() {
		_, err := s.q.GetByID(context.Background(), uuid.New())
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})
}

func (s *BookingQueriesSuite) TestCheckAvailability() {
	s.Run("free slot reports cost and no conflicts", func() {
		start, end := s.slot(15, 2)
		result, err := s.q.CheckAvailability(context.Background(), s.fieldID, start, end)
		s.Require().NoError(err)

		s.True(result.Available)
		s.Empty(result.Conflicts)
		s.Empty(result.Suggestions)
		s.Equal("300.00", result.EstimatedCost)
	})

	s.Run("occupied slot returns conflicts and suggestions", func() {
		busyStart, busyEnd := s.slot(15, 2)
		existing := schedule.Busy{
			BookingID: uuid.New(),
			Status:    booking.StatusConfirmed,
			Interval:  booking.MustInterval(busyStart, busyEnd),
		}
		s.reads.busy = []schedule.Busy{existing}

		result, err := s.q.CheckAvailability(context.Background(), s.fieldID, busyStart, busyEnd)
		s.Require().NoError(err)

		s.False(result.Available)
		s.Require().Len(result.Conflicts, 1)
		s.Equal(existing.BookingID, result.Conflicts[0].ID)
		s.Equal("confirmed", result.Conflicts[0].Status)

		s.Require().NotEmpty(result.Suggestions)
		first := booking.MustInterval(result.Suggestions[0].StartTime, result.Suggestions[0].EndTime)
		s.True(first.Equal(booking.MustInterval(busyEnd, busyEnd.Add(2*time.Hour))),
			"nearest slot right after the busy block, got %s", first)
		for _, sg := range result.Suggestions {
			proposed := booking.MustInterval(sg.StartTime, sg.EndTime)
			s.False(proposed.Overlaps(booking.MustInterval(busyStart, busyEnd)))
		}
	})

	s.Run("invalid interval", func() {
		start, _ := s.slot(15, 2)
		_, err := s.q.CheckAvailability(context.Background(), s.fieldID, start, start)
		s.ErrorMarked(err, errs.ErrInvalidInterval)
	})

	s.Run("unknown field", func() {
		start, end := s.slot(15, 2)
		_, err := s.q.CheckAvailability(context.Background(), uuid.New(), start, end)
		s.ErrorIs(err, errs.ErrFieldNotFound)
	})
}

func (s *BookingQueriesSuite) TestFieldSchedule() {
	s.Run("passes the whole day through", func() {
		entry := queries.DayScheduleEntry{BookingID: uuid.New(), Status: "confirmed"}
		s.bookings.schedule = []queries.DayScheduleEntry{entry}

		entries, err := s.q.FieldSchedule(context.Background(), s.fieldID, time.Date(2026, 9, 12, 10, 30, 0, 0, time.UTC))
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal(entry.BookingID, entries[0].BookingID)
	})

	s.Run("unknown field", func() {
		_, err := s.q.FieldSchedule(context.Background(), uuid.New(), time.Now())
		s.ErrorIs(err, errs.ErrFieldNotFound)
	})
}

func (s *BookingQueriesSuite) TestFieldUtilization() {
	s.Run("rates booked time against operating hours", func() {
		// 14 bookable hours per day; 7 booked hours over one day is 50%.
		s.bookings.bookedSec = 7 * 3600
		s.bookings.count = 3

		from := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
		result, err := s.q.FieldUtilization(context.Background(), s.fieldID, from, from.AddDate(0, 0, 1))
		s.Require().NoError(err)

		s.InDelta(7.0, result.BookedHours, 1e-9)
		s.InDelta(14.0, result.AvailableHours, 1e-9)
		s.InDelta(50.0, result.Rate, 1e-9)
		s.Equal(3, result.BookingCount)
	})

	s.Run("week long range scales available hours", func() {
		s.bookings.bookedSec = 14 * 3600
		s.bookings.count = 7

		from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
		result, err := s.q.FieldUtilization(context.Background(), s.fieldID, from, from.AddDate(0, 0, 7))
		s.Require().NoError(err)

		s.InDelta(98.0, result.AvailableHours, 1e-9)
		s.InDelta(14.0/98.0*100, result.Rate, 1e-9)
	})

	s.Run("unknown field", func() {
		from := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
		_, err := s.q.FieldUtilization(context.Background(), uuid.New(), from, from.AddDate(0, 0, 1))
		s.ErrorIs(err, errs.ErrFieldNotFound)
	})
}

func TestSearchWindow(t *testing.T) {
	start := time.Date(2026, 9, 12, 15, 0, 0, 0, time.UTC)
	candidate := booking.MustInterval(start, start.Add(2*time.Hour))

	window := queries.SearchWindow(candidate, 1)
	assert.Equal(t, time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC), window.Start())
	assert.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), window.End())

	// A candidate running past the window edge stretches it.
	long := booking.MustInterval(start, start.AddDate(0, 0, 3))
	window = queries.SearchWindow(long, 1)
	assert.Equal(t, long.End(), window.End())
}

func TestEffectiveHours(t *testing.T) {
	cfg := config.NewTestConfig().Booking

	t.Run("field hours win", func(t *testing.T) {
		open := int32(9 * 60)
		closeAt := int32(18 * 60)
		h := queries.EffectiveHours(&open, &closeAt, cfg)
		assert.Equal(t, 540, h.OpenMinute)
		assert.Equal(t, 1080, h.CloseMinute)
	})

	t.Run("missing hours fall back to config", func(t *testing.T) {
		h := queries.EffectiveHours(nil, nil, cfg)
		assert.Equal(t, cfg.DefaultOpenMinute, h.OpenMinute)
		assert.Equal(t, cfg.DefaultCloseMinute, h.CloseMinute)
	})

	t.Run("invalid field hours fall back to config", func(t *testing.T) {
		open := int32(20 * 60)
		closeAt := int32(8 * 60)
		h := queries.EffectiveHours(&open, &closeAt, cfg)
		require.Equal(t, cfg.DefaultOpenMinute, h.OpenMinute)
	})
}
