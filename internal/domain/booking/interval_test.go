//go:build unit

package booking_test

import (
	"testing"
	"time"

	"fieldbook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 12, hour, minute, 0, 0, time.UTC)
}

func TestNewInterval(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		iv, err := booking.NewInterval(at(15, 0), at(17, 0))
		require.NoError(t, err)
		assert.Equal(t, at(15, 0), iv.Start())
		assert.Equal(t, at(17, 0), iv.End())
		assert.Equal(t, 2*time.Hour, iv.Duration())
	})

	t.Run("end equal to start is rejected", func(t *testing.T) {
		_, err := booking.NewInterval(at(15, 0), at(15, 0))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := booking.NewInterval(at(17, 0), at(15, 0))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})
}

func TestIntervalOverlaps(t *testing.T) {
	base := booking.MustInterval(at(15, 0), at(17, 0))

	tests := []struct {
		name     string
		other    booking.Interval
		overlaps bool
	}{
		{"identical", booking.MustInterval(at(15, 0), at(17, 0)), true},
		{"contained", booking.MustInterval(at(15, 30), at(16, 30)), true},
		{"containing", booking.MustInterval(at(14, 0), at(18, 0)), true},
		{"partial left", booking.MustInterval(at(14, 0), at(15, 30)), true},
		{"partial right", booking.MustInterval(at(16, 30), at(18, 0)), true},
		{"adjacent before does not overlap", booking.MustInterval(at(13, 0), at(15, 0)), false},
		{"adjacent after does not overlap", booking.MustInterval(at(17, 0), at(19, 0)), false},
		{"disjoint before", booking.MustInterval(at(10, 0), at(12, 0)), false},
		{"disjoint after", booking.MustInterval(at(18, 0), at(20, 0)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base))
		})
	}
}

func TestIntervalTouches(t *testing.T) {
	base := booking.MustInterval(at(15, 0), at(17, 0))

	// Touches includes the shared-endpoint case that Overlaps excludes.
	assert.True(t, base.Touches(booking.MustInterval(at(17, 0), at(19, 0))))
	assert.True(t, base.Touches(booking.MustInterval(at(13, 0), at(15, 0))))
	assert.True(t, base.Touches(booking.MustInterval(at(16, 0), at(18, 0))))
	assert.False(t, base.Touches(booking.MustInterval(at(17, 1), at(19, 0))))
}

func TestIntervalDurationHours(t *testing.T) {
	assert.InDelta(t, 2.0, booking.MustInterval(at(15, 0), at(17, 0)).DurationHours(), 1e-9)
	assert.InDelta(t, 1.5, booking.MustInterval(at(15, 0), at(16, 30)).DurationHours(), 1e-9)
	assert.InDelta(t, 0.25, booking.MustInterval(at(15, 0), at(15, 15)).DurationHours(), 1e-9)
}

func TestIntervalContainsPoint(t *testing.T) {
	iv := booking.MustInterval(at(15, 0), at(17, 0))

	assert.True(t, iv.ContainsPoint(at(15, 0)), "start is inside the half-open range")
	assert.True(t, iv.ContainsPoint(at(16, 59)))
	assert.False(t, iv.ContainsPoint(at(17, 0)), "end is outside the half-open range")
	assert.False(t, iv.ContainsPoint(at(14, 59)))
}

func TestIntervalShift(t *testing.T) {
	iv := booking.MustInterval(at(15, 0), at(17, 0))
	shifted := iv.Shift(2 * time.Hour)

	assert.Equal(t, at(17, 0), shifted.Start())
	assert.Equal(t, at(19, 0), shifted.End())
	assert.Equal(t, iv.Duration(), shifted.Duration())
}
