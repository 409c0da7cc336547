package booking

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidInterval = errors.New("interval end must be after start")

// Interval is a half-open time range [start, end). Two bookings touching at
// an endpoint (one ending 15:00, the next starting 15:00) do not overlap.
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start, end: end}, nil
}

// MustInterval panics on an invalid range. Test helper.
func MustInterval(start, end time.Time) Interval {
	iv, err := NewInterval(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

func (iv Interval) Start() time.Time { return iv.start }
func (iv Interval) End() time.Time   { return iv.end }

func (iv Interval) IsZero() bool {
	return iv.start.IsZero() && iv.end.IsZero()
}

func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

// DurationHours returns the exact fractional hour count (90min -> 1.5).
// Rounding happens only at the money boundary.
func (iv Interval) DurationHours() float64 {
	return iv.end.Sub(iv.start).Seconds() / 3600
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.start.Before(other.end) && other.start.Before(iv.end)
}

// Touches reports overlap or shared endpoint; used when merging busy ranges.
func (iv Interval) Touches(other Interval) bool {
	return !iv.start.After(other.end) && !other.start.After(iv.end)
}

func (iv Interval) ContainsPoint(t time.Time) bool {
	return !t.Before(iv.start) && t.Before(iv.end)
}

func (iv Interval) Shift(by time.Duration) Interval {
	return Interval{start: iv.start.Add(by), end: iv.end.Add(by)}
}

func (iv Interval) Equal(other Interval) bool {
	return iv.start.Equal(other.start) && iv.end.Equal(other.end)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.start.Format(time.RFC3339), iv.end.Format(time.RFC3339))
}

// ToTstzrange renders the range in Postgres tstzrange literal form.
func (iv Interval) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", iv.start.Format(time.RFC3339), iv.end.Format(time.RFC3339))
}
