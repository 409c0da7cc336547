package schedule

import (
	"sort"

	"fieldbook/internal/domain/booking"

	"github.com/google/uuid"
)

// Busy is the slim projection of a blocking booking the scheduler math
// works on. The authoritative set is always re-read from the store inside
// the gateway transaction; this package only does the pure interval work.
type Busy struct {
	BookingID uuid.UUID
	Status    booking.Status
	Interval  booking.Interval
}

// Intervals projects the occupied ranges out of a busy set.
func Intervals(busy []Busy) []booking.Interval {
	out := make([]booking.Interval, 0, len(busy))
	for _, b := range busy {
		out = append(out, b.Interval)
	}
	return out
}

// Overlapping returns every busy entry that overlaps the candidate,
// ordered by start time ascending. excludeID skips the booking being
// modified during an update-in-place check; pass uuid.Nil otherwise.
func Overlapping(existing []Busy, candidate booking.Interval, excludeID uuid.UUID) []Busy {
	var out []Busy
	for _, b := range existing {
		if excludeID != uuid.Nil && b.BookingID == excludeID {
			continue
		}
		if b.Interval.Overlaps(candidate) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Interval.Start().Before(out[j].Interval.Start())
	})
	return out
}

// MergeBusy sorts the intervals and coalesces any that touch or overlap,
// so gap walking sees each occupied stretch exactly once.
func MergeBusy(ivs []booking.Interval) []booking.Interval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := make([]booking.Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start().Before(sorted[j].Start())
	})

	merged := []booking.Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if last.Touches(iv) {
			end := last.End()
			if iv.End().After(end) {
				end = iv.End()
			}
			*last = booking.MustInterval(last.Start(), end)
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
