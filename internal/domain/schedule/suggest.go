package schedule

import (
	"sort"
	"time"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/domain/field"
)

// Suggester proposes free slots near a rejected candidate. Settings are
// injected at construction; there is no package-level state.
type Suggester struct {
	maxSuggestions int
}

func NewSuggester(maxSuggestions int) *Suggester {
	if maxSuggestions <= 0 {
		maxSuggestions = 3
	}
	return &Suggester{maxSuggestions: maxSuggestions}
}

// Suggest walks the gaps between busy intervals inside window, clips them
// to the field's daily operating hours, and from every gap long enough
// proposes the earliest sub-interval with the candidate's duration.
// Proposals are ranked by distance from the requested start, ties broken
// by earliest start. An empty result means no alternative exists in the
// window; that is a normal outcome, not an error.
func (s *Suggester) Suggest(candidate booking.Interval, busy []booking.Interval, window booking.Interval, hours field.OperatingHours) []booking.Interval {
	d := candidate.Duration()
	if d <= 0 {
		return nil
	}

	free := subtract(window, MergeBusy(busy))
	if !hours.IsZero() {
		free = clipToHours(free, hours)
	}

	var proposals []booking.Interval
	for _, gap := range free {
		if gap.Duration() < d {
			continue
		}
		proposals = append(proposals, booking.MustInterval(gap.Start(), gap.Start().Add(d)))
	}

	sort.Slice(proposals, func(i, j int) bool {
		di := absDistance(proposals[i].Start(), candidate.Start())
		dj := absDistance(proposals[j].Start(), candidate.Start())
		if di != dj {
			return di < dj
		}
		return proposals[i].Start().Before(proposals[j].Start())
	})

	if len(proposals) > s.maxSuggestions {
		proposals = proposals[:s.maxSuggestions]
	}
	return proposals
}

// subtract returns the parts of window not covered by the merged busy set.
func subtract(window booking.Interval, merged []booking.Interval) []booking.Interval {
	var free []booking.Interval
	cursor := window.Start()

	for _, iv := range merged {
		if !iv.Overlaps(window) {
			continue
		}
		if iv.Start().After(cursor) {
			free = append(free, booking.MustInterval(cursor, minTime(iv.Start(), window.End())))
		}
		if iv.End().After(cursor) {
			cursor = iv.End()
		}
	}
	if cursor.Before(window.End()) {
		free = append(free, booking.MustInterval(cursor, window.End()))
	}
	return free
}

// clipToHours intersects each free interval with the per-day operating
// window so no suggestion ever falls outside opening times.
func clipToHours(free []booking.Interval, hours field.OperatingHours) []booking.Interval {
	var clipped []booking.Interval
	for _, iv := range free {
		day := time.Date(iv.Start().Year(), iv.Start().Month(), iv.Start().Day(), 0, 0, 0, 0, iv.Start().Location())
		for !day.After(iv.End()) {
			open, closeAt := hours.WindowOn(day)
			start := maxTime(iv.Start(), open)
			end := minTime(iv.End(), closeAt)
			if end.After(start) {
				clipped = append(clipped, booking.MustInterval(start, end))
			}
			day = day.AddDate(0, 0, 1)
		}
	}
	return clipped
}

func absDistance(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
