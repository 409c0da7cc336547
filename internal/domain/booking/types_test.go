//go:build unit

package booking_test

import (
	"testing"

	"fieldbook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	type edge struct {
		from booking.Status
		ev   booking.Event
		to   booking.Status
	}

	legal := []edge{
		{booking.StatusPending, booking.EventConfirm, booking.StatusConfirmed},
		{booking.StatusPending, booking.EventCancel, booking.StatusCancelled},
		{booking.StatusPending, booking.EventModify, booking.StatusPending},
		{booking.StatusConfirmed, booking.EventCancel, booking.StatusCancelled},
		{booking.StatusConfirmed, booking.EventComplete, booking.StatusCompleted},
		{booking.StatusConfirmed, booking.EventModify, booking.StatusConfirmed},
	}
	legalSet := map[booking.Status]map[booking.Event]bool{}
	for _, e := range legal {
		if legalSet[e.from] == nil {
			legalSet[e.from] = map[booking.Event]bool{}
		}
		legalSet[e.from][e.ev] = true

		t.Run(string(e.from)+" "+string(e.ev), func(t *testing.T) {
			next, err := booking.NextStatus(e.from, e.ev)
			require.NoError(t, err)
			assert.Equal(t, e.to, next)
		})
	}

	// Everything outside the table is an invalid edge, terminal states included.
	statuses := []booking.Status{
		booking.StatusPending, booking.StatusConfirmed,
		booking.StatusCancelled, booking.StatusCompleted,
	}
	events := []booking.Event{
		booking.EventConfirm, booking.EventCancel,
		booking.EventComplete, booking.EventModify,
	}
	for _, from := range statuses {
		for _, ev := range events {
			if legalSet[from][ev] {
				continue
			}
			t.Run(string(from)+" "+string(ev)+" rejected", func(t *testing.T) {
				_, err := booking.NextStatus(from, ev)
				require.Error(t, err)

				var ite *booking.InvalidTransitionError
				require.ErrorAs(t, err, &ite)
				assert.Equal(t, from, ite.From)
				assert.Equal(t, ev, ite.Event)
			})
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, booking.StatusPending.IsBlocking())
	assert.True(t, booking.StatusConfirmed.IsBlocking())
	assert.False(t, booking.StatusCancelled.IsBlocking())
	assert.False(t, booking.StatusCompleted.IsBlocking())

	assert.False(t, booking.StatusPending.IsTerminal())
	assert.False(t, booking.StatusConfirmed.IsTerminal())
	assert.True(t, booking.StatusCancelled.IsTerminal())
	assert.True(t, booking.StatusCompleted.IsTerminal())

	assert.True(t, booking.StatusPending.IsValid())
	assert.False(t, booking.Status("archived").IsValid())
}

func TestEventIsValid(t *testing.T) {
	assert.True(t, booking.EventConfirm.IsValid())
	assert.True(t, booking.EventCreate.IsValid())
	assert.False(t, booking.Event("expire").IsValid())
}
