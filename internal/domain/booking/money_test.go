//go:build unit

package booking_test

import (
	"testing"
	"time"

	"fieldbook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{30000, "300.00"},
		{18000, "180.00"},
		{22500, "225.00"},
		{1, "0.01"},
		{0, "0.00"},
		{99, "0.99"},
		{100, "1.00"},
		{-2500, "-25.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, booking.NewMoney(tt.cents).String())
	}
}

func TestNewMoneyFromCents(t *testing.T) {
	m, err := booking.NewMoneyFromCents(1500)
	assert.NoError(t, err)
	assert.Equal(t, int64(1500), m.Cents())

	_, err = booking.NewMoneyFromCents(-1)
	assert.Error(t, err)
}

func TestHourlyCost(t *testing.T) {
	tests := []struct {
		name      string
		rateCents int64
		duration  time.Duration
		wantCents int64
	}{
		{"two hours at 150.00", 15000, 2 * time.Hour, 30000},
		{"ninety minutes at 120.00", 12000, 90 * time.Minute, 18000},
		{"ninety minutes at 150.00", 15000, 90 * time.Minute, 22500},
		{"one minute at 1.00 rounds half up", 100, time.Minute, 2},
		{"one second at 1.00 rounds down", 100, time.Second, 0},
		{"zero rate", 0, 2 * time.Hour, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Date(2026, 9, 12, 15, 0, 0, 0, time.UTC)
			iv := booking.MustInterval(start, start.Add(tt.duration))
			assert.Equal(t, tt.wantCents, booking.HourlyCost(tt.rateCents, iv).Cents())
		})
	}
}

func TestMoneyAdd(t *testing.T) {
	sum := booking.NewMoney(12050).Add(booking.NewMoney(950))
	assert.Equal(t, int64(13000), sum.Cents())
	assert.Equal(t, "130.00", sum.String())
}
