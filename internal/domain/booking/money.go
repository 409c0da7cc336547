package booking

import (
	"errors"
	"fmt"
)

// Money holds a currency amount in integer cents. Costs are snapshots taken
// at creation time and never recomputed when the field rate changes.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

// String renders with two decimal places, e.g. 30000 -> "300.00".
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// HourlyCost prices an interval at rateCents per hour, rounding half-up to
// the cent. Integer math keeps 90min at 150.00/h exact: 22500 cents.
func HourlyCost(rateCents int64, iv Interval) Money {
	seconds := int64(iv.Duration().Seconds())
	total := seconds * rateCents
	// total is cent-seconds; half-up division by 3600 seconds/hour
	return Money{cents: (total + 1800) / 3600}
}
