package booking

import (
	"errors"

	"fieldbook/internal/domain/field"
)

var ErrInvalidField = errors.New("field is inactive or has an invalid rate")

// CostCalculator prices an interval on a field. Pure and deterministic.
type CostCalculator interface {
	Cost(f *field.Field, iv Interval) (Money, error)
}

type HourlyCostCalculator struct{}

func NewHourlyCostCalculator() *HourlyCostCalculator {
	return &HourlyCostCalculator{}
}

func (c *HourlyCostCalculator) Cost(f *field.Field, iv Interval) (Money, error) {
	if f.RateCents() < 0 || !f.IsActive() {
		return Money{}, ErrInvalidField
	}
	return HourlyCost(f.RateCents(), iv), nil
}
