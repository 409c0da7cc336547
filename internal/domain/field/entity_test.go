//go:build unit

package field_test

import (
	"strings"
	"testing"
	"time"

	"fieldbook/internal/domain/field"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField(t *testing.T) {
	id := uuid.New()
	academyID := uuid.New()

	t.Run("valid field", func(t *testing.T) {
		fld, err := field.NewField(id, academyID, "  Center Court  ", 15000, field.OperatingHours{}, true, true)
		require.NoError(t, err)

		assert.Equal(t, "Center Court", fld.Name(), "name is trimmed")
		assert.Equal(t, int64(15000), fld.RateCents())
		assert.True(t, fld.Bookable())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := field.NewField(id, academyID, "   ", 15000, field.OperatingHours{}, true, true)
		assert.ErrorIs(t, err, field.ErrEmptyFieldName)
	})

	t.Run("name over limit rejected", func(t *testing.T) {
		long := strings.Repeat("x", field.MaxFieldNameLength+1)
		_, err := field.NewField(id, academyID, long, 15000, field.OperatingHours{}, true, true)
		assert.ErrorIs(t, err, field.ErrFieldNameTooLong)
	})

	t.Run("negative rate rejected", func(t *testing.T) {
		_, err := field.NewField(id, academyID, "Court", -1, field.OperatingHours{}, true, true)
		assert.ErrorIs(t, err, field.ErrNegativeRate)
	})

	t.Run("bookable requires both flags", func(t *testing.T) {
		fld, err := field.NewField(id, academyID, "Court", 0, field.OperatingHours{}, false, true)
		require.NoError(t, err)
		assert.False(t, fld.Bookable())

		fld, err = field.NewField(id, academyID, "Court", 0, field.OperatingHours{}, true, false)
		require.NoError(t, err)
		assert.False(t, fld.Bookable())
	})
}

func TestNewOperatingHours(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		h, err := field.NewOperatingHours(8*60, 22*60)
		require.NoError(t, err)
		assert.Equal(t, 480, h.OpenMinute)
		assert.Equal(t, 1320, h.CloseMinute)
		assert.False(t, h.IsZero())
	})

	t.Run("close before open rejected", func(t *testing.T) {
		_, err := field.NewOperatingHours(22*60, 8*60)
		assert.ErrorIs(t, err, field.ErrInvalidHours)
	})

	t.Run("close past midnight rejected", func(t *testing.T) {
		_, err := field.NewOperatingHours(8*60, 25*60)
		assert.ErrorIs(t, err, field.ErrInvalidHours)
	})
}

func TestOperatingHoursWindowOn(t *testing.T) {
	h, err := field.NewOperatingHours(8*60, 22*60)
	require.NoError(t, err)

	day := time.Date(2026, 9, 12, 13, 45, 0, 0, time.UTC)
	open, closeAt := h.WindowOn(day)

	assert.Equal(t, time.Date(2026, 9, 12, 8, 0, 0, 0, time.UTC), open)
	assert.Equal(t, time.Date(2026, 9, 12, 22, 0, 0, 0, time.UTC), closeAt)
}
