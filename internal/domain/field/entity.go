package field

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyFieldName   = errors.New("field name cannot be empty")
	ErrNegativeRate     = errors.New("hourly rate cannot be negative")
	ErrFieldNameTooLong = errors.New("field name is too long (max 100 characters)")
	ErrInvalidHours     = errors.New("operating hours close must be after open")
)

const MaxFieldNameLength = 100

// OperatingHours is a daily bookable window expressed as minutes from
// midnight in the field's local day. A zero value means no restriction.
type OperatingHours struct {
	OpenMinute  int
	CloseMinute int
}

func NewOperatingHours(openMinute, closeMinute int) (OperatingHours, error) {
	if openMinute < 0 || closeMinute > 24*60 || closeMinute <= openMinute {
		return OperatingHours{}, ErrInvalidHours
	}
	return OperatingHours{OpenMinute: openMinute, CloseMinute: closeMinute}, nil
}

func (h OperatingHours) IsZero() bool {
	return h.OpenMinute == 0 && h.CloseMinute == 0
}

// WindowOn returns the open window for the calendar day containing t,
// in t's location.
func (h OperatingHours) WindowOn(t time.Time) (time.Time, time.Time) {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	open := midnight.Add(time.Duration(h.OpenMinute) * time.Minute)
	closeAt := midnight.Add(time.Duration(h.CloseMinute) * time.Minute)
	return open, closeAt
}

// Field is a bookable sports facility owned by an academy. The scheduler
// treats it as read-only; availability toggles are set by the directory
// service.
type Field struct {
	id          uuid.UUID
	academyID   uuid.UUID
	name        string
	rateCents   int64
	hours       OperatingHours
	isAvailable bool
	isActive    bool
}

func NewField(id, academyID uuid.UUID, name string, rateCents int64, hours OperatingHours, isAvailable, isActive bool) (*Field, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyFieldName
	}
	if len(name) > MaxFieldNameLength {
		return nil, ErrFieldNameTooLong
	}
	if rateCents < 0 {
		return nil, ErrNegativeRate
	}

	return &Field{
		id:          id,
		academyID:   academyID,
		name:        name,
		rateCents:   rateCents,
		hours:       hours,
		isAvailable: isAvailable,
		isActive:    isActive,
	}, nil
}

// Bookable reports whether new bookings may target this field at all.
func (f *Field) Bookable() bool {
	return f.isActive && f.isAvailable
}

func (f *Field) ID() uuid.UUID         { return f.id }
func (f *Field) AcademyID() uuid.UUID  { return f.academyID }
func (f *Field) Name() string          { return f.name }
func (f *Field) RateCents() int64      { return f.rateCents }
func (f *Field) Hours() OperatingHours { return f.hours }
func (f *Field) IsAvailable() bool     { return f.isAvailable }
func (f *Field) IsActive() bool        { return f.isActive }
