package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID             uuid.UUID  `json:"id"`
	FieldID        uuid.UUID  `json:"field_id"`
	FieldName      string     `json:"field_name"`
	AcademyID      uuid.UUID  `json:"academy_id"`
	BookedBy       uuid.UUID  `json:"booked_by"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	Status         string     `json:"status"`
	TotalCost      string     `json:"total_cost"`
	Note           *string    `json:"note,omitempty"`
	MatchID        *uuid.UUID `json:"match_id,omitempty"`
	RefundEligible bool       `json:"refund_eligible"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID        uuid.UUID `json:"id"`
	FieldID   uuid.UUID `json:"field_id"`
	FieldName string    `json:"field_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	TotalCost string    `json:"total_cost"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingSummary is the conflict projection returned to callers: enough to
// identify the clash without exposing another requester's details.
type BookingSummary struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type IntervalView struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type FieldView struct {
	ID          uuid.UUID `json:"id"`
	AcademyID   uuid.UUID `json:"academy_id"`
	Name        string    `json:"name"`
	HourlyRate  string    `json:"hourly_rate"`
	RateCents   int64     `json:"-"`
	OpenMinute  *int32    `json:"open_minute,omitempty"`
	CloseMinute *int32    `json:"close_minute,omitempty"`
	IsAvailable bool      `json:"is_available"`
}

type AvailabilityResult struct {
	Available     bool             `json:"available"`
	Conflicts     []BookingSummary `json:"conflicts"`
	Suggestions   []IntervalView   `json:"suggestions"`
	EstimatedCost string           `json:"estimated_cost"`
}

type DayScheduleEntry struct {
	BookingID uuid.UUID `json:"booking_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type UtilizationResult struct {
	BookedHours    float64 `json:"booked_hours"`
	AvailableHours float64 `json:"available_hours"`
	Rate           float64 `json:"utilization_rate"`
	BookingCount   int     `json:"booking_count"`
}

type ReminderCandidate struct {
	BookingID uuid.UUID
	FieldID   uuid.UUID
	BookedBy  uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}
