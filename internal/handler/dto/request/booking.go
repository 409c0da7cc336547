package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	FieldID   uuid.UUID  `json:"field_id" binding:"required"`
	StartTime time.Time  `json:"start_time" binding:"required"`
	EndTime   time.Time  `json:"end_time" binding:"required"`
	BookedBy  *uuid.UUID `json:"booked_by,omitempty"` // managers may book on behalf
	Note      *string    `json:"note,omitempty"`
	MatchID   *uuid.UUID `json:"match_id,omitempty"`
}

func (r CreateBookingRequest) GetNote() *string {
	if r.Note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type RescheduleBookingRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type CompleteBookingRequest struct {
	Override bool `json:"override"`
}

type AvailabilityRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
