package response

import (
	"time"

	"fieldbook/internal/usecase/commands"
	"fieldbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID             uuid.UUID  `json:"id"`
	FieldID        uuid.UUID  `json:"fieldId"`
	FieldName      string     `json:"fieldName"`
	AcademyID      uuid.UUID  `json:"academyId"`
	BookedBy       uuid.UUID  `json:"bookedBy"`
	StartTime      time.Time  `json:"startTime"`
	EndTime        time.Time  `json:"endTime"`
	Status         string     `json:"status"`
	TotalCost      string     `json:"totalCost"`
	Note           *string    `json:"note,omitempty"`
	MatchID        *uuid.UUID `json:"matchId,omitempty"`
	RefundEligible bool       `json:"refundEligible"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID        uuid.UUID `json:"id"`
	FieldID   uuid.UUID `json:"fieldId"`
	FieldName string    `json:"fieldName"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	TotalCost string    `json:"totalCost"`
	CreatedAt time.Time `json:"createdAt"`
}

type ConflictItem struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

type SlotItem struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// ConflictDetail is the 409 payload: what clashed and where the requested
// duration would fit instead.
type ConflictDetail struct {
	Conflicts   []ConflictItem `json:"conflicts"`
	Suggestions []SlotItem     `json:"suggestions"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:             rm.ID,
		FieldID:        rm.FieldID,
		FieldName:      rm.FieldName,
		AcademyID:      rm.AcademyID,
		BookedBy:       rm.BookedBy,
		StartTime:      rm.StartTime,
		EndTime:        rm.EndTime,
		Status:         rm.Status,
		TotalCost:      rm.TotalCost,
		Note:           rm.Note,
		MatchID:        rm.MatchID,
		RefundEligible: rm.RefundEligible,
		CreatedAt:      rm.CreatedAt,
		UpdatedAt:      rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:        rm.ID,
		FieldID:   rm.FieldID,
		FieldName: rm.FieldName,
		StartTime: rm.StartTime,
		EndTime:   rm.EndTime,
		Status:    rm.Status,
		TotalCost: rm.TotalCost,
		CreatedAt: rm.CreatedAt,
	}
}

func FromConflictError(ce *commands.ConflictError) ConflictDetail {
	detail := ConflictDetail{
		Conflicts:   make([]ConflictItem, 0, len(ce.Conflicts)),
		Suggestions: make([]SlotItem, 0, len(ce.Suggestions)),
	}
	for _, cf := range ce.Conflicts {
		detail.Conflicts = append(detail.Conflicts, ConflictItem{
			ID:        cf.ID,
			StartTime: cf.StartTime,
			EndTime:   cf.EndTime,
			Status:    cf.Status,
		})
	}
	for _, s := range ce.Suggestions {
		detail.Suggestions = append(detail.Suggestions, SlotItem{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return detail
}
