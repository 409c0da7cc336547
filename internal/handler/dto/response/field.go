package response

import (
	"time"

	"fieldbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityResponse struct {
	Available     bool           `json:"available"`
	Conflicts     []ConflictItem `json:"conflicts"`
	Suggestions   []SlotItem     `json:"suggestions"`
	EstimatedCost string         `json:"estimatedCost"`
}

type ScheduleEntryResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

type UtilizationResponse struct {
	BookedHours    float64 `json:"bookedHours"`
	AvailableHours float64 `json:"availableHours"`
	Rate           float64 `json:"utilizationRate"`
	BookingCount   int     `json:"bookingCount"`
}

func FromAvailabilityResult(rm *queries.AvailabilityResult) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		Available:     rm.Available,
		Conflicts:     make([]ConflictItem, 0, len(rm.Conflicts)),
		Suggestions:   make([]SlotItem, 0, len(rm.Suggestions)),
		EstimatedCost: rm.EstimatedCost,
	}
	for _, cf := range rm.Conflicts {
		resp.Conflicts = append(resp.Conflicts, ConflictItem{
			ID:        cf.ID,
			StartTime: cf.StartTime,
			EndTime:   cf.EndTime,
			Status:    cf.Status,
		})
	}
	for _, s := range rm.Suggestions {
		resp.Suggestions = append(resp.Suggestions, SlotItem{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return resp
}

func FromScheduleEntries(entries []queries.DayScheduleEntry) []ScheduleEntryResponse {
	resp := make([]ScheduleEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, ScheduleEntryResponse{
			BookingID: e.BookingID,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Status:    e.Status,
		})
	}
	return resp
}

func FromUtilizationResult(rm *queries.UtilizationResult) *UtilizationResponse {
	return &UtilizationResponse{
		BookedHours:    rm.BookedHours,
		AvailableHours: rm.AvailableHours,
		Rate:           rm.Rate,
		BookingCount:   rm.BookingCount,
	}
}
