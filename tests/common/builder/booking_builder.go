//go:build unit || e2e

package builder

import (
	"time"

	dombooking "fieldbook/internal/domain/booking"
	reqdto "fieldbook/internal/handler/dto/request"
	"fieldbook/internal/usecase/queries"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID        uuid.UUID
	FieldID   uuid.UUID
	FieldName string
	AcademyID uuid.UUID
	BookedBy  uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    dombooking.Status
	CostCents int64
	Note      string
	MatchID   *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(48 * time.Hour).Truncate(time.Hour)
	return &BookingBuilder{
		ID:        uuid.New(),
		FieldID:   uuid.New(),
		FieldName: "Center Court",
		AcademyID: uuid.New(),
		BookedBy:  uuid.New(),
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Status:    dombooking.StatusPending,
		CostCents: 30000,
		Note:      "friendly match",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *BookingBuilder) BuildDomain() *dombooking.Booking {
	iv := dombooking.MustInterval(b.StartTime, b.EndTime)
	return dombooking.Reconstruct(
		b.ID, b.FieldID, b.BookedBy,
		iv,
		b.Status,
		dombooking.NewMoney(b.CostCents),
		dombooking.NewNote(b.Note),
		b.MatchID,
		false, true,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	note := b.Note
	return reqdto.CreateBookingRequest{
		FieldID:   b.FieldID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Note:      &note,
		MatchID:   b.MatchID,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	note := b.Note
	return &queries.BookingView{
		ID:        b.ID,
		FieldID:   b.FieldID,
		FieldName: b.FieldName,
		AcademyID: b.AcademyID,
		BookedBy:  b.BookedBy,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status.String(),
		TotalCost: dombooking.NewMoney(b.CostCents).String(),
		Note:      &note,
		MatchID:   b.MatchID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:        b.ID,
		FieldID:   b.FieldID,
		FieldName: b.FieldName,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status.String(),
		TotalCost: dombooking.NewMoney(b.CostCents).String(),
		CreatedAt: b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	note := b.Note
	return &shared.BookingSnapshot{
		ID:             b.ID,
		FieldID:        b.FieldID,
		BookedBy:       b.BookedBy,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Status:         b.Status.String(),
		TotalCostCents: b.CostCents,
		Note:           &note,
		MatchID:        b.MatchID,
		IsActive:       true,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithFieldID(fieldID uuid.UUID) *BookingBuilder {
	b.FieldID = fieldID
	return b
}

func (b *BookingBuilder) WithBookedBy(userID uuid.UUID) *BookingBuilder {
	b.BookedBy = userID
	return b
}

func (b *BookingBuilder) WithInterval(start, end time.Time) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithCostCents(cents int64) *BookingBuilder {
	b.CostCents = cents
	return b
}

func (b *BookingBuilder) WithMatchID(matchID uuid.UUID) *BookingBuilder {
	b.MatchID = &matchID
	return b
}
