package booking

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle event topics consumed by the notification dispatcher.
const (
	TopicCreated     = "booking.created"
	TopicConfirmed   = "booking.confirmed"
	TopicCancelled   = "booking.cancelled"
	TopicCompleted   = "booking.completed"
	TopicUpdated     = "booking.updated"
	TopicReminderDue = "booking.reminder_due"
)

type LifecycleEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	FieldID    uuid.UUID `json:"field_id"`
	BookedBy   uuid.UUID `json:"booked_by"`
	Topic      string    `json:"topic"`
	Status     string    `json:"status"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e LifecycleEvent) EventName() string       { return e.Topic }
func (e LifecycleEvent) AggregateID() string     { return e.FieldID.String() }
func (e LifecycleEvent) OccurredTime() time.Time { return e.OccurredAt }

func NewLifecycleEvent(b *Booking, topic string, at time.Time) LifecycleEvent {
	return LifecycleEvent{
		BookingID:  b.ID(),
		FieldID:    b.FieldID(),
		BookedBy:   b.BookedBy(),
		Topic:      topic,
		Status:     b.Status().String(),
		StartTime:  b.Interval().Start(),
		EndTime:    b.Interval().End(),
		OccurredAt: at,
	}
}
