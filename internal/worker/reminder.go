package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/pkg/clock"
	"fieldbook/internal/pkg/config"
	"fieldbook/internal/usecase/queries"
	"fieldbook/internal/usecase/shared"
)

// Reminder scans for confirmed bookings whose start time falls inside the
// lead window and queues one reminder event per booking. The outbox dedupe
// key makes overlapping scans harmless.
type Reminder struct {
	views queries.BookingQueries
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewReminder(views queries.BookingQueries, uow shared.UnitOfWork, clk clock.Clock, cfg config.BookingConfig) *Reminder {
	return &Reminder{
		views: views,
		uow:   uow,
		clock: clk,
		cfg:   cfg,
	}
}

func (r *Reminder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.ReminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.ScanOnce(ctx); err != nil {
				slog.Error("reminder scan failed", "error", err.Error())
			}
		}
	}
}

// ScanOnce queues reminders for bookings starting in
// [now+lead-1h, now+lead).
func (r *Reminder) ScanOnce(ctx context.Context) error {
	now := r.clock.Now()
	to := now.Add(r.cfg.ReminderLead)
	from := to.Add(-time.Hour)

	due, err := r.views.DueReminders(ctx, from, to)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, c := range due {
			payload, merr := json.Marshal(reminderPayload{
				BookingID: c.BookingID.String(),
				FieldID:   c.FieldID.String(),
				BookedBy:  c.BookedBy.String(),
				Topic:     booking.TopicReminderDue,
				StartTime: c.StartTime,
				EndTime:   c.EndTime,
				QueuedAt:  now,
			})
			if merr != nil {
				return merr
			}
			dedupe := fmt.Sprintf("%s:%s", booking.TopicReminderDue, c.BookingID)
			if jerr := tx.Notifications().CreateJob(ctx, "email", booking.TopicReminderDue, payload, dedupe, now); jerr != nil {
				return jerr
			}
		}
		slog.Info("queued booking reminders", "count", len(due))
		return nil
	})
}

type reminderPayload struct {
	BookingID string    `json:"booking_id"`
	FieldID   string    `json:"field_id"`
	BookedBy  string    `json:"booked_by"`
	Topic     string    `json:"topic"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	QueuedAt  time.Time `json:"queued_at"`
}
