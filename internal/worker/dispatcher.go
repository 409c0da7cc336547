package worker

import (
	"context"
	"log/slog"
	"time"

	"fieldbook/internal/infra/writerepo"
	"fieldbook/internal/pkg/clock"
	"fieldbook/internal/pkg/config"

	"github.com/google/uuid"
)

const (
	dispatchBatchSize = 50
	// dispatchLease bounds how long a claimed job stays invisible to other
	// dispatchers before it comes due again.
	dispatchLease = time.Minute
)

// EventPublisher is implemented by the Kafka producer.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// OutboxStore is the claiming side of the notification outbox.
type OutboxStore interface {
	ClaimDueJobs(ctx context.Context, now, leaseUntil time.Time, limit int32) ([]writerepo.NotificationJob, error)
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastError *string) error
}

// Dispatcher drains the notification outbox: queued jobs written in booking
// transactions are published to the broker and marked sent. Claiming is a
// short lease update with SKIP LOCKED, so multiple dispatchers never hold
// the same job and no transaction stays open across broker I/O.
type Dispatcher struct {
	store     OutboxStore
	publisher EventPublisher
	clock     clock.Clock
	cfg       config.KafkaConfig
}

func NewDispatcher(store OutboxStore, publisher EventPublisher, clk clock.Clock, cfg config.KafkaConfig) *Dispatcher {
	return &Dispatcher{
		store:     store,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.DispatchOnce(ctx); err != nil {
				slog.Error("outbox dispatch failed", "error", err.Error())
			}
		}
	}
}

// DispatchOnce leases one batch, then publishes with no transaction open.
// The outbox is at-least-once: a crash between publish and the sent update
// re-delivers the job once its lease lapses.
func (d *Dispatcher) DispatchOnce(ctx context.Context) error {
	now := d.clock.Now()
	jobs, err := d.store.ClaimDueJobs(ctx, now, now.Add(dispatchLease), dispatchBatchSize)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		headers := map[string]string{
			"event_type": job.Topic,
			"kind":       job.Kind,
		}
		pubErr := d.publisher.Publish(ctx, d.cfg.EventTopic, job.ID.String(), job.Payload, headers)
		if pubErr != nil {
			msg := pubErr.Error()
			if uerr := d.store.UpdateJobStatus(ctx, job.ID, "failed", &msg); uerr != nil {
				return uerr
			}
			slog.Warn("failed to publish notification job",
				"job_id", job.ID,
				"topic", job.Topic,
				"error", msg)
			continue
		}
		if uerr := d.store.UpdateJobStatus(ctx, job.ID, "sent", nil); uerr != nil {
			return uerr
		}
	}

	return nil
}
