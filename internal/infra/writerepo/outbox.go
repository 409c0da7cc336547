package writerepo

import (
	"context"
	"time"

	"fieldbook/internal/infra"
	"fieldbook/internal/infra/db"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// NotificationRepository is the transactional outbox: lifecycle events are
// queued in the same transaction as the booking write and published by the
// dispatcher worker afterwards.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

var _ shared.NotificationRepository = (*NotificationRepository)(nil)

const createJobSQL = `
INSERT INTO notification_jobs (id, kind, topic, payload, dedupe_key, run_at, status)
VALUES ($1, $2, $3, $4, $5, $6, 'queued')
ON CONFLICT (dedupe_key) DO NOTHING`

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, dedupeKey string, runAt time.Time) error {
	_, err := r.db.Exec(ctx, createJobSQL, uuid.New(), kind, topic, payload, dedupeKey, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// NotificationJob is the dispatcher's claim of a queued outbox row.
type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}

const claimDueJobsSQL = `
UPDATE notification_jobs
SET run_at = $2, updated_at = now()
WHERE id IN (
	SELECT id
	FROM notification_jobs
	WHERE status = 'queued' AND run_at <= $1
	ORDER BY run_at
	LIMIT $3
	FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, topic, payload, attempts`

// ClaimDueJobs leases up to limit due rows by pushing run_at to leaseUntil
// in one short transaction. SKIP LOCKED keeps concurrent dispatchers off the
// same rows; a claimer that dies before marking the job sent simply lets the
// lease lapse and the job comes due again.
func (r *NotificationRepository) ClaimDueJobs(ctx context.Context, now, leaseUntil time.Time, limit int32) ([]NotificationJob, error) {
	rows, err := r.db.Query(ctx, claimDueJobsSQL, now, leaseUntil, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

const updateJobStatusSQL = `
UPDATE notification_jobs
SET status = $2, attempts = attempts + 1, last_error = $3, updated_at = now()
WHERE id = $1`

func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastError *string) error {
	_, err := r.db.Exec(ctx, updateJobStatusSQL, jobID, status, lastError)
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}
