//go:build unit

package worker_test

import (
	"context"
	"testing"
	"time"

	"fieldbook/internal/infra/writerepo"
	"fieldbook/internal/pkg/clock"
	"fieldbook/internal/pkg/config"
	"fieldbook/internal/pkg/errs"
	"fieldbook/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// fakeOutbox records lease claims and status updates in memory.
type fakeOutbox struct {
	due        []writerepo.NotificationJob
	claims     []leaseClaim
	statuses   map[uuid.UUID]string
	lastErrors map[uuid.UUID]*string
}

type leaseClaim struct {
	now        time.Time
	leaseUntil time.Time
	limit      int32
}

func (f *fakeOutbox) ClaimDueJobs(_ context.Context, now, leaseUntil time.Time, limit int32) ([]writerepo.NotificationJob, error) {
	f.claims = append(f.claims, leaseClaim{now: now, leaseUntil: leaseUntil, limit: limit})
	jobs := f.due
	f.due = nil
	return jobs, nil
}

func (f *fakeOutbox) UpdateJobStatus(_ context.Context, jobID uuid.UUID, status string, lastError *string) error {
	f.statuses[jobID] = status
	f.lastErrors[jobID] = lastError
	return nil
}

// fakePublisher captures publishes and can fail selected keys.
type fakePublisher struct {
	published []publishedRecord
	failKeys  map[string]error
}

type publishedRecord struct {
	topic   string
	key     string
	headers map[string]string
}

func (p *fakePublisher) Publish(_ context.Context, topic, key string, _ []byte, headers map[string]string) error {
	if err, ok := p.failKeys[key]; ok {
		return err
	}
	p.published = append(p.published, publishedRecord{topic: topic, key: key, headers: headers})
	return nil
}

type DispatcherSuite struct {
	suite.Suite
	outbox    *fakeOutbox
	publisher *fakePublisher
	clock     *clock.MockClock
	d         *worker.Dispatcher
	now       time.Time
	cfg       config.KafkaConfig
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.now = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	s.clock = clock.NewMockClock(s.now)
	s.outbox = &fakeOutbox{
		statuses:   map[uuid.UUID]string{},
		lastErrors: map[uuid.UUID]*string{},
	}
	s.publisher = &fakePublisher{failKeys: map[string]error{}}

	s.cfg = config.NewTestConfig().Kafka
	s.d = worker.NewDispatcher(s.outbox, s.publisher, s.clock, s.cfg)
}

// Each subtest gets a fresh outbox and publisher.
func (s *DispatcherSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *DispatcherSuite) job(topic string) writerepo.NotificationJob {
	return writerepo.NotificationJob{
		ID:      uuid.New(),
		Kind:    "email",
		Topic:   topic,
		Payload: []byte(`{}`),
	}
}

func (s *DispatcherSuite) TestDispatchOnce() {
	s.Run("publishes claimed jobs and marks them sent", func() {
		created := s.job("booking.created")
		confirmed := s.job("booking.confirmed")
		s.outbox.due = []writerepo.NotificationJob{created, confirmed}

		s.Require().NoError(s.d.DispatchOnce(context.Background()))

		s.Require().Len(s.publisher.published, 2)
		s.Equal(s.cfg.EventTopic, s.publisher.published[0].topic)
		s.Equal(created.ID.String(), s.publisher.published[0].key)
		s.Equal("booking.created", s.publisher.published[0].headers["event_type"])
		s.Equal("email", s.publisher.published[0].headers["kind"])

		s.Equal("sent", s.outbox.statuses[created.ID])
		s.Equal("sent", s.outbox.statuses[confirmed.ID])
	})

	s.Run("claim is a bounded lease", func() {
		s.Require().NoError(s.d.DispatchOnce(context.Background()))

		s.Require().NotEmpty(s.outbox.claims)
		c := s.outbox.claims[len(s.outbox.claims)-1]
		s.Equal(s.now, c.now)
		s.True(c.leaseUntil.After(c.now), "lease must extend past the claim time")
		s.Positive(c.limit)
	})

	s.Run("failed publish marks the job failed and keeps going", func() {
		broken := s.job("booking.cancelled")
		healthy := s.job("booking.updated")
		s.outbox.due = []writerepo.NotificationJob{broken, healthy}
		s.publisher.failKeys[broken.ID.String()] = errs.New("broker unreachable")

		s.Require().NoError(s.d.DispatchOnce(context.Background()))

		s.Equal("failed", s.outbox.statuses[broken.ID])
		s.Require().NotNil(s.outbox.lastErrors[broken.ID])
		s.Contains(*s.outbox.lastErrors[broken.ID], "broker unreachable")

		s.Equal("sent", s.outbox.statuses[healthy.ID])
		s.Require().Len(s.publisher.published, 1)
		s.Equal(healthy.ID.String(), s.publisher.published[0].key)
	})

	s.Run("no due jobs is a no-op", func() {
		s.Require().NoError(s.d.DispatchOnce(context.Background()))
		s.Empty(s.publisher.published)
	})
}
