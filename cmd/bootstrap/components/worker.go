package components

import (
	"context"

	"fieldbook/internal/infra/writerepo"
	"fieldbook/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		newOutboxStore,
		worker.NewDispatcher,
		worker.NewReminder,
	),
	fx.Invoke(
		runDispatcher,
		runReminder,
	),
)

// The dispatcher runs outside booking transactions, so its outbox store
// works straight off the pool.
func newOutboxStore(pool *pgxpool.Pool) worker.OutboxStore {
	return writerepo.NewNotificationRepository(pool)
}

func runDispatcher(lc fx.Lifecycle, d *worker.Dispatcher) {
	runLoop(lc, d.Run)
}

func runReminder(lc fx.Lifecycle, r *worker.Reminder) {
	runLoop(lc, r.Run)
}

func runLoop(lc fx.Lifecycle, run func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
