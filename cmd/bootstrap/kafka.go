package bootstrap

import (
	"context"

	"fieldbook/internal/infra/broker/kafka"
	"fieldbook/internal/pkg/config"
	"fieldbook/internal/worker"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewKafkaProducer,
		func(p *kafka.Producer) worker.EventPublisher { return p },
	),
)

func NewKafkaProducer(lc fx.Lifecycle, cfg config.Config) (*kafka.Producer, error) {
	producer, err := kafka.NewProducer(cfg.Kafka.Brokers, nil)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})

	return producer, nil
}
