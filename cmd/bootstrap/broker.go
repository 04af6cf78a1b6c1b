package bootstrap

import (
	"context"

	"studysync-api/internal/infra/events"
	"studysync-api/internal/pkg/config"
	"studysync-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewBookingPublisher,
	),
)

func NewBookingPublisher(lc fx.Lifecycle, cfg config.Config) commands.EventPublisher {
	publisher, cleanup := events.NewBookingPublisher(cfg.Broker)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return publisher
}
