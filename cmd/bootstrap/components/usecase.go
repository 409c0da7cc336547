package components

import (
	"fieldbook/internal/domain/booking"
	"fieldbook/internal/domain/schedule"
	"fieldbook/internal/pkg/clock"
	"fieldbook/internal/pkg/config"
	"fieldbook/internal/usecase/commands"
	"fieldbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewHourlyCostCalculator,
		fx.As(new(booking.CostCalculator)),
	),
	booking.NewFactory,
	func(cfg config.BookingConfig) *schedule.Suggester {
		return schedule.NewSuggester(cfg.MaxSuggestions)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)
