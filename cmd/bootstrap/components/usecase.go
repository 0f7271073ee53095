package components

import (
	"go.uber.org/fx"

	"lendhub/internal/pkg/clock"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/notify"
	"lendhub/internal/usecase/queries"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	notify.NewNotifier,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRentalCommands,
		commands.NewCoordinationCommands,
		commands.NewChatCommands,
		commands.NewNotificationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		// The read side applies the lazy payment expiry through the
		// command side.
		func(cmds commands.RentalCommands) queries.Expirer { return cmds },
		queries.NewRentalQueries,
		queries.NewChatQueries,
		queries.NewNotificationQueries,
	),
)
