package components

import (
	"go.uber.org/fx"

	"universe-api/internal/pkg/clock"
	"universe-api/internal/usecase/commands"
	"universe-api/internal/usecase/queries"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		commands.NewRules,
		commands.NewAuthCommands,
		commands.NewUniverseUseCase,
		commands.NewCampaignUseCase,
		commands.NewReportUseCase,
		queries.NewUniverseQueries,
		queries.NewCampaignQueries,
	),
)
