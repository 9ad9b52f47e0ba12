package components

import (
	"go.uber.org/fx"

	"universe-api/internal/handler"
	"universe-api/internal/handler/api"
	"universe-api/internal/handler/middleware"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewUniverseHandler,
		api.NewCampaignHandler,
		api.NewReportHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
