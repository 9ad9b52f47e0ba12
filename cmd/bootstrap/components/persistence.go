package components

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"universe-api/internal/infra/db"
	"universe-api/internal/infra/eventbus"
	"universe-api/internal/infra/readstore"
	"universe-api/internal/infra/repository"
	"universe-api/internal/infra/uow"
	"universe-api/internal/pkg/config"
	"universe-api/internal/usecase/commands"
	"universe-api/internal/usecase/queries"
	"universe-api/internal/usecase/shared"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		func(u shared.UnitOfWork) shared.CommandReads { return u.CommandReads() },
		fx.Annotate(
			repository.NewConfigurator,
			fx.As(new(commands.InstanceConfigurator)),
		),
		fx.Annotate(
			readstore.NewUniverseReadStore,
			fx.As(new(queries.UniverseViewRepo)),
		),
		fx.Annotate(
			readstore.NewCampaignReadStore,
			fx.As(new(queries.CampaignViewRepo)),
		),
		NewEventBus,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewEventBus(client *redis.Client, cfg config.Config, logger *slog.Logger) shared.EventBus {
	return eventbus.NewRedisEventBus(client, cfg.Redis.EventChannel, logger)
}
