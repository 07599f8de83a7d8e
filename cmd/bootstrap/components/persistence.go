package components

import (
	"learnhub-checkout/internal/infra/cache"
	"learnhub-checkout/internal/infra/readstore"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/infra/uow"
	"learnhub-checkout/internal/pkg/config"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	cacheModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
	uow.NewPostgresUoW,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Cart
		func(q *sqlc.Queries) readstore.CartReadQueries { return q },
		fx.Annotate(
			readstore.NewCartReadStore,
			fx.As(new(queries.CartViewStore)),
		),
		// Order
		func(q *sqlc.Queries) readstore.OrderViewQueries { return q },
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderViewStore)),
		),
		// Enrollment
		func(q *sqlc.Queries) readstore.EnrollmentReadQueries { return q },
		fx.Annotate(
			readstore.NewEnrollmentReadStore,
			fx.As(new(queries.EnrollmentViewStore)),
		),
	),
)

var cacheModule = fx.Module("persistence/cache",
	fx.Provide(
		fx.Annotate(
			NewCartCache,
			fx.As(new(queries.CartViewCache)),
			fx.As(new(commands.CartCacheInvalidator)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func NewCartCache(client *redis.Client, cfg config.Config) *cache.CartCache {
	return cache.NewCartCache(client, cfg.Redis.CartTTL)
}
