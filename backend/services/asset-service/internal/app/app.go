package app

import (
	"context"
	"database/sql"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gridvolt/backend/libs/db"
	libredis "gridvolt/backend/libs/redis"
	"gridvolt/backend/services/asset-service/internal/config"
	"gridvolt/backend/services/asset-service/internal/connector"
	httpserver "gridvolt/backend/services/asset-service/internal/http"
	"gridvolt/backend/services/asset-service/internal/http/handlers"
	redisstore "gridvolt/backend/services/asset-service/internal/redis"
	"gridvolt/backend/services/asset-service/internal/repository"
	"gridvolt/backend/services/asset-service/internal/service"
)

// App wires asset service dependencies.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New constructs application components.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgresDB(cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.ConnectorTimeout()
	if err != nil {
		return nil, err
	}
	registry, err := connector.NewRegistry(cfg.Connectors.Connections, timeout, logger)
	if err != nil {
		return nil, err
	}

	// Redis is optional: without it, retrievals fall back to the optimistic
	// version check alone.
	var redisClient *goredis.Client
	var lock service.RetrievalLocker
	if cfg.Redis.Addr != "" {
		redisClient, err = libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		ttl, err := cfg.RedisLockTTL()
		if err != nil {
			return nil, err
		}
		lock = redisstore.NewRetrievalLock(redisClient, ttl)
	}

	assetRepo := repository.NewAssetRepository(sqlDB)
	consumptionRepo := repository.NewConsumptionRepository(sqlDB)

	assetService := service.NewAssetService(assetRepo, logger)
	telemetryService := service.NewTelemetryService(assetRepo, consumptionRepo, registry, lock, timeout, logger)
	consumptionQuery := service.NewConsumptionQueryService(assetRepo, consumptionRepo, logger)
	errorClassifier := service.NewErrorClassifierService(assetRepo, logger)

	routes := httpserver.Routes{
		AssetCreate:          handlers.NewAssetCreateHandler(assetService),
		AssetGet:             handlers.NewAssetGetHandler(assetService),
		AssetUpdate:          handlers.NewAssetUpdateHandler(assetService),
		AssetDelete:          handlers.NewAssetDeleteHandler(assetService),
		AssetsList:           handlers.NewAssetsListHandler(assetService),
		AssetConsumption:     handlers.NewAssetConsumptionHandler(consumptionQuery),
		AssetConnectionCheck: handlers.NewAssetConnectionHandler(telemetryService),
		AssetRetrieve:        handlers.NewAssetRetrieveHandler(telemetryService, logger),
		AssetsInError:        handlers.NewAssetsInErrorHandler(errorClassifier),
		Health:               handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Run starts serving HTTP requests.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
