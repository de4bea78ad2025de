// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appmatching "github.com/alchemorsel/matchmaker/internal/application/matching"
	"github.com/alchemorsel/matchmaker/internal/application/saved"
	"github.com/alchemorsel/matchmaker/internal/infrastructure/catalog/mealdb"
	"github.com/alchemorsel/matchmaker/internal/infrastructure/config"
	"github.com/alchemorsel/matchmaker/internal/infrastructure/http/apiserver"
	"github.com/alchemorsel/matchmaker/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/matchmaker/internal/infrastructure/monitoring"
	gormRepo "github.com/alchemorsel/matchmaker/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/matchmaker/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/matchmaker/internal/infrastructure/persistence/postgres"
	rediscache "github.com/alchemorsel/matchmaker/internal/infrastructure/persistence/redis"
	"github.com/alchemorsel/matchmaker/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/matchmaker/internal/ports/inbound"
	"github.com/alchemorsel/matchmaker/internal/ports/outbound"
	"github.com/alchemorsel/matchmaker/pkg/healthcheck"
	"github.com/alchemorsel/matchmaker/pkg/logger"
)

// Module provides all dependency injection modules. configPath may be empty
// to search the default locations.
func Module(configPath string) fx.Option {
	return fx.Options(
		// Infrastructure modules
		ConfigModule(configPath),
		LoggerModule,
		DatabaseModule,
		CacheModule,
		MonitoringModule,
		CatalogModule,

		// Repository modules
		RepositoryModule,

		// Service modules
		ServiceModule,

		// HTTP modules
		HTTPModule,

		// Lifecycle hooks
		LifecycleModule,
	)
}

// ConfigModule provides configuration
func ConfigModule(configPath string) fx.Option {
	return fx.Provide(func() (*config.Config, error) {
		return config.Load(configPath)
	})
}

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the database selected by database.driver
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		switch cfg.Database.Driver {
		case "postgres":
			return postgres.Connect(cfg, log)
		default:
			db, err := sqlite.SetupDatabase(cfg.Database.Path, gormRepo.ParseLogLevel(cfg.Database.LogLevel), cfg.Database.AutoMigrate)
			if err != nil {
				return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
			}
			log.Info("Connected to SQLite database",
				zap.String("path", cfg.Database.Path),
				zap.Bool("in_memory", cfg.Database.Path == "" || cfg.Database.Path == ":memory:"),
			)
			return db, nil
		}
	},
)

// CacheModule provides the cache selected by cache.provider. The Redis
// client is nil unless Redis is selected.
var CacheModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (goredis.UniversalClient, error) {
		if cfg.Cache.Provider != "redis" {
			return nil, nil
		}
		client, err := rediscache.NewClient(&cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return client.Close() }})
		return client, nil
	},
	func(lc fx.Lifecycle, cfg *config.Config, client goredis.UniversalClient, log *zap.Logger) outbound.CacheRepository {
		if client != nil {
			log.Info("Using Redis cache", zap.String("prefix", cfg.Cache.KeyPrefix))
			return rediscache.NewCacheRepository(client, cfg.Cache.KeyPrefix, log)
		}

		log.Info("Using in-memory cache")
		cache := memory.NewCacheRepository(cfg.Cache.CleanupInterval)
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return cache.Close() }})
		return cache
	},
)

// MonitoringModule provides metrics and tracing
var MonitoringModule = fx.Options(
	fx.Provide(
		monitoring.NewMetricsCollector,
		func(m *monitoring.MetricsCollector) outbound.MatchMetrics { return m },
		func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
			tp, err := monitoring.NewTracingProvider(monitoring.TracingConfig{
				ServiceName:    cfg.App.Name,
				ServiceVersion: cfg.App.Version,
				Environment:    cfg.App.Environment,
				OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
				OTLPInsecure:   cfg.Monitoring.OTLPInsecure,
				SamplingRate:   cfg.Monitoring.SamplingRate,
				Enabled:        cfg.Monitoring.EnableTracing,
			}, log)
			if err != nil {
				return nil, err
			}
			lc.Append(fx.Hook{OnStop: tp.Shutdown})
			return tp, nil
		},
	),
	// Tracing must be installed before the first span is started.
	fx.Invoke(func(*monitoring.TracingProvider) {}),
)

// CatalogModule provides the recipe catalog client
var CatalogModule = fx.Provide(
	func(cfg *config.Config, metrics *monitoring.MetricsCollector, log *zap.Logger) outbound.CatalogSource {
		return mealdb.NewClient(mealdb.Config{
			BaseURL:           cfg.Catalog.BaseURL,
			Timeout:           cfg.Catalog.Timeout,
			RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
			Burst:             cfg.Catalog.Burst,
			BreakerFailures:   cfg.Catalog.BreakerFailures,
			BreakerTimeout:    cfg.Catalog.BreakerTimeout,
		}, metrics, log)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewSavedRecipeRepository,
	gormRepo.NewProfileRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(
		catalog outbound.CatalogSource,
		cache outbound.CacheRepository,
		metrics outbound.MatchMetrics,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.MatchService {
		return appmatching.NewMatchService(catalog, cache, metrics, appmatching.Config{
			MaxCandidates:       cfg.Catalog.MaxCandidates,
			RandomFallbackCount: cfg.Catalog.RandomFallbackCount,
			LookupConcurrency:   cfg.Catalog.LookupConcurrency,
			DefaultLimit:        cfg.Matching.DefaultLimit,
			MaxLimit:            cfg.Matching.MaxLimit,
			CacheTTL:            cfg.Cache.TTL,
		}, log)
	},
	saved.NewSavedService,
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	handlers.NewAPIHandlers,
	func(cfg *config.Config, db *gorm.DB, client goredis.UniversalClient, log *zap.Logger) (*healthcheck.HealthCheck, error) {
		health := healthcheck.New(cfg.App.Version, log)

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		health.Register("database", healthcheck.NewDatabaseChecker(sqlDB))
		if client != nil {
			health.Register("redis", healthcheck.NewRedisChecker(client))
		}
		return health, nil
	},
	func(
		cfg *config.Config,
		api *handlers.APIHandlers,
		health *healthcheck.HealthCheck,
		metrics *monitoring.MetricsCollector,
		log *zap.Logger,
	) *apiserver.Server {
		if !cfg.Monitoring.EnableMetrics {
			metrics = nil
		}
		return apiserver.NewServer(cfg, api, health, metrics, log)
	},
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Matchmaker",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("address", cfg.GetServerAddr()),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Matchmaker")

			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
