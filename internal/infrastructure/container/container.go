// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	appinventory "github.com/forkcast/v2/internal/application/inventory"
	appshoppinglist "github.com/forkcast/v2/internal/application/shoppinglist"
	"github.com/forkcast/v2/internal/infrastructure/ai/ollama"
	"github.com/forkcast/v2/internal/infrastructure/ai/openai"
	"github.com/forkcast/v2/internal/infrastructure/config"
	"github.com/forkcast/v2/internal/infrastructure/http/handlers"
	"github.com/forkcast/v2/internal/infrastructure/http/server"
	gormrepo "github.com/forkcast/v2/internal/infrastructure/persistence/gorm"
	"github.com/forkcast/v2/internal/infrastructure/persistence/memory"
	"github.com/forkcast/v2/internal/infrastructure/persistence/migrations"
	"github.com/forkcast/v2/internal/infrastructure/persistence/postgres"
	redisrepo "github.com/forkcast/v2/internal/infrastructure/persistence/redis"
	"github.com/forkcast/v2/internal/infrastructure/persistence/sqlite"
	"github.com/forkcast/v2/internal/ports/inbound"
	"github.com/forkcast/v2/internal/ports/outbound"
	"github.com/forkcast/v2/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
	func(log *zap.Logger) *zap.SugaredLogger {
		return log.Sugar()
	},
)

// DatabaseModule provides the database connection. PostgreSQL is the
// production driver; the sqlite driver gives a zero-setup development
// database with seeded inventory.
var DatabaseModule = fx.Provide(
	NewDatabase,
	func(db *gorm.DB) handlers.HealthChecker {
		return dbHealthChecker{db: db}
	},
)

// NewDatabase opens the configured database and applies schema migrations
func NewDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		path := ":memory:"
		if cfg.Database.Database != "" {
			path = cfg.Database.Database + ".db"
		}

		db, err := sqlite.NewDatabase(path, log)
		if err != nil {
			return nil, err
		}
		if err := db.SeedDevData(); err != nil {
			log.Warn("Failed to seed development data", zap.Error(err))
		}
		return db.GetDB(), nil

	case "postgres", "":
		cm, err := postgres.NewConnectionManager(cfg, log)
		if err != nil {
			return nil, err
		}

		if cfg.Database.AutoMigrate {
			sqlDB, err := cm.GetDB().DB()
			if err != nil {
				return nil, err
			}
			migrator, err := migrations.NewMigrator(sqlDB, cfg.Database.Database, log)
			if err != nil {
				return nil, err
			}
			if err := migrator.Up(); err != nil {
				return nil, err
			}
		}

		return cm.GetDB(), nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

type dbHealthChecker struct {
	db *gorm.DB
}

func (c dbHealthChecker) HealthCheck(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CacheModule provides the cache repository, Redis-backed when enabled
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if !cfg.Redis.Enabled {
			log.Info("Redis disabled, using in-memory cache")
			return memory.NewCacheRepository(), nil
		}

		client, err := redisrepo.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return redisrepo.NewCacheRepository(client, log), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormrepo.NewShoppingListRepository,
	gormrepo.NewInventoryRepository,
	gormrepo.NewMealPlanRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.AIService {
		if cfg.AI.Provider == "ollama" {
			return ollama.NewClient(log)
		}
		return openai.NewClient(cfg, log)
	},

	fx.Annotate(
		func(
			lists outbound.ShoppingListRepository,
			inventoryRepo outbound.InventoryRepository,
			mealPlans outbound.MealPlanRepository,
			ai outbound.AIService,
			cache outbound.CacheRepository,
			cfg *config.Config,
			log *zap.Logger,
		) *appshoppinglist.Service {
			return appshoppinglist.NewService(
				lists, inventoryRepo, mealPlans, ai, cache,
				cfg.Matching.SimilarityThreshold, log,
			)
		},
		fx.As(new(inbound.ShoppingListService)),
	),

	fx.Annotate(
		appinventory.NewService,
		fx.As(new(inbound.InventoryService)),
	),

	fx.Annotate(
		appinventory.NewBackfill,
		fx.As(new(inbound.BackfillService)),
	),
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
