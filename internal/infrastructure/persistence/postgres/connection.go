// Package postgres provides PostgreSQL database connection and management
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/forkcast/v2/internal/infrastructure/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// ConnectionManager manages the PostgreSQL connection pool and optional
// read replicas
type ConnectionManager struct {
	config  *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	writeDB *sql.DB
}

// NewConnectionManager opens the primary connection, configures the pool
// and registers read replicas when any are configured
func NewConnectionManager(cfg *config.Config, log *zap.Logger) (*ConnectionManager, error) {
	cm := &ConnectionManager{
		config: cfg,
		logger: log,
	}

	if err := cm.initializePrimaryConnection(); err != nil {
		return nil, fmt.Errorf("failed to initialize primary connection: %w", err)
	}

	if err := cm.initializeReadReplicas(); err != nil {
		log.Warn("Failed to initialize read replicas", zap.Error(err))
	}

	log.Info("Database connection manager initialized",
		zap.String("host", cfg.Database.Host),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		zap.Int("replica_count", len(cfg.Database.ReplicaHosts)),
	)

	return cm, nil
}

func (cm *ConnectionManager) initializePrimaryConnection() error {
	db, err := gorm.Open(postgres.Open(cm.config.Database.GetDSN()), &gorm.Config{
		Logger:                 cm.createGORMLogger(),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cm.config.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cm.config.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cm.config.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cm.config.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	cm.db = db
	cm.writeDB = sqlDB
	return nil
}

func (cm *ConnectionManager) initializeReadReplicas() error {
	dsns := cm.config.Database.GetReplicaDSNs()
	if len(dsns) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, len(dsns))
	for i, dsn := range dsns {
		replicas[i] = postgres.Open(dsn)
	}

	err := cm.db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RoundRobinPolicy(),
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replicas: %w", err)
	}

	return nil
}

func (cm *ConnectionManager) createGORMLogger() logger.Interface {
	logLevel := logger.Warn
	if cm.config.App.Debug {
		logLevel = logger.Info
	}

	return logger.New(
		zap.NewStdLog(cm.logger.Named("gorm")),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// GetDB returns the main database connection
func (cm *ConnectionManager) GetDB() *gorm.DB {
	return cm.db
}

// HealthCheck pings the primary connection
func (cm *ConnectionManager) HealthCheck(ctx context.Context) error {
	if err := cm.writeDB.PingContext(ctx); err != nil {
		return fmt.Errorf("primary database ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool
func (cm *ConnectionManager) Close() error {
	if cm.writeDB == nil {
		return nil
	}
	return cm.writeDB.Close()
}
