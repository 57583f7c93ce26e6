// Package sqlite provides a file-backed database for local development so
// the app runs without a PostgreSQL instance.
package sqlite

import (
	"fmt"

	"github.com/forkcast/v2/internal/domain/inventory"
	gormmodels "github.com/forkcast/v2/internal/infrastructure/persistence/gorm"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps a SQLite-backed GORM connection
type Database struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDatabase opens (or creates) the database at path and migrates the
// schema. Pass ":memory:" for an ephemeral database.
func NewDatabase(path string, log *zap.Logger) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(gormmodels.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Info("SQLite database ready", zap.String("path", path))

	return &Database{db: db, logger: log}, nil
}

// GetDB returns the GORM connection
func (d *Database) GetDB() *gorm.DB {
	return d.db
}

// Close closes the underlying connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedDevData inserts a small starter inventory when the table is empty,
// so a fresh development database produces a non-trivial shopping list.
func (d *Database) SeedDevData() error {
	var count int64
	if err := d.db.Model(&gormmodels.InventoryItemModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	staples := []string{"Salt", "Black Pepper", "Olive Oil", "Garlic", "Butter"}
	restocks := []string{"Dish Soap", "Paper Towels"}

	for _, name := range staples {
		item, err := inventory.NewItem(name, inventory.TypeStaple, uuid.Nil)
		if err != nil {
			return err
		}
		if err := d.db.Create(gormmodels.InventoryToModel(item)).Error; err != nil {
			return err
		}
	}
	for _, name := range restocks {
		item, err := inventory.NewItem(name, inventory.TypeRestock, uuid.Nil)
		if err != nil {
			return err
		}
		if err := d.db.Create(gormmodels.InventoryToModel(item)).Error; err != nil {
			return err
		}
	}

	d.logger.Info("Seeded development inventory",
		zap.Int("staples", len(staples)),
		zap.Int("restocks", len(restocks)),
	)
	return nil
}
