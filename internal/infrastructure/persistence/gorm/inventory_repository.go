package gorm

import (
	"context"
	"errors"

	"github.com/forkcast/v2/internal/domain/inventory"
	"github.com/forkcast/v2/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository implements the inventory repository using GORM
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) outbound.InventoryRepository {
	return &InventoryRepository{db: db}
}

// Create persists a new inventory item
func (r *InventoryRepository) Create(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Create(InventoryToModel(item)).Error
}

// Update saves changes to an existing inventory item
func (r *InventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	result := r.db.WithContext(ctx).Save(InventoryToModel(item))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

// Delete removes an inventory item
func (r *InventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&InventoryItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

// FindByID loads one inventory item
func (r *InventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var model InventoryItemModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrNotFound
		}
		return nil, err
	}
	return ModelToInventory(&model), nil
}

// FindAll returns the whole master list ordered by name
func (r *InventoryRepository) FindAll(ctx context.Context) ([]*inventory.Item, error) {
	var models []InventoryItemModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return modelsToInventory(models), nil
}

// FindStaples returns the staple items ordered by name
func (r *InventoryRepository) FindStaples(ctx context.Context) ([]*inventory.Item, error) {
	var models []InventoryItemModel
	err := r.db.WithContext(ctx).
		Where("type = ?", string(inventory.TypeStaple)).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return modelsToInventory(models), nil
}

// FindMatchable returns items that can take part in similarity matching:
// base ingredient known and embedding present
func (r *InventoryRepository) FindMatchable(ctx context.Context) ([]*inventory.Item, error) {
	var models []InventoryItemModel
	err := r.db.WithContext(ctx).
		Where("base_ingredient <> '' AND embedding IS NOT NULL").
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return modelsToInventory(models), nil
}

func modelsToInventory(models []InventoryItemModel) []*inventory.Item {
	items := make([]*inventory.Item, len(models))
	for i := range models {
		items[i] = ModelToInventory(&models[i])
	}
	return items
}
