package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/forkcast/v2/internal/domain/shoppinglist"
	"github.com/forkcast/v2/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingListRepository implements the shopping list repository using GORM
type ShoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new shopping list repository
func NewShoppingListRepository(db *gorm.DB) outbound.ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// Create persists a new list together with its seeded items
func (r *ShoppingListRepository) Create(ctx context.Context, list *shoppinglist.ShoppingList) error {
	model := ListToModel(list)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByWeekStart loads the list for the normalized week-start date, items
// ordered by partition sort order
func (r *ShoppingListRepository) FindByWeekStart(ctx context.Context, weekStart time.Time) (*shoppinglist.ShoppingList, error) {
	var model ShoppingListModel
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("source ASC, sort_order ASC, created_at ASC")
		}).
		Where("week_start = ?", weekStart).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shoppinglist.ErrNotFound
		}
		return nil, err
	}

	return ModelToList(&model), nil
}

// FindItemByID loads a single item
func (r *ShoppingListRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*shoppinglist.Item, error) {
	var model ShoppingListItemModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shoppinglist.ErrItemNotFound
		}
		return nil, err
	}

	item := ModelToItem(&model)
	return &item, nil
}

// InsertItems appends items to an existing list
func (r *ShoppingListRepository) InsertItems(ctx context.Context, listID uuid.UUID, items []shoppinglist.Item) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]ShoppingListItemModel, len(items))
	for i, item := range items {
		models[i] = ShoppingListItemModel{
			ID:             item.ID,
			ShoppingListID: listID,
			Name:           item.Name,
			Checked:        item.Checked,
			Source:         string(item.Source),
			Notes:          item.Notes,
			SortOrder:      item.SortOrder,
		}
	}

	return r.db.WithContext(ctx).Create(&models).Error
}

// DeleteItemByNameAndSource removes one (name, source) item from a list.
// Name matching is case-insensitive, mirroring the toggle semantics.
func (r *ShoppingListRepository) DeleteItemByNameAndSource(ctx context.Context, listID uuid.UUID, name string, source shoppinglist.Source) error {
	result := r.db.WithContext(ctx).
		Where("shopping_list_id = ? AND LOWER(name) = LOWER(?) AND source = ?", listID, name, string(source)).
		Delete(&ShoppingListItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shoppinglist.ErrItemNotFound
	}
	return nil
}

// UpdateItemChecked flips the checked flag on one item
func (r *ShoppingListRepository) UpdateItemChecked(ctx context.Context, itemID uuid.UUID, checked bool) error {
	result := r.db.WithContext(ctx).
		Model(&ShoppingListItemModel{}).
		Where("id = ?", itemID).
		Update("checked", checked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shoppinglist.ErrItemNotFound
	}
	return nil
}

// ReplaceMealItems atomically swaps the meal partition: delete and insert
// run in one transaction so concurrent readers never observe a half-synced
// list. Items of other sources are outside the statement's reach entirely.
func (r *ShoppingListRepository) ReplaceMealItems(ctx context.Context, listID uuid.UUID, items []shoppinglist.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("shopping_list_id = ? AND source = ?", listID, string(shoppinglist.SourceMeal)).
			Delete(&ShoppingListItemModel{}).Error; err != nil {
			return err
		}

		if len(items) == 0 {
			return nil
		}

		models := make([]ShoppingListItemModel, len(items))
		for i, item := range items {
			models[i] = ShoppingListItemModel{
				ID:             item.ID,
				ShoppingListID: listID,
				Name:           item.Name,
				Checked:        item.Checked,
				Source:         string(shoppinglist.SourceMeal),
				Notes:          item.Notes,
				SortOrder:      item.SortOrder,
			}
		}

		return tx.Create(&models).Error
	})
}
