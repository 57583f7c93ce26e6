// Package outbound defines interfaces for driven adapters
package outbound

import (
	"context"
	"time"

	"github.com/forkcast/v2/internal/domain/inventory"
	"github.com/forkcast/v2/internal/domain/mealplan"
	"github.com/forkcast/v2/internal/domain/shoppinglist"
	"github.com/google/uuid"
)

// ShoppingListRepository persists weekly shopping lists and their items
type ShoppingListRepository interface {
	Create(ctx context.Context, list *shoppinglist.ShoppingList) error
	FindByWeekStart(ctx context.Context, weekStart time.Time) (*shoppinglist.ShoppingList, error)
	FindItemByID(ctx context.Context, itemID uuid.UUID) (*shoppinglist.Item, error)
	InsertItems(ctx context.Context, listID uuid.UUID, items []shoppinglist.Item) error
	DeleteItemByNameAndSource(ctx context.Context, listID uuid.UUID, name string, source shoppinglist.Source) error
	UpdateItemChecked(ctx context.Context, itemID uuid.UUID, checked bool) error

	// ReplaceMealItems deletes the list's meal partition and inserts the
	// given items as a single atomic unit. Items of other sources must not
	// be touched.
	ReplaceMealItems(ctx context.Context, listID uuid.UUID, items []shoppinglist.Item) error
}

// InventoryRepository persists the household master list
type InventoryRepository interface {
	Create(ctx context.Context, item *inventory.Item) error
	Update(ctx context.Context, item *inventory.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error)
	FindAll(ctx context.Context) ([]*inventory.Item, error)
	FindStaples(ctx context.Context) ([]*inventory.Item, error)

	// FindMatchable returns items with both a base ingredient and a
	// computed embedding
	FindMatchable(ctx context.Context) ([]*inventory.Item, error)
}

// MealPlanRepository reads the planned days consumed by the sync
type MealPlanRepository interface {
	// FindDaysInRange returns the plan days with date in [from, to)
	FindDaysInRange(ctx context.Context, from, to time.Time) ([]*mealplan.Day, error)
}

// CacheRepository defines caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) (bool, error)
}
