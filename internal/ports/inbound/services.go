// Package inbound defines use-case interfaces and their DTOs
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ShoppingListItemDTO is one entry of a weekly list as exposed to callers
type ShoppingListItemDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Checked bool      `json:"checked"`
	Source  string    `json:"source"`
	Notes   string    `json:"notes,omitempty"`
	Order   int       `json:"order"`
}

// ShoppingListDTO is a weekly list as exposed to callers
type ShoppingListDTO struct {
	ID        uuid.UUID             `json:"id"`
	WeekStart time.Time             `json:"week_start"`
	Items     []ShoppingListItemDTO `json:"items"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// AddManualItemCommand adds a hand-typed entry to a week's list
type AddManualItemCommand struct {
	WeekStart time.Time `json:"week_start"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes"`
}

// ToggleInventoryItemCommand includes or excludes an inventory item on a
// week's list
type ToggleInventoryItemCommand struct {
	WeekStart       time.Time `json:"week_start"`
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Included        bool      `json:"included"`
}

// ShoppingListService drives the weekly shopping list
type ShoppingListService interface {
	// GetWeek returns the list for the week, creating and seeding it on
	// first access
	GetWeek(ctx context.Context, weekStart time.Time) (*ShoppingListDTO, error)

	// SyncMealIngredients regenerates the meal partition of the week's
	// list from the current meal plan
	SyncMealIngredients(ctx context.Context, weekStart time.Time) (*ShoppingListDTO, error)

	AddManualItem(ctx context.Context, cmd AddManualItemCommand) (*ShoppingListDTO, error)
	SetItemChecked(ctx context.Context, itemID uuid.UUID, checked bool) error
	ToggleInventoryItem(ctx context.Context, cmd ToggleInventoryItemCommand) (*ShoppingListDTO, error)
}

// InventoryItemDTO is a master list entry as exposed to callers
type InventoryItemDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	BaseIngredient string    `json:"base_ingredient,omitempty"`
	Type           string    `json:"type"`
	CategoryID     uuid.UUID `json:"category_id,omitempty"`
	HasEmbedding   bool      `json:"has_embedding"`
}

// CreateInventoryItemCommand adds an item to the master list
type CreateInventoryItemCommand struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	CategoryID uuid.UUID `json:"category_id"`
}

// InventoryService manages the household master list
type InventoryService interface {
	ListItems(ctx context.Context) ([]InventoryItemDTO, error)
	CreateItem(ctx context.Context, cmd CreateInventoryItemCommand) (*InventoryItemDTO, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// BackfillReport summarizes one backfill run
type BackfillReport struct {
	BaseIngredientsDerived int `json:"base_ingredients_derived"`
	EmbeddingsComputed     int `json:"embeddings_computed"`
	Skipped                int `json:"skipped"`
}

// BackfillService populates missing base ingredients and embeddings on
// the master list. Runs as a detached batch job, never on a request path.
type BackfillService interface {
	Run(ctx context.Context) (*BackfillReport, error)
}
