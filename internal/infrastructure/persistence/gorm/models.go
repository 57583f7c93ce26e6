// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FloatVector stores an embedding as a JSON array. A zero-length vector is
// persisted as NULL so "has an embedding" is a plain IS NOT NULL check.
type FloatVector []float64

// Scan implements sql.Scanner
func (v *FloatVector) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}

	var bytes []byte
	switch data := value.(type) {
	case []byte:
		bytes = data
	case string:
		bytes = []byte(data)
	default:
		return fmt.Errorf("cannot scan %T into FloatVector", value)
	}

	return json.Unmarshal(bytes, v)
}

// Value implements driver.Valuer
func (v FloatVector) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return json.Marshal(v)
}

// IngredientJSON is one structured ingredient inside a recipe row
type IngredientJSON struct {
	Name string `json:"name"`
}

// IngredientList stores a recipe's structured ingredients as JSON
type IngredientList []IngredientJSON

// Scan implements sql.Scanner
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch data := value.(type) {
	case []byte:
		bytes = data
	case string:
		bytes = []byte(data)
	default:
		return fmt.Errorf("cannot scan %T into IngredientList", value)
	}

	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// ShoppingListModel represents the GORM model for weekly shopping lists
type ShoppingListModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	WeekStart time.Time `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Items []ShoppingListItemModel `gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for ShoppingListModel
func (ShoppingListModel) TableName() string {
	return "shopping_lists"
}

// BeforeCreate hook for ShoppingListModel
func (m *ShoppingListModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ShoppingListItemModel represents the GORM model for list items
type ShoppingListItemModel struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey"`
	ShoppingListID uuid.UUID `gorm:"type:char(36);not null;index"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Checked        bool      `gorm:"default:false"`
	Source         string    `gorm:"type:varchar(20);not null;index"`
	Notes          string    `gorm:"type:text"`
	SortOrder      int       `gorm:"column:sort_order;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for ShoppingListItemModel
func (ShoppingListItemModel) TableName() string {
	return "shopping_list_items"
}

// BeforeCreate hook for ShoppingListItemModel
func (m *ShoppingListItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// InventoryItemModel represents the GORM model for the household master list
type InventoryItemModel struct {
	ID             uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Name           string      `gorm:"type:varchar(255);not null"`
	BaseIngredient string      `gorm:"type:varchar(255);index"`
	Embedding      FloatVector `gorm:"type:json"`
	Type           string      `gorm:"type:varchar(20);not null;index"`
	CategoryID     uuid.UUID   `gorm:"type:char(36);index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for InventoryItemModel
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// BeforeCreate hook for InventoryItemModel
func (m *InventoryItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// RecipeModel represents the GORM model for recipes referenced by the plan
type RecipeModel struct {
	ID          uuid.UUID      `gorm:"type:char(36);primaryKey"`
	Name        string         `gorm:"type:varchar(255);not null;index"`
	Ingredients IngredientList `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for RecipeModel
func (RecipeModel) TableName() string {
	return "recipes"
}

// BeforeCreate hook for RecipeModel
func (m *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MealDayModel represents the GORM model for one planned day with its
// four optional recipe slots
type MealDayModel struct {
	ID                uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Date              time.Time  `gorm:"uniqueIndex;not null"`
	LunchRecipeID     *uuid.UUID `gorm:"type:char(36)"`
	ProteinRecipeID   *uuid.UUID `gorm:"type:char(36)"`
	CarbRecipeID      *uuid.UUID `gorm:"type:char(36)"`
	VegetableRecipeID *uuid.UUID `gorm:"type:char(36)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Relationships
	Lunch     *RecipeModel `gorm:"foreignKey:LunchRecipeID"`
	Protein   *RecipeModel `gorm:"foreignKey:ProteinRecipeID"`
	Carb      *RecipeModel `gorm:"foreignKey:CarbRecipeID"`
	Vegetable *RecipeModel `gorm:"foreignKey:VegetableRecipeID"`
}

// TableName returns the table name for MealDayModel
func (MealDayModel) TableName() string {
	return "meal_days"
}

// BeforeCreate hook for MealDayModel
func (m *MealDayModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// AllModels returns every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&ShoppingListModel{},
		&ShoppingListItemModel{},
		&InventoryItemModel{},
		&RecipeModel{},
		&MealDayModel{},
	}
}
