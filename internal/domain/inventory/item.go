// Package inventory models the household master list: the staple and
// restock products a home keeps on hand
package inventory

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type distinguishes the two inventory categories
type Type string

const (
	// TypeStaple items are expected every week and pre-seed new lists
	TypeStaple Type = "staple"
	// TypeRestock items are replenished on demand
	TypeRestock Type = "restock"
)

var (
	// ErrEmptyName indicates an inventory item without a display name
	ErrEmptyName = errors.New("inventory item name cannot be empty")

	// ErrInvalidType indicates an unknown inventory type
	ErrInvalidType = errors.New("inventory type must be staple or restock")

	// ErrNotFound indicates the referenced inventory item does not exist
	ErrNotFound = errors.New("inventory item not found")
)

// Item is one entry on the household master list. BaseIngredient and
// Embedding are populated asynchronously by the backfill job; until both
// are present the item sits out of similarity matching.
type Item struct {
	ID             uuid.UUID
	Name           string
	BaseIngredient string
	Embedding      []float64
	Type           Type
	CategoryID     uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewItem creates an inventory item with a fresh ID. The base ingredient
// and embedding start empty and are filled in by the backfill.
func NewItem(name string, itemType Type, categoryID uuid.UUID) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if itemType != TypeStaple && itemType != TypeRestock {
		return nil, ErrInvalidType
	}

	now := time.Now()
	return &Item{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(name),
		Type:       itemType,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Matchable reports whether the item can participate in similarity
// matching: it needs both a base ingredient and a computed embedding
func (i *Item) Matchable() bool {
	return i.BaseIngredient != "" && len(i.Embedding) > 0
}

// IsStaple reports whether the item pre-seeds new weekly lists
func (i *Item) IsStaple() bool {
	return i.Type == TypeStaple
}
