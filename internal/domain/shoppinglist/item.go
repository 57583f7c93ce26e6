package shoppinglist

import "github.com/google/uuid"

// Source identifies which collaborator owns a shopping list item
type Source string

const (
	// SourceMeal items are derived from the week's meal plan. The sync
	// operation owns this partition exclusively and regenerates it wholesale.
	SourceMeal Source = "meal"
	// SourceStaple items are seeded from staple inventory
	SourceStaple Source = "staple"
	// SourceRestock items come from the restock include/exclude toggle
	SourceRestock Source = "restock"
	// SourceManual items are added by hand
	SourceManual Source = "manual"
)

// ValidSource reports whether s is one of the known item sources
func ValidSource(s Source) bool {
	switch s {
	case SourceMeal, SourceStaple, SourceRestock, SourceManual:
		return true
	}
	return false
}

// Item is a single entry on a weekly shopping list
type Item struct {
	ID        uuid.UUID
	Name      string
	Checked   bool
	Source    Source
	Notes     string
	SortOrder int
}

// NewItem creates an unchecked item with a fresh ID
func NewItem(name string, source Source, notes string, sortOrder int) Item {
	return Item{
		ID:        uuid.New(),
		Name:      name,
		Source:    source,
		Notes:     notes,
		SortOrder: sortOrder,
	}
}
