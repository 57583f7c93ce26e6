// Package shoppinglist contains the per-week shopping list aggregate.
// A list is addressed by its normalized week-start date; its items are
// partitioned by source, and the meal partition is owned exclusively by
// the sync operation.
package shoppinglist

import (
	"strings"
	"time"

	"github.com/forkcast/v2/internal/domain/shared"
	"github.com/google/uuid"
)

// ShoppingList is the aggregate root for one week's groceries
type ShoppingList struct {
	shared.AggregateRoot
	id        uuid.UUID
	weekStart time.Time
	items     []Item
	createdAt time.Time
	updatedAt time.Time
}

// NewShoppingList creates an empty list for the week containing weekStart
func NewShoppingList(weekStart time.Time) *ShoppingList {
	now := time.Now()
	list := &ShoppingList{
		id:        uuid.New(),
		weekStart: NormalizeWeekStart(weekStart),
		createdAt: now,
		updatedAt: now,
	}

	list.AddEvent(ListCreatedEvent{
		BaseEvent: shared.NewBaseEvent(EventListCreated),
		ListID:    list.id,
		WeekStart: list.weekStart,
	})

	return list
}

// Reconstitute rebuilds a list from persisted state without raising events
func Reconstitute(id uuid.UUID, weekStart time.Time, items []Item, createdAt, updatedAt time.Time) *ShoppingList {
	return &ShoppingList{
		id:        id,
		weekStart: NormalizeWeekStart(weekStart),
		items:     items,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the list ID
func (l *ShoppingList) ID() uuid.UUID { return l.id }

// WeekStart returns the normalized week-start date
func (l *ShoppingList) WeekStart() time.Time { return l.weekStart }

// CreatedAt returns the creation timestamp
func (l *ShoppingList) CreatedAt() time.Time { return l.createdAt }

// UpdatedAt returns the last modification timestamp
func (l *ShoppingList) UpdatedAt() time.Time { return l.updatedAt }

// Items returns a copy of all items on the list
func (l *ShoppingList) Items() []Item {
	items := make([]Item, len(l.items))
	copy(items, l.items)
	return items
}

// ItemsBySource returns the items belonging to one source partition
func (l *ShoppingList) ItemsBySource(source Source) []Item {
	var items []Item
	for _, item := range l.items {
		if item.Source == source {
			items = append(items, item)
		}
	}
	return items
}

// MealItems returns the meal-derived partition
func (l *ShoppingList) MealItems() []Item {
	return l.ItemsBySource(SourceMeal)
}

// HasItem reports whether an item with the given name and source is on the
// list. Name comparison is case-insensitive.
func (l *ShoppingList) HasItem(name string, source Source) bool {
	for _, item := range l.items {
		if item.Source == source && strings.EqualFold(item.Name, name) {
			return true
		}
	}
	return false
}

// CanAddItem reports whether AddItem would accept the item, without
// modifying the list. Callers that persist items through the repository
// use this so the aggregate is only mutated once, by the reload.
func (l *ShoppingList) CanAddItem(item Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return ErrEmptyItemName
	}
	if !ValidSource(item.Source) {
		return ErrInvalidSource
	}
	if (item.Source == SourceStaple || item.Source == SourceRestock) && l.HasItem(item.Name, item.Source) {
		return ErrDuplicateItem
	}
	return nil
}

// AddItem appends an item to the list. For toggle-managed sources
// (staple, restock) the (name, source) pair must be unique.
func (l *ShoppingList) AddItem(item Item) error {
	if err := l.CanAddItem(item); err != nil {
		return err
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	l.items = append(l.items, item)
	l.updatedAt = time.Now()

	l.AddEvent(ItemAddedEvent{
		BaseEvent: shared.NewBaseEvent(EventItemAdded),
		ListID:    l.id,
		ItemID:    item.ID,
		Name:      item.Name,
		Source:    item.Source,
	})

	return nil
}

// RemoveItem deletes the item with the given name and source
func (l *ShoppingList) RemoveItem(name string, source Source) error {
	for i, item := range l.items {
		if item.Source == source && strings.EqualFold(item.Name, name) {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.updatedAt = time.Now()

			l.AddEvent(ItemRemovedEvent{
				BaseEvent: shared.NewBaseEvent(EventItemRemoved),
				ListID:    l.id,
				Name:      name,
				Source:    source,
			})
			return nil
		}
	}
	return ErrItemNotFound
}

// SetItemChecked flips the checked flag on one item
func (l *ShoppingList) SetItemChecked(itemID uuid.UUID, checked bool) error {
	for i := range l.items {
		if l.items[i].ID == itemID {
			l.items[i].Checked = checked
			l.updatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

// ReplaceMealItems drops the current meal partition and installs the given
// items in its place. Items of other sources are untouched.
func (l *ShoppingList) ReplaceMealItems(items []Item) {
	kept := make([]Item, 0, len(l.items)+len(items))
	for _, item := range l.items {
		if item.Source != SourceMeal {
			kept = append(kept, item)
		}
	}
	for _, item := range items {
		item.Source = SourceMeal
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		kept = append(kept, item)
	}
	l.items = kept
	l.updatedAt = time.Now()

	l.AddEvent(MealItemsReplacedEvent{
		BaseEvent: shared.NewBaseEvent(EventMealItemsReplaced),
		ListID:    l.id,
		WeekStart: l.weekStart,
		ItemCount: len(items),
	})
}
