package shoppinglist

import (
	"time"

	"github.com/forkcast/v2/internal/domain/shared"
	"github.com/google/uuid"
)

// Event names
const (
	EventListCreated       = "shoppinglist.created"
	EventMealItemsReplaced = "shoppinglist.meal_items_replaced"
	EventItemAdded         = "shoppinglist.item_added"
	EventItemRemoved       = "shoppinglist.item_removed"
)

// ListCreatedEvent is raised when a week's list is created
type ListCreatedEvent struct {
	shared.BaseEvent
	ListID    uuid.UUID
	WeekStart time.Time
}

// MealItemsReplacedEvent is raised when a sync regenerates the meal partition
type MealItemsReplacedEvent struct {
	shared.BaseEvent
	ListID    uuid.UUID
	WeekStart time.Time
	ItemCount int
}

// ItemAddedEvent is raised when an item joins the list
type ItemAddedEvent struct {
	shared.BaseEvent
	ListID uuid.UUID
	ItemID uuid.UUID
	Name   string
	Source Source
}

// ItemRemovedEvent is raised when an item leaves the list
type ItemRemovedEvent struct {
	shared.BaseEvent
	ListID uuid.UUID
	Name   string
	Source Source
}
