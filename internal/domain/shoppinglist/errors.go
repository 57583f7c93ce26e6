package shoppinglist

import "errors"

var (
	// ErrNotFound indicates no list exists for the requested week
	ErrNotFound = errors.New("shopping list not found")

	// ErrItemNotFound indicates the referenced item is not on the list
	ErrItemNotFound = errors.New("shopping list item not found")

	// ErrDuplicateItem indicates a (name, source) pair already present for
	// a toggle-managed source
	ErrDuplicateItem = errors.New("item with this name and source already on list")

	// ErrEmptyItemName indicates an item without a usable name
	ErrEmptyItemName = errors.New("item name cannot be empty")

	// ErrInvalidSource indicates an unknown item source
	ErrInvalidSource = errors.New("invalid item source")
)
