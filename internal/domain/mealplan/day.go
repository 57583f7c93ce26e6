// Package mealplan is the read model for the weekly meal plan as seen by
// the shopping list engine: one record per day with four optional recipe
// slots
package mealplan

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a structured ingredient attached to a planned recipe
type Ingredient struct {
	Name string
}

// RecipeRef is a recipe occupying a meal slot. Ingredients may be empty
// when the recipe has no structured ingredient list.
type RecipeRef struct {
	ID          uuid.UUID
	Name        string
	Ingredients []Ingredient
}

// Day is one day of the plan. Any slot may be nil; that is a normal
// state, not an error.
type Day struct {
	ID        uuid.UUID
	Date      time.Time
	Lunch     *RecipeRef
	Protein   *RecipeRef
	Carb      *RecipeRef
	Vegetable *RecipeRef
}

// Slots returns the day's four meal slots in a fixed order, including
// nil entries
func (d *Day) Slots() []*RecipeRef {
	return []*RecipeRef{d.Lunch, d.Protein, d.Carb, d.Vegetable}
}
