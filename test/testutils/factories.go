package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/forkcast/v2/internal/domain/inventory"
	"github.com/forkcast/v2/internal/domain/mealplan"
	"github.com/forkcast/v2/internal/domain/shoppinglist"
	"github.com/google/uuid"
)

// InventoryFactory builds inventory items for tests
type InventoryFactory struct {
	faker *gofakeit.Faker
}

// NewInventoryFactory creates a factory with a seeded faker so test data
// is reproducible
func NewInventoryFactory(seed int64) *InventoryFactory {
	return &InventoryFactory{faker: gofakeit.New(seed)}
}

// Staple builds a staple item without base ingredient or embedding
func (f *InventoryFactory) Staple(name string) *inventory.Item {
	if name == "" {
		name = f.faker.Fruit()
	}
	item, _ := inventory.NewItem(name, inventory.TypeStaple, uuid.New())
	return item
}

// Restock builds a restock item without base ingredient or embedding
func (f *InventoryFactory) Restock(name string) *inventory.Item {
	if name == "" {
		name = f.faker.Vegetable()
	}
	item, _ := inventory.NewItem(name, inventory.TypeRestock, uuid.New())
	return item
}

// Matchable builds an item ready for similarity matching
func (f *InventoryFactory) Matchable(name, baseIngredient string, embedding []float64) *inventory.Item {
	item := f.Staple(name)
	item.BaseIngredient = baseIngredient
	item.Embedding = embedding
	return item
}

// MealPlanFactory builds planned days for tests
type MealPlanFactory struct {
	faker *gofakeit.Faker
}

// NewMealPlanFactory creates a factory with a seeded faker
func NewMealPlanFactory(seed int64) *MealPlanFactory {
	return &MealPlanFactory{faker: gofakeit.New(seed)}
}

// Recipe builds a recipe reference with the given ingredient names
func (f *MealPlanFactory) Recipe(name string, ingredientNames ...string) *mealplan.RecipeRef {
	if name == "" {
		name = f.faker.Dinner()
	}
	ingredients := make([]mealplan.Ingredient, len(ingredientNames))
	for i, n := range ingredientNames {
		ingredients[i] = mealplan.Ingredient{Name: n}
	}
	return &mealplan.RecipeRef{
		ID:          uuid.New(),
		Name:        name,
		Ingredients: ingredients,
	}
}

// Day builds a plan day; any slot may be nil
func (f *MealPlanFactory) Day(date time.Time, lunch, protein, carb, vegetable *mealplan.RecipeRef) *mealplan.Day {
	return &mealplan.Day{
		ID:        uuid.New(),
		Date:      shoppinglist.NormalizeWeekStart(date),
		Lunch:     lunch,
		Protein:   protein,
		Carb:      carb,
		Vegetable: vegetable,
	}
}
