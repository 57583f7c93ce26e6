package gorm

import (
	"github.com/forkcast/v2/internal/domain/inventory"
	"github.com/forkcast/v2/internal/domain/mealplan"
	"github.com/forkcast/v2/internal/domain/shoppinglist"
)

// ListToModel converts a domain shopping list to a GORM model
func ListToModel(list *shoppinglist.ShoppingList) *ShoppingListModel {
	items := list.Items()
	models := make([]ShoppingListItemModel, len(items))
	for i, item := range items {
		models[i] = *ItemToModel(list, item)
	}

	return &ShoppingListModel{
		ID:        list.ID(),
		WeekStart: list.WeekStart(),
		Items:     models,
		CreatedAt: list.CreatedAt(),
		UpdatedAt: list.UpdatedAt(),
	}
}

// ModelToList converts a GORM model to a domain shopping list
func ModelToList(model *ShoppingListModel) *shoppinglist.ShoppingList {
	items := make([]shoppinglist.Item, len(model.Items))
	for i, m := range model.Items {
		items[i] = ModelToItem(&m)
	}

	return shoppinglist.Reconstitute(model.ID, model.WeekStart, items, model.CreatedAt, model.UpdatedAt)
}

// ItemToModel converts a domain item to a GORM model
func ItemToModel(list *shoppinglist.ShoppingList, item shoppinglist.Item) *ShoppingListItemModel {
	return &ShoppingListItemModel{
		ID:             item.ID,
		ShoppingListID: list.ID(),
		Name:           item.Name,
		Checked:        item.Checked,
		Source:         string(item.Source),
		Notes:          item.Notes,
		SortOrder:      item.SortOrder,
	}
}

// ModelToItem converts a GORM model to a domain item
func ModelToItem(model *ShoppingListItemModel) shoppinglist.Item {
	return shoppinglist.Item{
		ID:        model.ID,
		Name:      model.Name,
		Checked:   model.Checked,
		Source:    shoppinglist.Source(model.Source),
		Notes:     model.Notes,
		SortOrder: model.SortOrder,
	}
}

// InventoryToModel converts a domain inventory item to a GORM model
func InventoryToModel(item *inventory.Item) *InventoryItemModel {
	return &InventoryItemModel{
		ID:             item.ID,
		Name:           item.Name,
		BaseIngredient: item.BaseIngredient,
		Embedding:      FloatVector(item.Embedding),
		Type:           string(item.Type),
		CategoryID:     item.CategoryID,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// ModelToInventory converts a GORM model to a domain inventory item
func ModelToInventory(model *InventoryItemModel) *inventory.Item {
	return &inventory.Item{
		ID:             model.ID,
		Name:           model.Name,
		BaseIngredient: model.BaseIngredient,
		Embedding:      []float64(model.Embedding),
		Type:           inventory.Type(model.Type),
		CategoryID:     model.CategoryID,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// ModelToMealDay converts a GORM model to a domain plan day
func ModelToMealDay(model *MealDayModel) *mealplan.Day {
	return &mealplan.Day{
		ID:        model.ID,
		Date:      model.Date,
		Lunch:     modelToRecipeRef(model.Lunch),
		Protein:   modelToRecipeRef(model.Protein),
		Carb:      modelToRecipeRef(model.Carb),
		Vegetable: modelToRecipeRef(model.Vegetable),
	}
}

func modelToRecipeRef(model *RecipeModel) *mealplan.RecipeRef {
	if model == nil {
		return nil
	}

	ingredients := make([]mealplan.Ingredient, len(model.Ingredients))
	for i, ing := range model.Ingredients {
		ingredients[i] = mealplan.Ingredient{Name: ing.Name}
	}

	return &mealplan.RecipeRef{
		ID:          model.ID,
		Name:        model.Name,
		Ingredients: ingredients,
	}
}
