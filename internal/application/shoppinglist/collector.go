package shoppinglist

import (
	"strings"

	"github.com/forkcast/v2/internal/domain/ingredient"
	"github.com/forkcast/v2/internal/domain/mealplan"
)

// collectIngredients walks every meal slot of every planned day and
// flattens the structured ingredients into raw entries. Empty slots and
// recipes without structured ingredients are skipped silently.
func collectIngredients(days []*mealplan.Day) []ingredient.Raw {
	var raw []ingredient.Raw
	for _, day := range days {
		if day == nil {
			continue
		}
		for _, recipe := range day.Slots() {
			if recipe == nil || len(recipe.Ingredients) == 0 {
				continue
			}
			for _, ing := range recipe.Ingredients {
				if strings.TrimSpace(ing.Name) == "" {
					continue
				}
				raw = append(raw, ingredient.Raw{
					Name:       ing.Name,
					RecipeName: recipe.Name,
				})
			}
		}
	}
	return raw
}
