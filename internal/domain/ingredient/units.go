// Package ingredient contains the ingredient normalization and aggregation
// logic used to turn free-text recipe ingredients into groupable entries
package ingredient

import (
	"regexp"
	"sort"
	"strings"
)

// UnitCategory classifies a unit token in the vocabulary
type UnitCategory string

const (
	UnitWeight    UnitCategory = "weight"
	UnitVolume    UnitCategory = "volume"
	UnitSpoon     UnitCategory = "spoon"
	UnitContainer UnitCategory = "container"
	UnitSize      UnitCategory = "size"
)

// unitVocabulary is the closed set of unit tokens the normalizer recognizes,
// grouped by category. Matching is case-insensitive and tolerates an optional
// trailing period on any token.
var unitVocabulary = map[UnitCategory][]string{
	UnitWeight: {
		"g", "kg", "oz", "lb", "lbs", "pound", "pounds",
	},
	UnitVolume: {
		"ml", "l", "liter", "liters", "litre", "litres", "cup", "cups",
	},
	UnitSpoon: {
		"tbsp", "tbs", "tsp", "tablespoon", "tablespoons", "teaspoon", "teaspoons",
	},
	UnitContainer: {
		"clove", "cloves", "can", "cans", "bunch", "bunches",
		"piece", "pieces", "slice", "slices", "head", "heads",
		"stalk", "stalks", "sprig", "sprigs", "pinch", "pinches",
		"handful", "handfuls", "dash", "dashes",
	},
	UnitSize: {
		"large", "medium", "small",
	},
}

var unitSet = buildUnitSet()

func buildUnitSet() map[string]UnitCategory {
	set := make(map[string]UnitCategory)
	for category, tokens := range unitVocabulary {
		for _, token := range tokens {
			set[token] = category
		}
	}
	return set
}

// IsUnit reports whether token is a recognized unit word. The check is
// case-insensitive and ignores a single trailing period.
func IsUnit(token string) bool {
	_, ok := CategoryOf(token)
	return ok
}

// CategoryOf returns the vocabulary category for a unit token
func CategoryOf(token string) (UnitCategory, bool) {
	normalized := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(token), "."))
	category, ok := unitSet[normalized]
	return category, ok
}

// unitAlternation builds a regex alternation over the whole vocabulary,
// longest tokens first so "tablespoons" wins over "tbs".
func unitAlternation() string {
	tokens := make([]string, 0, len(unitSet))
	for token := range unitSet {
		tokens = append(tokens, regexp.QuoteMeta(token))
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	return strings.Join(tokens, "|")
}
