package ingredient

import (
	"sort"
	"strings"
)

// Raw is a single ingredient as it appears on a recipe, before any
// normalization. Produced per sync run and never persisted.
type Raw struct {
	Name       string
	RecipeName string
}

// Aggregated is a group of raw ingredients that normalize to the same
// grouping key. Name keeps the first-seen cleaned casing; Sources lists
// the attributing recipes in order of first appearance, deduplicated.
type Aggregated struct {
	Name    string
	Sources []string
}

// Aggregate groups raw ingredients by their normalized key, merges recipe
// attributions and returns the groups sorted case-insensitively by name.
// Pure function: empty input yields empty output.
func Aggregate(items []Raw) []Aggregated {
	groups := make(map[string]*Aggregated)
	keys := make([]string, 0, len(items))

	for _, item := range items {
		key := GroupingKey(item.Name)
		if key == "" {
			continue
		}

		group, ok := groups[key]
		if !ok {
			group = &Aggregated{Name: StripUnits(item.Name)}
			groups[key] = group
			keys = append(keys, key)
		}

		if item.RecipeName != "" && !containsString(group.Sources, item.RecipeName) {
			group.Sources = append(group.Sources, item.RecipeName)
		}
	}

	result := make([]Aggregated, 0, len(keys))
	for _, key := range keys {
		result = append(result, *groups[key])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})

	return result
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
