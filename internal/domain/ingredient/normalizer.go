package ingredient

import (
	"regexp"
	"strings"
)

// numberToken matches an integer, decimal, ASCII fraction or a single
// Unicode vulgar fraction
const numberToken = `(?:\d+(?:[.,/]\d+)?|[½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅐⅑⅒⅛⅜⅝⅞])`

// quantityToken additionally allows ranges like "5-6" or "1 - 2"
const quantityToken = numberToken + `(?:\s*[-–/]\s*` + numberToken + `)?`

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)

	// A quantity optionally followed by one or more unit words: "2 lb",
	// "500g", "2 large cans", or just "2".
	leadingQuantityRe = regexp.MustCompile(`(?i)^` + quantityToken + `(?:\s*(?:` + unitAlternation() + `)\.?)*(?:\s+|$)`)

	// A bare unit word with no preceding quantity: "lb. ground beef".
	leadingUnitRe = regexp.MustCompile(`(?i)^(?:` + unitAlternation() + `)\.?(?:\s+|$)`)

	ofPrefixRe   = regexp.MustCompile(`(?i)^of\s+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	wordSplitRe  = regexp.MustCompile(`[^\p{L}\p{N}.]+`)
)

// StripUnits removes quantity and unit noise from a free-text ingredient
// name: parenthetical fragments that mention a unit, a leading
// number+unit run, a leading bare unit word, or a leading bare number.
// Casing of the remaining words is preserved. Stripping never erases an
// ingredient entirely; if nothing would remain the trimmed input is
// returned as-is.
func StripUnits(name string) string {
	original := strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))

	s := parentheticalRe.ReplaceAllStringFunc(original, func(fragment string) string {
		if fragmentMentionsUnit(fragment) {
			return ""
		}
		return fragment
	})
	s = strings.TrimSpace(s)

	if m := leadingQuantityRe.FindString(s); m != "" {
		s = s[len(m):]
	} else if m := leadingUnitRe.FindString(s); m != "" {
		s = s[len(m):]
	}

	s = ofPrefixRe.ReplaceAllString(strings.TrimSpace(s), "")
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))

	if s == "" {
		return original
	}
	return s
}

// GroupingKey returns the canonical lowercase key used to group
// ingredients that differ only in quantity, units or casing
func GroupingKey(name string) string {
	return strings.ToLower(StripUnits(name))
}

// fragmentMentionsUnit tokenizes a parenthetical fragment and checks each
// word against the unit vocabulary
func fragmentMentionsUnit(fragment string) bool {
	for _, token := range wordSplitRe.Split(fragment, -1) {
		if token == "" {
			continue
		}
		if IsUnit(token) {
			return true
		}
	}
	return false
}
