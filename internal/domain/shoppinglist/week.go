package shoppinglist

import "time"

// NormalizeWeekStart truncates t to local midnight. Lists are keyed by this
// normalized date, so two timestamps on the same calendar day address the
// same list.
func NormalizeWeekStart(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// WeekWindow returns the half-open 7-day interval [start, start+7d) covered
// by the list for weekStart
func WeekWindow(weekStart time.Time) (time.Time, time.Time) {
	start := NormalizeWeekStart(weekStart)
	return start, start.AddDate(0, 0, 7)
}
