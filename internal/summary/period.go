package summary

import "time"

// WeekBounds returns the Monday and Sunday of the ISO week containing d,
// truncated to dates.
func WeekBounds(d time.Time) (time.Time, time.Time) {
	day := truncateToDate(d)

	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	monday := day.AddDate(0, 0, -(weekday - 1))
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}

// MonthBounds returns the first and last day of d's calendar month.
func MonthBounds(d time.Time) (time.Time, time.Time) {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// DaysInclusive counts calendar days in [start, end], both ends included.
// Both ends are re-anchored to UTC midnight first, so a daylight saving
// shift inside the range never shortens the count.
func DaysInclusive(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
