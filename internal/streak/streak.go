package streak

import "time"

// Next returns the consecutive-day count after practicing on today.
// lastPractice must be the date recorded before this practice is saved.
func Next(lastPractice *time.Time, today time.Time, current int) int {
	if lastPractice == nil {
		return 1
	}

	switch DaysBetween(*lastPractice, today) {
	case 0:
		return current
	case 1:
		return current + 1
	default:
		return 1
	}
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from a to b in UTC.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// PracticedOn reports whether lastPractice falls on the same UTC day as t.
func PracticedOn(lastPractice *time.Time, t time.Time) bool {
	return lastPractice != nil && DaysBetween(*lastPractice, t) == 0
}
