package utils

import "time"

// MonthWindow returns the inclusive bounds of a calendar month: midnight on
// the first day through 23:59:59.999 on the last.
func MonthWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// EndOfDay extends t to 23:59:59.999 so range filters include the whole
// final day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
