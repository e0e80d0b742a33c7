// utils/dates.go
package utils

import "time"

// ISODate formats t as the calendar-date key used by the rates table,
// always in UTC.
func ISODate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// YearScope returns the UTC calendar year partitioning invoice numbers.
func YearScope(t time.Time) int {
	return t.UTC().Year()
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
