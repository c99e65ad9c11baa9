// Package month implements the YYYY-MM month key used to index
// transactions, additional income, and snapshots. The format is
// load-bearing: lexicographic order equals chronological order, and the
// key doubles as a display-parsing key, so zero-padding is mandatory.
package month

import (
	"regexp"
	"time"
)

const layout = "2006-01"

var keyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Key returns the month key for t in the local calendar.
func Key(t time.Time) string {
	return t.Format(layout)
}

// Current returns the month key for the current wall-clock time.
func Current() string {
	return Key(time.Now())
}

// Valid reports whether s is a well-formed, zero-padded month key.
func Valid(s string) bool {
	return keyPattern.MatchString(s)
}

// Parse returns the first instant of the keyed month in local time.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(layout, s, time.Local)
}

// Back returns the month key n calendar months before t. n may be zero
// or negative; time.Date normalizes month arithmetic, so year boundaries
// roll over correctly.
func Back(t time.Time, n int) string {
	d := time.Date(t.Year(), t.Month()-time.Month(n), 1, 0, 0, 0, 0, t.Location())
	return Key(d)
}

// DaysLeftIn returns the number of days remaining in t's month, not
// counting t's own day. Day 0 of the next month is the last day of this
// one, so month lengths and leap years come from the calendar itself.
func DaysLeftIn(t time.Time) int {
	lastDay := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
	return lastDay.Day() - t.Day()
}

// DaysLeft returns the days remaining in the current month.
func DaysLeft() int {
	return DaysLeftIn(time.Now())
}
