// Package biztime centralises wall-clock access. All storage and transport use UTC.
package biztime

import "time"

// nowFunc is swapped by tests that need a fixed clock.
var nowFunc = time.Now

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return nowFunc().UTC()
}

// SetNowFunc replaces the clock and returns a function restoring the previous one.
func SetNowFunc(fn func() time.Time) (restore func()) {
	prev := nowFunc
	nowFunc = fn
	return func() { nowFunc = prev }
}
