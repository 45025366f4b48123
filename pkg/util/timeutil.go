package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// SecondsPerDay is the length of a clock day used for wrap-around arithmetic.
const SecondsPerDay = 24 * 60 * 60
