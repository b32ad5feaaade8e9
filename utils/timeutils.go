package utils

import (
	"math"
	"time"
)

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Iso8601FromFixSeconds converts a fractional fix timestamp to ISO8601 with
// millisecond precision.
func Iso8601FromFixSeconds(sec float64) string {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// SecondsFromDuration converts a duration to fractional seconds, as used by
// per-frame dt values.
func SecondsFromDuration(d time.Duration) float64 {
	return d.Seconds()
}
