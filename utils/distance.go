package utils

import (
	"fmt"
	"math"
)

// MetersPerKilometer is the switch-over point for kilometer display.
const MetersPerKilometer = 1000.0

// PresentableDistance formats a distance for display: "1.2 km" from one
// kilometer up, whole meters below. Negative and NaN inputs read as 0 m.
func PresentableDistance(meters float64) string {
	if math.IsNaN(meters) || meters < 0 {
		meters = 0
	}
	if meters >= MetersPerKilometer {
		return fmt.Sprintf("%.1f km", meters/MetersPerKilometer)
	}
	return fmt.Sprintf("%d m", RoundMeters(meters))
}

// RoundMeters rounds a distance to whole meters.
func RoundMeters(meters float64) int {
	if math.IsNaN(meters) || math.IsInf(meters, 0) {
		return 0
	}
	return int(math.Round(meters))
}

// Ternary returns a when cond holds, else b.
func Ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
