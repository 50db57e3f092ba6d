package util

import (
	"fmt"
	"math"
)

// FormatHours renders hours with one decimal, the way every report prints them.
func FormatHours(hours float64) string {
	// Avoid printing "-0.0" for tiny negative corrections.
	if math.Abs(hours) < 0.05 {
		hours = 0
	}
	return fmt.Sprintf("%.1f", hours)
}
