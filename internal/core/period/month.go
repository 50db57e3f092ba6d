package period

import "fmt"

var norwegianMonths = [12]string{
	"Januar",
	"Februar",
	"Mars",
	"April",
	"Mai",
	"Juni",
	"Juli",
	"August",
	"September",
	"Oktober",
	"November",
	"Desember",
}

// NorwegianMonth returns the Norwegian name of a one-based month.
// Callers must pass a validated month; anything outside 1-12 panics.
func NorwegianMonth(month int) string {
	if month < 1 || month > 12 {
		panic(fmt.Sprintf("norwegian month: %d is not in 1-12", month))
	}
	return norwegianMonths[month-1]
}
