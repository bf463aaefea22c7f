// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/deposit-calculator/pkg/constants"
)

// RoundUnit rounds a value to the nearest whole currency unit. Halves round
// toward positive infinity, so 2.5 becomes 3 and -2.5 becomes -2. Values that
// are not finite round to 0.
func RoundUnit(val float64) int64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return int64(math.Floor(val + 0.5))
}

// WithinTolerance reports whether val1 and val2 differ by at most tolerance.
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// ApplyPercentage returns percentage percent of value.
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// CompoundGrowth returns the growth factor minus one of a periodic rate
// compounded over n periods, i.e. (1+rate)^n - 1.
func CompoundGrowth(rate float64, periods int) float64 {
	return math.Pow(1+rate, float64(periods)) - 1
}

// PeriodicRate converts an effective rate (in percent) spanning periodsPerYear
// periods into the equivalent per-period rate.
func PeriodicRate(annualPercent float64, periodsPerYear int) float64 {
	return math.Pow(1+annualPercent/constants.PercentageMultiplier, 1/float64(periodsPerYear)) - 1
}
