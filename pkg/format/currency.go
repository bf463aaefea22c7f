// Package format renders amounts, rates and day counts the way the calculator
// displays them (Colombian pesos, no decimals, "." as thousands separator).
package format

import (
	"strconv"

	"github.com/Rhymond/go-money"
)

var pesoFormatter = money.NewFormatter(0, ",", ".", "$", "$1")

// Currency returns a peso string with a dollar sign and thousands separators
// (e.g., "$1.234.567", "-$1.234").
func Currency(amount int64) string {
	return pesoFormatter.Format(amount)
}

// Rate returns a percentage with the shortest decimal representation
// (e.g., "12%", "10.5%").
func Rate(percent float64) string {
	return RateValue(percent) + "%"
}

// RateValue returns the shortest decimal representation of a rate, which is
// also the value used to match a rate filter.
func RateValue(percent float64) string {
	return strconv.FormatFloat(percent, 'f', -1, 64)
}

// Days returns a day count label (e.g., "30 días").
func Days(n int) string {
	return strconv.Itoa(n) + " días"
}
