// Package input turns raw form values into validated calculator inputs.
// Parsing is lenient the way the calculator forms always were: stray
// characters are dropped and unreadable numbers become zero. Validation then
// rejects what cannot be saved.
package input

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nonDigits      = regexp.MustCompile(`\D`)
	leadingInteger = regexp.MustCompile(`^[-+]?\d+`)
	leadingDecimal = regexp.MustCompile(`^[-+]?(\d+(\.\d+)?|\.\d+)`)
)

// Amount keeps only the digits of s, so "$10.000.000" is 10000000. A value
// without digits is zero.
func Amount(s string) float64 {
	digits := nonDigits.ReplaceAllString(s, "")
	if digits == "" {
		return 0
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// Rate reads the leading decimal of s, accepting a decimal comma ("10,5").
// An unreadable rate is zero.
func Rate(s string) float64 {
	v, ok := leadingFloat(s)
	if !ok {
		return 0
	}
	return v
}

// Days reads the leading integer of s, so "30.7" is 30. An unreadable value is
// zero.
func Days(s string) int {
	m := leadingInteger.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// Withholding reads a withholding percentage, returning def when s is blank.
// An unreadable value is zero.
func Withholding(s string, def float64) float64 {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return Rate(s)
}

// Flag reports whether s is an affirmative answer: si, sí, yes, true or 1.
func Flag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "si", "sí", "s", "yes", "y", "true", "1":
		return true
	}
	return false
}

// MaxBound reads an upper filter bound. Blank, zero and unreadable values mean
// no bound.
func MaxBound(s string, parse func(string) float64) float64 {
	if v := parse(s); v != 0 {
		return v
	}
	return math.Inf(1)
}

// MinBound reads a lower filter bound. Blank and unreadable values are zero.
func MinBound(s string, parse func(string) float64) float64 {
	return parse(s)
}

// DaysValue is Days as a float64, for filter bounds.
func DaysValue(s string) float64 { return float64(Days(s)) }

func leadingFloat(s string) (float64, bool) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	m := leadingDecimal.FindString(s)
	if m == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}
