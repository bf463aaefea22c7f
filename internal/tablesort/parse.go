package tablesort

import (
	"regexp"
	"strings"

	"github.com/iwvelando/deposit-calculator/pkg/datetime"
	"github.com/shopspring/decimal"
)

var numericPrefix = regexp.MustCompile(`^[-+]?(\d+(\.\d+)?|\.\d+)`)

// ParseNumber reads a displayed amount such as "$1.234.567" or "4,5": the
// currency symbol and thousands separators are dropped, a decimal comma
// becomes a point and the leading number is parsed. Anything else is zero.
func ParseNumber(text string) decimal.Decimal {
	s := strings.NewReplacer("$", "", ".", "").Replace(strings.TrimSpace(text))
	s = strings.Replace(s, ",", ".", 1)
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DateValue returns the cell date as milliseconds since the epoch, or zero
// when it cannot be read.
func DateValue(c Cell) int64 {
	if c.Key != "" {
		if d, err := datetime.Parse(c.Key); err == nil {
			return d.UnixMilli()
		}
	}
	return ParseDate(c.Text)
}

// ParseDate reads dd/mm/yyyy, yyyy-mm-dd or a long-form date in Spanish or
// English. Anything else is zero.
func ParseDate(text string) int64 {
	d, err := datetime.ParseAny(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return d.UnixMilli()
}
