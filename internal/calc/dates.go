package calc

import (
	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"github.com/iwvelando/deposit-calculator/pkg/datetime"
)

// AddCalendarDays returns base moved by days calendar days. Negative values
// move backwards.
func AddCalendarDays(base datetime.Date, days int) datetime.Date {
	return base.AddDays(days)
}

// PreviewOffset renders the live result of a date offset in long Spanish form,
// or "--" when no base date has been chosen yet.
func PreviewOffset(base *datetime.Date, days int) string {
	if base == nil || base.IsZero() {
		return constants.EmptyCell
	}
	return AddCalendarDays(*base, days).Long()
}
