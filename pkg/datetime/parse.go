package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// readLayout is permissive and accepts single-digit months and days.
const readLayout = "2006-1-2"

// Parse parses an ISO date such as "2026-01-05" (or "2026-1-5").
func Parse(s string) (Date, error) {
	t, err := time.Parse(readLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format YYYY-MM-DD: %w", s, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDisplay parses a DD/MM/YYYY date. Out-of-range days and months roll
// over the way calendar arithmetic does, so "31/02/2026" is 2026-03-03.
func ParseDisplay(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q, want format DD/MM/YYYY", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q, want format DD/MM/YYYY: %w", s, err)
		}
		nums[i] = n
	}
	return New(nums[2], time.Month(nums[1]), nums[0]), nil
}

var englishLongLayouts = []string{
	"Monday, January 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// ParseLong parses a long-form date, either Spanish ("lunes, 5 de enero de
// 2026", weekday optional) or English ("Monday, January 5, 2026").
func ParseLong(s string) (Date, error) {
	trimmed := strings.TrimSpace(s)
	if d, ok := parseSpanishLong(trimmed); ok {
		return d, nil
	}
	for _, layout := range englishLongLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return New(t.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid long-form date %q", s)
}

func parseSpanishLong(s string) (Date, bool) {
	lower := strings.ToLower(s)
	if i := strings.Index(lower, ","); i >= 0 {
		lower = lower[i+1:]
	}
	fields := strings.Fields(lower)
	if len(fields) != 5 || fields[1] != "de" || fields[3] != "de" {
		return Date{}, false
	}
	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return Date{}, false
	}
	year, err := strconv.Atoi(fields[4])
	if err != nil {
		return Date{}, false
	}
	for i, name := range monthNames {
		if fields[2] == name || (name == "septiembre" && fields[2] == "setiembre") {
			return New(year, time.Month(i+1), day), true
		}
	}
	return Date{}, false
}

// ParseAny tries, in order, DD/MM/YYYY, ISO YYYY-MM-DD and long form.
func ParseAny(s string) (Date, error) {
	trimmed := strings.TrimSpace(s)
	switch {
	case strings.Contains(trimmed, "/"):
		return ParseDisplay(trimmed)
	case strings.Contains(trimmed, "-"):
		return Parse(trimmed)
	default:
		return ParseLong(trimmed)
	}
}
