// Package datetime provides a civil calendar date type and the date formats
// used by the calculator.
package datetime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iwvelando/deposit-calculator/pkg/constants"
)

// Date is a civil calendar date with day granularity. It carries no time zone;
// arithmetic follows the proleptic Gregorian calendar.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date, so New(2026, time.February, 30) is 2026-03-02.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// AddDays returns the date n calendar days after d. Negative n moves backwards.
func (d Date) AddDays(n int) Date { return New(d.y, d.m, d.d+n) }

// UnixMilli returns the milliseconds since the Unix epoch of midnight UTC.
func (d Date) UnixMilli() int64 { return d.Time().UnixMilli() }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.Time().Format(constants.DateLayout) }

// Display formats the date as DD/MM/YYYY.
func (d Date) Display() string { return d.Time().Format(constants.DisplayDateLayout) }

// Long formats the date in long Spanish form, e.g. "lunes, 5 de enero de 2026".
func (d Date) Long() string {
	return fmt.Sprintf("%s, %d de %s de %d", weekdayNames[d.Weekday()], d.d, monthNames[d.m-1], d.y)
}

// MarshalJSON encodes the date as an ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes an ISO date string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)

var weekdayNames = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}
