// Package tablesort orders projected tables by one typed column. A totals row
// always stays last.
package tablesort

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// ColumnType selects the comparator used for a column.
type ColumnType int

const (
	Text ColumnType = iota
	Number
	Date
)

// String implements fmt.Stringer.
func (t ColumnType) String() string {
	switch t {
	case Number:
		return "number"
	case Date:
		return "date"
	default:
		return "text"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ColumnType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ColumnType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "number":
		*t = Number
	case "date":
		*t = Date
	case "text", "":
		*t = Text
	default:
		return fmt.Errorf("unknown column type %q", b)
	}
	return nil
}

// Direction is the sort direction of a column.
type Direction int

const (
	None Direction = iota
	Ascending
	Descending
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "asc":
		*d = Ascending
	case "desc":
		*d = Descending
	case "":
		*d = None
	default:
		return fmt.Errorf("unknown sort direction %q", b)
	}
	return nil
}

// Column describes one table column.
type Column struct {
	Header string     `json:"header"`
	Type   ColumnType `json:"type"`
}

// Cell is a displayed value. Key, when set, is the canonical value used for
// sorting: a decimal number or an ISO date.
type Cell struct {
	Text string `json:"text"`
	Key  string `json:"key,omitempty"`
}

// Row is one table row. ID is the record identifier, zero for the totals row.
type Row struct {
	ID     int64  `json:"id,omitempty"`
	Cells  []Cell `json:"cells"`
	Totals bool   `json:"totals,omitempty"`
}

// Table is a projected record collection.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// SortableRows counts the rows that take part in sorting.
func (t Table) SortableRows() int {
	n := 0
	for _, r := range t.Rows {
		if !r.Totals {
			n++
		}
	}
	return n
}

// Sorted returns a copy of t with its rows ordered by column.
func (t Table) Sorted(column int, dir Direction) (Table, error) {
	if column < 0 || column >= len(t.Columns) {
		return Table{}, fmt.Errorf("column %d out of range [0,%d)", column, len(t.Columns))
	}
	return Table{
		Columns: t.Columns,
		Rows:    Sort(t.Rows, column, t.Columns[column].Type, dir),
	}, nil
}

// Sort returns a new slice with rows stably ordered by the given column. Rows
// flagged as totals are moved to the end in their original order. Direction
// None keeps the original order.
func Sort(rows []Row, column int, typ ColumnType, dir Direction) []Row {
	body := make([]Row, 0, len(rows))
	var totals []Row
	for _, r := range rows {
		if r.Totals {
			totals = append(totals, r)
			continue
		}
		body = append(body, r)
	}

	if dir != None {
		cmp := comparator(typ)
		slices.SortStableFunc(body, func(a, b Row) int {
			c := cmp(cellAt(a, column), cellAt(b, column))
			if dir == Descending {
				return -c
			}
			return c
		})
	}
	return append(body, totals...)
}

func cellAt(r Row, column int) Cell {
	if column < 0 || column >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[column]
}

func comparator(typ ColumnType) func(a, b Cell) int {
	switch typ {
	case Number:
		return func(a, b Cell) int { return NumberValue(a).Cmp(NumberValue(b)) }
	case Date:
		return func(a, b Cell) int {
			x, y := DateValue(a), DateValue(b)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	default:
		fold := cases.Fold()
		return func(a, b Cell) int {
			return strings.Compare(fold.String(a.Text), fold.String(b.Text))
		}
	}
}

// NumberValue returns the numeric value of a cell, or zero.
func NumberValue(c Cell) decimal.Decimal {
	if c.Key != "" {
		if d, err := decimal.NewFromString(c.Key); err == nil {
			return d
		}
	}
	return ParseNumber(c.Text)
}
