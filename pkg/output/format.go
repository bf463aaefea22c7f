// Package output provides utilities for formatting and displaying calculator
// tables.
package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/iwvelando/deposit-calculator/internal/tablesort"
	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// markdownWidth is wide enough for the ten-column investments table.
const markdownWidth = 160

// Write renders t in the given format (pretty, csv or markdown). style is the
// glamour style used by the markdown format.
func Write(w io.Writer, format, title string, t tablesort.Table, style string) error {
	switch format {
	case constants.OutputFormatCSV:
		return CsvFormat(w, t)
	case constants.OutputFormatMarkdown:
		return MarkdownFormat(w, title, t, style)
	case constants.OutputFormatPretty, "":
		return PrettyFormat(w, title, t)
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, title string, t tablesort.Table) error {
	widths := columnWidths(t)

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s ---\n", title)

	headers := make([]string, len(t.Columns))
	rules := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = pad(c.Header, widths[i])
		rules[i] = strings.Repeat("_", widths[i])
	}
	b.WriteString(strings.TrimRight(strings.Join(headers, " | "), " ") + "\n")
	b.WriteString(strings.Join(rules, " | ") + "\n")

	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i := range t.Columns {
			cells[i] = pad(cellText(row, i), widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, " | "), " ") + "\n")
	}

	p := message.NewPrinter(language.Spanish)
	b.WriteString(p.Sprintf("%d registros\n", t.SortableRows()))

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat outputs in comma-separated value format. The totals row is
// omitted.
func CsvFormat(w io.Writer, t tablesort.Table) error {
	var b strings.Builder
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = quote(c.Header)
	}
	b.WriteString(strings.Join(headers, ",") + "\n")

	for _, row := range t.Rows {
		if row.Totals {
			continue
		}
		cells := make([]string, len(t.Columns))
		for i := range t.Columns {
			cells[i] = quote(csvValue(row, i))
		}
		b.WriteString(strings.Join(cells, ",") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// MarkdownFormat renders the table as markdown through glamour.
func MarkdownFormat(w io.Writer, title string, t tablesort.Table, style string) error {
	if style == "" {
		style = constants.DefaultMarkdownStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(markdownWidth),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	rendered, err := r.Render(Markdown(title, t))
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, rendered)
	return err
}

// Markdown returns the markdown source of a table.
func Markdown(title string, t tablesort.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	if len(t.Rows) == 0 {
		b.WriteString("_Sin registros_\n")
		return b.String()
	}

	headers := make([]string, len(t.Columns))
	aligns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = escapeMarkdown(c.Header)
		aligns[i] = "---"
		if c.Type == tablesort.Number {
			aligns[i] = "--:"
		}
	}
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("| " + strings.Join(aligns, " | ") + " |\n")

	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i := range t.Columns {
			text := escapeMarkdown(cellText(row, i))
			if row.Totals {
				text = "**" + text + "**"
			}
			cells[i] = text
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

func columnWidths(t tablesort.Table) []int {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = utf8.RuneCountInString(c.Header)
		for _, row := range t.Rows {
			if n := utf8.RuneCountInString(cellText(row, i)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func cellText(row tablesort.Row, i int) string {
	if i >= len(row.Cells) {
		return ""
	}
	return row.Cells[i].Text
}

// csvValue prefers the canonical key so the file stays machine-readable.
func csvValue(row tablesort.Row, i int) string {
	if i >= len(row.Cells) {
		return ""
	}
	if row.Cells[i].Key != "" {
		return row.Cells[i].Key
	}
	return row.Cells[i].Text
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
