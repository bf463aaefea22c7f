package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/iwvelando/deposit-calculator/internal/calc"
	"github.com/iwvelando/deposit-calculator/internal/input"
	"github.com/iwvelando/deposit-calculator/internal/views"
	"github.com/iwvelando/deposit-calculator/pkg/format"
)

type dateCmd struct {
	app  *App
	form input.DateForm
}

func (*dateCmd) Name() string     { return "date" }
func (*dateCmd) Synopsis() string { return "add calendar days to a date and save the result" }
func (*dateCmd) Usage() string {
	return `date -base <yyyy-mm-dd|dd/mm/yyyy> -days <n>:
  Adds n calendar days to the base date and saves the calculation.
`
}

func (c *dateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.form.BaseDate, "base", "", "base date (yyyy-mm-dd or dd/mm/yyyy)")
	f.StringVar(&c.form.Days, "days", "", "calendar days to add")
}

func (c *dateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	base, days, err := c.form.Parse()
	if err != nil {
		return c.app.fail("cli.date", err)
	}
	record, err := c.app.Store.AddDateCalc(base, days)
	if err != nil {
		return c.app.fail("cli.date", err)
	}
	c.app.details(
		"ID", fmt.Sprint(record.ID),
		"Fecha base", record.BaseDate.Display(),
		"Días sumados", format.Days(record.DaysAdded),
		"Fecha resultado", record.ResultDate.Long(),
	)
	return subcommands.ExitSuccess
}

type datesCmd struct {
	app    *App
	column int
	order  string
}

func (*datesCmd) Name() string     { return "dates" }
func (*datesCmd) Synopsis() string { return "list saved date calculations" }
func (*datesCmd) Usage() string {
	return `dates [-sort <column>] [-order asc|desc]:
  Lists saved date calculations.
`
}

func (c *datesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.column, "sort", -1, "zero-based column to sort by")
	f.StringVar(&c.order, "order", "asc", "sort order: asc, desc")
}

func (c *datesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t := views.DateCalcs(c.app.Store.DateCalcs.List())
	return c.app.render("cli.dates", "Cálculos de fechas", t, c.column, c.order)
}

type previewCmd struct {
	app  *App
	form input.DateForm
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "show a date offset without saving it" }
func (*previewCmd) Usage() string {
	return `preview [-base <date>] [-days <n>]:
  Prints the resulting date in long form. Negative days move backwards.
`
}

func (c *previewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.form.BaseDate, "base", "", "base date (yyyy-mm-dd or dd/mm/yyyy)")
	f.StringVar(&c.form.Days, "days", "", "calendar days to add")
}

func (c *previewCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	base, days := c.form.Preview()
	fmt.Fprintln(c.app.Out, calc.PreviewOffset(base, days))
	return subcommands.ExitSuccess
}
