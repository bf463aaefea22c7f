package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/iwvelando/deposit-calculator/internal/input"
	"github.com/iwvelando/deposit-calculator/internal/views"
	"github.com/iwvelando/deposit-calculator/pkg/format"
)

type taxCmd struct {
	app    *App
	amount string
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "calculate and save the 4x1000 on an amount" }
func (*taxCmd) Usage() string {
	return `tax -amount <pesos>:
  Calculates the 4x1000 tax on a withdrawal and the amount to transfer so the
  tax is covered, and saves the calculation.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "amount in pesos, separators are ignored")
}

func (c *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	raw := c.amount
	if raw == "" && f.NArg() > 0 {
		raw = f.Arg(0)
	}
	amount, err := input.ParseTaxAmount(raw)
	if err != nil {
		return c.app.fail("cli.tax", err)
	}
	record, err := c.app.Store.AddTaxCalc(amount)
	if err != nil {
		return c.app.fail("cli.tax", err)
	}
	c.app.details(
		"ID", fmt.Sprint(record.ID),
		"Valor", format.Currency(record.Amount),
		"4x1000", format.Currency(record.Tax),
		"Valor total", format.Currency(record.NetAmount),
		"Valor a transferir", format.Currency(record.TransferAmount),
	)
	return subcommands.ExitSuccess
}

type taxesCmd struct {
	app    *App
	column int
	order  string
}

func (*taxesCmd) Name() string     { return "taxes" }
func (*taxesCmd) Synopsis() string { return "list saved 4x1000 calculations" }
func (*taxesCmd) Usage() string {
	return `taxes [-sort <column>] [-order asc|desc]:
  Lists saved 4x1000 calculations.
`
}

func (c *taxesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.column, "sort", -1, "zero-based column to sort by")
	f.StringVar(&c.order, "order", "asc", "sort order: asc, desc")
}

func (c *taxesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t := views.TaxCalcs(c.app.Store.TaxCalcs.List())
	return c.app.render("cli.taxes", "Cálculos 4x1000", t, c.column, c.order)
}
