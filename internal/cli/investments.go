package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/iwvelando/deposit-calculator/internal/filter"
	"github.com/iwvelando/deposit-calculator/internal/input"
	"github.com/iwvelando/deposit-calculator/internal/views"
	"github.com/iwvelando/deposit-calculator/pkg/format"
)

type investCmd struct {
	app  *App
	form input.InvestmentForm
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "calculate and save a fixed-term deposit" }
func (*investCmd) Usage() string {
	return `invest -institution <name> -amount <pesos> -rate <annual %> -days <term> [-withholding <%>] [-tax si|no]:
  Calculates the payout of a fixed-term deposit and saves it.
`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.form.Institution, "institution", "", "institution offering the deposit")
	f.StringVar(&c.form.Principal, "amount", "", "principal in pesos, separators are ignored")
	f.StringVar(&c.form.AnnualRate, "rate", "", "effective annual rate in percent")
	f.StringVar(&c.form.TermDays, "days", "", "term in days")
	f.StringVar(&c.form.WithholdingRate, "withholding", "", "withholding rate in percent (blank uses the configured default)")
	f.StringVar(&c.form.AppliesTax, "tax", "si", "apply the 4x1000 tax on withdrawal (si/no)")
}

func (c *investCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := c.form.Parse(c.app.defaultWithholding())
	if err != nil {
		return c.app.fail("cli.invest", err)
	}
	record, err := c.app.Store.AddInvestment(in)
	if err != nil {
		return c.app.fail("cli.invest", err)
	}

	tax := "No aplica"
	if record.AppliesTransactionTax {
		tax = format.Currency(record.TransactionTaxAmount)
	}
	c.app.details(
		"ID", fmt.Sprint(record.ID),
		"Entidad", record.Institution,
		"Valor invertido", format.Currency(record.Principal),
		"Tasa EA", format.Rate(record.AnnualRate),
		"Días", format.Days(record.TermDays),
		"Rentabilidad", format.Currency(record.GrossYield),
		"ReteFuente", format.Currency(record.WithholdingAmount),
		"Rent. sin ReteFuente", format.Currency(record.YieldAfterWithholding),
		"4x1000", tax,
		"Rentabilidad total", format.Currency(record.TotalNetYield),
		"Valor final", format.Currency(record.FinalPayout),
	)
	return subcommands.ExitSuccess
}

type investmentsCmd struct {
	app    *App
	form   input.FilterForm
	column int
	order  string
}

func (*investmentsCmd) Name() string     { return "investments" }
func (*investmentsCmd) Synopsis() string { return "list saved deposits with filters and totals" }
func (*investmentsCmd) Usage() string {
	return `investments [-institution <name>] [-rate <%>] [-min-amount <n>] [-max-amount <n>] [-min-days <n>] [-max-days <n>] [-sort <column>] [-order asc|desc]:
  Lists saved deposits matching every filter, followed by a totals row.
`
}

func (c *investmentsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.form.Institution, "institution", "", "exact institution name")
	f.StringVar(&c.form.Rate, "rate", "", "exact annual rate in percent")
	f.StringVar(&c.form.MinAmount, "min-amount", "", "minimum principal")
	f.StringVar(&c.form.MaxAmount, "max-amount", "", "maximum principal (blank or 0 is unbounded)")
	f.StringVar(&c.form.MinDays, "min-days", "", "minimum term in days")
	f.StringVar(&c.form.MaxDays, "max-days", "", "maximum term in days (blank or 0 is unbounded)")
	f.IntVar(&c.column, "sort", -1, "zero-based column to sort by")
	f.StringVar(&c.order, "order", "asc", "sort order: asc, desc")
}

func (c *investmentsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result := filter.Apply(c.app.Store.Investments.List(), c.form.Criteria())
	return c.app.render("cli.investments", "Inversiones", views.Investments(result), c.column, c.order)
}

type filtersCmd struct {
	app *App
}

func (*filtersCmd) Name() string     { return "filters" }
func (*filtersCmd) Synopsis() string { return "show the institutions and rates available as filters" }
func (*filtersCmd) Usage() string {
	return `filters:
  Prints the distinct institutions and rates of the saved deposits.
`
}

func (*filtersCmd) SetFlags(*flag.FlagSet) {}

func (c *filtersCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	options := filter.OptionsFor(c.app.Store.Investments.List())

	rates := make([]string, 0, len(options.Rates))
	for _, rate := range options.Rates {
		rates = append(rates, format.Rate(rate))
	}
	c.app.details(
		"Instituciones", joinOrEmpty(options.Institutions),
		"Tasas", joinOrEmpty(rates),
	)
	return subcommands.ExitSuccess
}

func joinOrEmpty(values []string) string {
	if len(values) == 0 {
		return "--"
	}
	return strings.Join(values, ", ")
}
