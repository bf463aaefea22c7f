// Package views projects stored records into sortable tables. The CLI and the
// HTTP server render the same tables.
package views

import (
	"strconv"

	"github.com/iwvelando/deposit-calculator/internal/filter"
	"github.com/iwvelando/deposit-calculator/internal/store"
	"github.com/iwvelando/deposit-calculator/internal/tablesort"
	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"github.com/iwvelando/deposit-calculator/pkg/format"
)

// Column layouts.
var (
	InvestmentColumns = []tablesort.Column{
		{Header: "Entidad", Type: tablesort.Text},
		{Header: "Valor invertido", Type: tablesort.Number},
		{Header: "Tasa EA", Type: tablesort.Number},
		{Header: "Días", Type: tablesort.Number},
		{Header: "Rentabilidad", Type: tablesort.Number},
		{Header: "ReteFuente", Type: tablesort.Number},
		{Header: "Rent. sin ReteFuente", Type: tablesort.Number},
		{Header: "4x1000", Type: tablesort.Number},
		{Header: "Rentabilidad total", Type: tablesort.Number},
		{Header: "Valor final", Type: tablesort.Number},
	}

	TaxCalcColumns = []tablesort.Column{
		{Header: "Valor", Type: tablesort.Number},
		{Header: "4x1000", Type: tablesort.Number},
		{Header: "Valor total", Type: tablesort.Number},
		{Header: "Valor a transferir", Type: tablesort.Number},
	}

	DateCalcColumns = []tablesort.Column{
		{Header: "Fecha base", Type: tablesort.Date},
		{Header: "Días sumados", Type: tablesort.Number},
		{Header: "Fecha resultado", Type: tablesort.Date},
	}
)

func money(amount int64) tablesort.Cell {
	return tablesort.Cell{Text: format.Currency(amount), Key: strconv.FormatInt(amount, 10)}
}

func empty() tablesort.Cell {
	return tablesort.Cell{Text: constants.EmptyCell}
}

// Investments projects a filtered selection. A totals row is appended when
// the selection is not empty.
func Investments(result filter.Result) tablesort.Table {
	t := tablesort.Table{Columns: InvestmentColumns, Rows: make([]tablesort.Row, 0, len(result.Records)+1)}
	for _, inv := range result.Records {
		t.Rows = append(t.Rows, tablesort.Row{
			ID: inv.ID,
			Cells: []tablesort.Cell{
				{Text: inv.Institution},
				money(inv.Principal),
				{Text: format.Rate(inv.AnnualRate), Key: format.RateValue(inv.AnnualRate)},
				{Text: strconv.Itoa(inv.TermDays), Key: strconv.Itoa(inv.TermDays)},
				money(inv.GrossYield),
				money(inv.WithholdingAmount),
				money(inv.YieldAfterWithholding),
				money(inv.TransactionTaxAmount),
				money(inv.TotalNetYield),
				money(inv.FinalPayout),
			},
		})
	}

	if len(result.Records) > 0 {
		totals := result.Totals
		t.Rows = append(t.Rows, tablesort.Row{
			Totals: true,
			Cells: []tablesort.Cell{
				{Text: constants.TotalsLabel},
				money(totals.Principal),
				empty(),
				empty(),
				money(totals.GrossYield),
				money(totals.WithholdingAmount),
				money(totals.YieldAfterWithholding),
				money(totals.TransactionTaxAmount),
				money(totals.TotalNetYield),
				money(totals.FinalPayout),
			},
		})
	}
	return t
}

// TaxCalcs projects 4x1000 calculations.
func TaxCalcs(records []store.TaxCalc) tablesort.Table {
	t := tablesort.Table{Columns: TaxCalcColumns, Rows: make([]tablesort.Row, 0, len(records))}
	for _, r := range records {
		t.Rows = append(t.Rows, tablesort.Row{
			ID: r.ID,
			Cells: []tablesort.Cell{
				money(r.Amount),
				money(r.Tax),
				money(r.NetAmount),
				money(r.TransferAmount),
			},
		})
	}
	return t
}

// DateCalcs projects date offset calculations.
func DateCalcs(records []store.DateCalc) tablesort.Table {
	t := tablesort.Table{Columns: DateCalcColumns, Rows: make([]tablesort.Row, 0, len(records))}
	for _, r := range records {
		t.Rows = append(t.Rows, tablesort.Row{
			ID: r.ID,
			Cells: []tablesort.Cell{
				{Text: r.BaseDate.Display(), Key: r.BaseDate.String()},
				{Text: format.Days(r.DaysAdded), Key: strconv.Itoa(r.DaysAdded)},
				{Text: r.ResultDate.Display(), Key: r.ResultDate.String()},
			},
		})
	}
	return t
}
