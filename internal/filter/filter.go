// Package filter selects investments by institution, rate, amount and term,
// and totals the selection.
package filter

import (
	"math"
	"slices"
	"sort"

	"github.com/iwvelando/deposit-calculator/internal/store"
	"github.com/iwvelando/deposit-calculator/pkg/mathutil"
)

// rateTolerance absorbs float noise between a typed rate and a stored one.
const rateTolerance = 1e-9

// Criteria is a conjunction of predicates over investments. A nil Institution
// or Rate matches every record. Amount and term ranges are inclusive.
type Criteria struct {
	Institution *string
	Rate        *float64
	MinAmount   float64
	MaxAmount   float64
	MinDays     float64
	MaxDays     float64
}

// All returns criteria that match every investment.
func All() Criteria {
	return Criteria{
		MinAmount: 0,
		MaxAmount: math.Inf(1),
		MinDays:   0,
		MaxDays:   math.Inf(1),
	}
}

// Totals sums the monetary fields of a selection.
type Totals struct {
	Principal             int64 `json:"principal"`
	GrossYield            int64 `json:"grossYield"`
	WithholdingAmount     int64 `json:"withholdingAmount"`
	YieldAfterWithholding int64 `json:"yieldAfterWithholding"`
	TransactionTaxAmount  int64 `json:"transactionTaxAmount"`
	TotalNetYield         int64 `json:"totalNetYield"`
	FinalPayout           int64 `json:"finalPayout"`
}

// Result is a filtered selection in creation order with its totals.
type Result struct {
	Records []store.Investment `json:"records"`
	Totals  Totals             `json:"totals"`
}

// Options are the values offered by the institution and rate filters.
type Options struct {
	Institutions []string  `json:"institutions"`
	Rates        []float64 `json:"rates"`
}

// Matches reports whether inv satisfies every predicate of c.
func (c Criteria) Matches(inv store.Investment) bool {
	if c.Institution != nil && inv.Institution != *c.Institution {
		return false
	}
	if c.Rate != nil && !mathutil.WithinTolerance(inv.AnnualRate, *c.Rate, rateTolerance) {
		return false
	}
	principal := float64(inv.Principal)
	if principal < c.MinAmount || principal > c.MaxAmount {
		return false
	}
	days := float64(inv.TermDays)
	return days >= c.MinDays && days <= c.MaxDays
}

// Apply returns the investments matching c, in their original order, and their
// totals. A range whose minimum exceeds its maximum matches nothing.
func Apply(records []store.Investment, c Criteria) Result {
	result := Result{Records: []store.Investment{}}
	for _, inv := range records {
		if !c.Matches(inv) {
			continue
		}
		result.Records = append(result.Records, inv)
		result.Totals.add(inv)
	}
	return result
}

func (t *Totals) add(inv store.Investment) {
	t.Principal += inv.Principal
	t.GrossYield += inv.GrossYield
	t.WithholdingAmount += inv.WithholdingAmount
	t.YieldAfterWithholding += inv.YieldAfterWithholding
	t.TransactionTaxAmount += inv.TransactionTaxAmount
	t.TotalNetYield += inv.TotalNetYield
	t.FinalPayout += inv.FinalPayout
}

// OptionsFor lists the distinct institutions (sorted) and rates (ascending)
// present in records.
func OptionsFor(records []store.Investment) Options {
	opts := Options{Institutions: []string{}, Rates: []float64{}}
	seenInstitution := make(map[string]bool)
	seenRate := make(map[float64]bool)
	for _, inv := range records {
		if !seenInstitution[inv.Institution] {
			seenInstitution[inv.Institution] = true
			opts.Institutions = append(opts.Institutions, inv.Institution)
		}
		if !seenRate[inv.AnnualRate] {
			seenRate[inv.AnnualRate] = true
			opts.Rates = append(opts.Rates, inv.AnnualRate)
		}
	}
	sort.Strings(opts.Institutions)
	slices.Sort(opts.Rates)
	return opts
}
