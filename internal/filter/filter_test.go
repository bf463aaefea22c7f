package filter

import (
	"math"
	"reflect"
	"testing"

	"github.com/iwvelando/deposit-calculator/internal/store"
)

func sampleRecords() []store.Investment {
	return []store.Investment{
		{ID: 1, Institution: "Bancolombia", Principal: 10_000_000, AnnualRate: 12, TermDays: 90, GrossYield: 287373, WithholdingAmount: 11495, YieldAfterWithholding: 275879, TransactionTaxAmount: 1149, TotalNetYield: 274729, FinalPayout: 10274729},
		{ID: 2, Institution: "Davivienda", Principal: 5_000_000, AnnualRate: 10.5, TermDays: 180, GrossYield: 255949, WithholdingAmount: 10238, YieldAfterWithholding: 245711, TotalNetYield: 245711, FinalPayout: 5245711},
		{ID: 3, Institution: "Bancolombia", Principal: 2_000_000, AnnualRate: 10.5, TermDays: 360, GrossYield: 210000, WithholdingAmount: 8400, YieldAfterWithholding: 201600, TotalNetYield: 201600, FinalPayout: 2201600},
		{ID: 4, Institution: "AV Villas", Principal: 1_000_000, AnnualRate: 9, TermDays: 30, GrossYield: 7209, WithholdingAmount: 288, YieldAfterWithholding: 6921, TotalNetYield: 6921, FinalPayout: 1006921},
	}
}

func ids(records []store.Investment) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestApply(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name     string
		criteria func() Criteria
		wantIDs  []int64
	}{
		{
			name:     "Unbounded returns everything in order",
			criteria: All,
			wantIDs:  []int64{1, 2, 3, 4},
		},
		{
			name: "Institution",
			criteria: func() Criteria {
				c := All()
				c.Institution = strPtr("Bancolombia")
				return c
			},
			wantIDs: []int64{1, 3},
		},
		{
			name: "Institution is an exact match",
			criteria: func() Criteria {
				c := All()
				c.Institution = strPtr("bancolombia")
				return c
			},
			wantIDs: []int64{},
		},
		{
			name: "Rate",
			criteria: func() Criteria {
				c := All()
				c.Rate = floatPtr(10.5)
				return c
			},
			wantIDs: []int64{2, 3},
		},
		{
			name: "Amount range is inclusive",
			criteria: func() Criteria {
				c := All()
				c.MinAmount = 2_000_000
				c.MaxAmount = 5_000_000
				return c
			},
			wantIDs: []int64{2, 3},
		},
		{
			name: "Days range is inclusive",
			criteria: func() Criteria {
				c := All()
				c.MinDays = 90
				c.MaxDays = 180
				return c
			},
			wantIDs: []int64{1, 2},
		},
		{
			name: "Conjunction",
			criteria: func() Criteria {
				c := All()
				c.Institution = strPtr("Bancolombia")
				c.Rate = floatPtr(10.5)
				c.MinDays = 100
				return c
			},
			wantIDs: []int64{3},
		},
		{
			name: "Minimum above maximum",
			criteria: func() Criteria {
				c := All()
				c.MinAmount = 5_000_000
				c.MaxAmount = 1_000_000
				return c
			},
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(records, tt.criteria())
			if got := ids(result.Records); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("Apply() ids = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestRateMatchesWithinTolerance(t *testing.T) {
	records := []store.Investment{
		{ID: 1, Institution: "Banco A", Principal: 1000, AnnualRate: 0.3, TermDays: 30},
		{ID: 2, Institution: "Banco B", Principal: 1000, AnnualRate: 0.31, TermDays: 30},
	}
	a, b := 0.1, 0.2
	rate := a + b // 0.30000000000000004
	c := All()
	c.Rate = &rate

	got := Apply(records, c)
	if len(got.Records) != 1 || got.Records[0].ID != 1 {
		t.Errorf("Expected only the 0.3 record, got %+v", got.Records)
	}
}

func TestApplyTotals(t *testing.T) {
	c := All()
	c.Institution = strPtr("Bancolombia")
	result := Apply(sampleRecords(), c)

	want := Totals{
		Principal:             12_000_000,
		GrossYield:            497373,
		WithholdingAmount:     19895,
		YieldAfterWithholding: 477479,
		TransactionTaxAmount:  1149,
		TotalNetYield:         476329,
		FinalPayout:           12476329,
	}
	if result.Totals != want {
		t.Errorf("Totals = %+v, want %+v", result.Totals, want)
	}
}

func TestApplyEmpty(t *testing.T) {
	c := All()
	c.MinDays = 400
	result := Apply(sampleRecords(), c)
	if len(result.Records) != 0 {
		t.Errorf("Expected no records, got %d", len(result.Records))
	}
	if result.Totals != (Totals{}) {
		t.Errorf("Expected zero totals, got %+v", result.Totals)
	}
	if result.Records == nil {
		t.Errorf("Expected an empty, non-nil slice")
	}

	if got := Apply(nil, All()); len(got.Records) != 0 || got.Totals != (Totals{}) {
		t.Errorf("Apply(nil) = %+v", got)
	}
}

func TestAll(t *testing.T) {
	c := All()
	if c.Institution != nil || c.Rate != nil {
		t.Errorf("All() should leave institution and rate unset")
	}
	if c.MinAmount != 0 || c.MinDays != 0 {
		t.Errorf("All() minimums should be 0")
	}
	if !math.IsInf(c.MaxAmount, 1) || !math.IsInf(c.MaxDays, 1) {
		t.Errorf("All() maximums should be +Inf")
	}
}

func TestOptionsFor(t *testing.T) {
	opts := OptionsFor(sampleRecords())

	wantInstitutions := []string{"AV Villas", "Bancolombia", "Davivienda"}
	if !reflect.DeepEqual(opts.Institutions, wantInstitutions) {
		t.Errorf("Institutions = %v, want %v", opts.Institutions, wantInstitutions)
	}
	wantRates := []float64{9, 10.5, 12}
	if !reflect.DeepEqual(opts.Rates, wantRates) {
		t.Errorf("Rates = %v, want %v", opts.Rates, wantRates)
	}

	empty := OptionsFor(nil)
	if len(empty.Institutions) != 0 || len(empty.Rates) != 0 {
		t.Errorf("OptionsFor(nil) = %+v", empty)
	}
}
