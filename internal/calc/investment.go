// Package calc holds the calculator formulas: fixed-term deposit payout,
// the 4x1000 transaction tax and calendar-date offsets. All functions are pure.
package calc

import (
	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"github.com/iwvelando/deposit-calculator/pkg/mathutil"
)

// InvestmentResult holds the derived amounts of a fixed-term deposit. Each
// field is rounded to whole currency units on its own, so the rounded fields
// may not add up exactly.
type InvestmentResult struct {
	GrossYield            int64
	WithholdingAmount     int64
	YieldAfterWithholding int64
	TransactionTaxAmount  int64
	TotalNetYield         int64
	FinalPayout           int64
}

// ComputeInvestmentPayout compounds principal at the daily equivalent of an
// effective annual rate (360-day basis) over termDays, then subtracts the
// withholding tax and, when it applies, the 4x1000 tax on the yield.
//
// Inputs are not validated; negative or zero rates propagate through the
// formula as they are.
func ComputeInvestmentPayout(principal, annualRatePercent float64, termDays int, withholdingRatePercent float64, appliesTransactionTax bool) InvestmentResult {
	dailyRate := mathutil.PeriodicRate(annualRatePercent, constants.DaysPerYear)
	grossYield := principal * mathutil.CompoundGrowth(dailyRate, termDays)
	withholding := mathutil.ApplyPercentage(grossYield, withholdingRatePercent)

	transactionTax := 0.0
	if appliesTransactionTax {
		transactionTax = grossYield * constants.TransactionTaxRate
	}

	totalNetYield := grossYield - withholding - transactionTax

	return InvestmentResult{
		GrossYield:            mathutil.RoundUnit(grossYield),
		WithholdingAmount:     mathutil.RoundUnit(withholding),
		YieldAfterWithholding: mathutil.RoundUnit(grossYield - withholding),
		TransactionTaxAmount:  mathutil.RoundUnit(transactionTax),
		TotalNetYield:         mathutil.RoundUnit(totalNetYield),
		FinalPayout:           mathutil.RoundUnit(principal + totalNetYield),
	}
}
