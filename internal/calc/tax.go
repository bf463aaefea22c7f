package calc

import (
	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"github.com/iwvelando/deposit-calculator/pkg/mathutil"
)

// TaxResult is the 4x1000 breakdown of an amount.
type TaxResult struct {
	Amount   int64
	Tax      int64
	Net      int64
	Transfer int64
}

// ComputeTransactionTax applies the 4x1000 tax to amount. Net is what remains
// after the tax is charged on the amount; Transfer is what must be sent so the
// amount arrives whole. Every field is rounded independently.
func ComputeTransactionTax(amount float64) TaxResult {
	tax := amount * constants.TransactionTaxRate
	return TaxResult{
		Amount:   mathutil.RoundUnit(amount),
		Tax:      mathutil.RoundUnit(tax),
		Net:      mathutil.RoundUnit(amount - tax),
		Transfer: mathutil.RoundUnit(amount + tax),
	}
}
