package store

import (
	"github.com/iwvelando/deposit-calculator/pkg/datetime"
)

// Record is implemented by every stored calculation.
type Record interface {
	RecordID() int64
}

// Investment is a saved fixed-term deposit calculation. Derived amounts are
// computed once at creation and stored as they were rounded.
type Investment struct {
	ID                    int64   `json:"id"`
	Institution           string  `json:"institution"`
	Principal             int64   `json:"principal"`
	AnnualRate            float64 `json:"annualRate"`
	TermDays              int     `json:"termDays"`
	WithholdingRate       float64 `json:"withholdingRate"`
	AppliesTransactionTax bool    `json:"appliesTransactionTax"`
	GrossYield            int64   `json:"grossYield"`
	WithholdingAmount     int64   `json:"withholdingAmount"`
	YieldAfterWithholding int64   `json:"yieldAfterWithholding"`
	TransactionTaxAmount  int64   `json:"transactionTaxAmount"`
	TotalNetYield         int64   `json:"totalNetYield"`
	FinalPayout           int64   `json:"finalPayout"`
}

// RecordID implements Record.
func (i Investment) RecordID() int64 { return i.ID }

// TaxCalc is a saved 4x1000 calculation.
type TaxCalc struct {
	ID             int64 `json:"id"`
	Amount         int64 `json:"amount"`
	Tax            int64 `json:"tax"`
	NetAmount      int64 `json:"netAmount"`
	TransferAmount int64 `json:"transferAmount"`
}

// RecordID implements Record.
func (t TaxCalc) RecordID() int64 { return t.ID }

// DateCalc is a saved date-offset calculation.
type DateCalc struct {
	ID         int64         `json:"id"`
	BaseDate   datetime.Date `json:"baseDate"`
	DaysAdded  int           `json:"daysAdded"`
	ResultDate datetime.Date `json:"resultDate"`
}

// RecordID implements Record.
func (d DateCalc) RecordID() int64 { return d.ID }

// InvestmentInput is a validated investment form.
type InvestmentInput struct {
	Institution           string
	Principal             float64
	AnnualRate            float64
	TermDays              int
	WithholdingRate       float64
	AppliesTransactionTax bool
}
