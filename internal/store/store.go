// Package store owns the three record collections (investments, 4x1000
// calculations and date offsets) and persists them through a Storage.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/deposit-calculator/internal/calc"
	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"github.com/iwvelando/deposit-calculator/pkg/datetime"
	"github.com/iwvelando/deposit-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

var (
	// ErrNegativeDays is returned when saving a date offset with negative days.
	ErrNegativeDays = errors.New("days to add must not be negative")

	// ErrMissingBaseDate is returned when saving a date offset without a base date.
	ErrMissingBaseDate = errors.New("base date is required")

	// ErrUnknownCollection is returned by Collection for an unknown key.
	ErrUnknownCollection = errors.New("unknown collection")
)

// Lifecycle is the kind-independent part of a collection.
type Lifecycle interface {
	Key() string
	Len() int
	RemoveByID(id int64) (bool, error)
	Clear(confirm Confirmer) (bool, error)
}

// Store holds the record collections.
type Store struct {
	Investments *Collection[Investment]
	TaxCalcs    *Collection[TaxCalc]
	DateCalcs   *Collection[DateCalc]

	ids    IDSource
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDSource sets the identifier source.
func WithIDSource(ids IDSource) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// New loads every collection from storage. Missing or malformed collections
// start empty.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		ids:    TimestampIDs{Now: time.Now},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Investments = newCollection[Investment](constants.InvestmentsKey, storage, s.logger)
	s.TaxCalcs = newCollection[TaxCalc](constants.TaxCalcsKey, storage, s.logger)
	s.DateCalcs = newCollection[DateCalc](constants.DateOffsetCalcKey, storage, s.logger)

	if m, ok := s.ids.(*MonotonicIDs); ok {
		for _, r := range s.Investments.List() {
			m.Observe(r.ID)
		}
		for _, r := range s.TaxCalcs.List() {
			m.Observe(r.ID)
		}
		for _, r := range s.DateCalcs.List() {
			m.Observe(r.ID)
		}
	}

	s.logger.Debug("store loaded",
		zap.String("op", "store.New"),
		zap.Int("investments", s.Investments.Len()),
		zap.Int("taxCalcs", s.TaxCalcs.Len()),
		zap.Int("dateCalcs", s.DateCalcs.Len()),
	)
	return s
}

// Collection returns the collection stored under key.
func (s *Store) Collection(key string) (Lifecycle, error) {
	switch key {
	case constants.InvestmentsKey:
		return s.Investments, nil
	case constants.TaxCalcsKey:
		return s.TaxCalcs, nil
	case constants.DateOffsetCalcKey:
		return s.DateCalcs, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, key)
}

// AddInvestment computes and saves an investment. The returned error reports a
// persistence failure; the record stays in memory either way.
func (s *Store) AddInvestment(in InvestmentInput) (Investment, error) {
	result := calc.ComputeInvestmentPayout(in.Principal, in.AnnualRate, in.TermDays, in.WithholdingRate, in.AppliesTransactionTax)
	record := Investment{
		ID:                    s.ids.NextID(),
		Institution:           in.Institution,
		Principal:             mathutil.RoundUnit(in.Principal),
		AnnualRate:            in.AnnualRate,
		TermDays:              in.TermDays,
		WithholdingRate:       in.WithholdingRate,
		AppliesTransactionTax: in.AppliesTransactionTax,
		GrossYield:            result.GrossYield,
		WithholdingAmount:     result.WithholdingAmount,
		YieldAfterWithholding: result.YieldAfterWithholding,
		TransactionTaxAmount:  result.TransactionTaxAmount,
		TotalNetYield:         result.TotalNetYield,
		FinalPayout:           result.FinalPayout,
	}
	s.logger.Info("investment added",
		zap.String("op", "store.AddInvestment"),
		zap.Int64("id", record.ID),
		zap.String("institution", record.Institution),
		zap.Int64("finalPayout", record.FinalPayout),
	)
	return record, s.Investments.add(record)
}

// AddTaxCalc computes and saves a 4x1000 calculation.
func (s *Store) AddTaxCalc(amount float64) (TaxCalc, error) {
	result := calc.ComputeTransactionTax(amount)
	record := TaxCalc{
		ID:             s.ids.NextID(),
		Amount:         result.Amount,
		Tax:            result.Tax,
		NetAmount:      result.Net,
		TransferAmount: result.Transfer,
	}
	s.logger.Info("transaction tax calculation added",
		zap.String("op", "store.AddTaxCalc"),
		zap.Int64("id", record.ID),
		zap.Int64("amount", record.Amount),
	)
	return record, s.TaxCalcs.add(record)
}

// AddDateCalc computes and saves a date offset. Saving requires a base date
// and a non-negative number of days.
func (s *Store) AddDateCalc(base datetime.Date, days int) (DateCalc, error) {
	if base.IsZero() {
		return DateCalc{}, ErrMissingBaseDate
	}
	if days < 0 {
		return DateCalc{}, ErrNegativeDays
	}
	record := DateCalc{
		ID:         s.ids.NextID(),
		BaseDate:   base,
		DaysAdded:  days,
		ResultDate: calc.AddCalendarDays(base, days),
	}
	s.logger.Info("date calculation added",
		zap.String("op", "store.AddDateCalc"),
		zap.Int64("id", record.ID),
		zap.String("resultDate", record.ResultDate.String()),
	)
	return record, s.DateCalcs.add(record)
}
