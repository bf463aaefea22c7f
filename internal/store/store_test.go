package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"github.com/iwvelando/deposit-calculator/pkg/datetime"
)

// mapStorage is a Storage whose writes can be made to fail.
type mapStorage struct {
	values  map[string]string
	readErr error
	failSet bool
}

func newMapStorage() *mapStorage {
	return &mapStorage{values: make(map[string]string)}
}

func (m *mapStorage) Get(key string) (string, bool, error) {
	if m.readErr != nil {
		return "", false, m.readErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mapStorage) Set(key, value string) error {
	if m.failSet {
		return errors.New("disk full")
	}
	m.values[key] = value
	return nil
}

// stepIDs hands out start, start+1, ...
func stepIDs(start int64) IDSource {
	next := start
	return TimestampIDs{Now: func() time.Time {
		id := next
		next++
		return time.UnixMilli(id)
	}}
}

// fixedIDs always hands out the same identifier.
func fixedIDs(id int64) IDSource {
	return TimestampIDs{Now: func() time.Time { return time.UnixMilli(id) }}
}

func sampleInvestment(institution string) InvestmentInput {
	return InvestmentInput{
		Institution:           institution,
		Principal:             10_000_000,
		AnnualRate:            12,
		TermDays:              90,
		WithholdingRate:       4,
		AppliesTransactionTax: true,
	}
}

func TestNewEmptyStorage(t *testing.T) {
	s := New(newMapStorage())
	if s.Investments.Len() != 0 || s.TaxCalcs.Len() != 0 || s.DateCalcs.Len() != 0 {
		t.Errorf("Expected empty collections")
	}
}

func TestNewMalformedData(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"Not JSON", "not json"},
		{"Object instead of array", `{"id":1}`},
		{"Wrong element type", `[1,2,3]`},
		{"Blank", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newMapStorage()
			st.values[constants.InvestmentsKey] = tt.value
			st.values[constants.TaxCalcsKey] = `[{"id":7,"amount":1000,"tax":4,"netAmount":996,"transferAmount":1004}]`

			s := New(st)
			if s.Investments.Len() != 0 {
				t.Errorf("Expected malformed investments to load empty, got %d", s.Investments.Len())
			}
			if s.TaxCalcs.Len() != 1 {
				t.Errorf("Expected the valid collection to load, got %d", s.TaxCalcs.Len())
			}
		})
	}
}

func TestNewReadError(t *testing.T) {
	st := newMapStorage()
	st.readErr = errors.New("unavailable")
	s := New(st)
	if s.Investments.Len() != 0 {
		t.Errorf("Expected empty collection on read error")
	}
}

func TestAddInvestment(t *testing.T) {
	st := newMapStorage()
	s := New(st, WithIDSource(stepIDs(100)))

	record, err := s.AddInvestment(sampleInvestment("Banco A"))
	if err != nil {
		t.Fatalf("AddInvestment() error = %v", err)
	}

	if record.ID != 100 {
		t.Errorf("Expected ID 100, got %d", record.ID)
	}
	if record.Principal != 10_000_000 {
		t.Errorf("Expected principal 10000000, got %d", record.Principal)
	}
	if record.GrossYield != 287373 || record.FinalPayout != 10274729 {
		t.Errorf("Unexpected derived amounts: gross %d final %d", record.GrossYield, record.FinalPayout)
	}

	raw := st.values[constants.InvestmentsKey]
	for _, field := range []string{`"id":100`, `"institution":"Banco A"`, `"finalPayout":10274729`, `"appliesTransactionTax":true`} {
		if !strings.Contains(raw, field) {
			t.Errorf("Persisted data %s missing %s", raw, field)
		}
	}

	reloaded := New(st)
	got := reloaded.Investments.List()
	if len(got) != 1 || got[0] != record {
		t.Errorf("Reloaded investments = %+v, want [%+v]", got, record)
	}
}

func TestAddTaxCalc(t *testing.T) {
	st := newMapStorage()
	s := New(st, WithIDSource(stepIDs(1)))

	record, err := s.AddTaxCalc(1000)
	if err != nil {
		t.Fatalf("AddTaxCalc() error = %v", err)
	}
	want := TaxCalc{ID: 1, Amount: 1000, Tax: 4, NetAmount: 996, TransferAmount: 1004}
	if record != want {
		t.Errorf("AddTaxCalc() = %+v, want %+v", record, want)
	}
	if got := New(st).TaxCalcs.List(); len(got) != 1 || got[0] != want {
		t.Errorf("Reloaded tax calcs = %+v", got)
	}
}

func TestAddDateCalc(t *testing.T) {
	base := datetime.New(2026, time.January, 5)

	tests := []struct {
		name      string
		base      datetime.Date
		days      int
		want      datetime.Date
		wantError error
	}{
		{"Thirty days", base, 30, datetime.New(2026, time.February, 4), nil},
		{"Zero days", base, 0, base, nil},
		{"Negative days", base, -1, datetime.Date{}, ErrNegativeDays},
		{"Missing base date", datetime.Date{}, 10, datetime.Date{}, ErrMissingBaseDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(newMapStorage(), WithIDSource(stepIDs(1)))
			record, err := s.AddDateCalc(tt.base, tt.days)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("AddDateCalc() error = %v, want %v", err, tt.wantError)
				}
				if s.DateCalcs.Len() != 0 {
					t.Errorf("Expected nothing saved on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("AddDateCalc() error = %v", err)
			}
			if record.ResultDate != tt.want {
				t.Errorf("ResultDate = %s, want %s", record.ResultDate, tt.want)
			}
			if record.DaysAdded != tt.days {
				t.Errorf("DaysAdded = %d, want %d", record.DaysAdded, tt.days)
			}
		})
	}
}

func TestDateCalcPersistedAsISODates(t *testing.T) {
	st := newMapStorage()
	s := New(st, WithIDSource(stepIDs(5)))
	if _, err := s.AddDateCalc(datetime.New(2026, time.January, 5), 30); err != nil {
		t.Fatalf("AddDateCalc() error = %v", err)
	}
	want := `[{"id":5,"baseDate":"2026-01-05","daysAdded":30,"resultDate":"2026-02-04"}]`
	if got := st.values[constants.DateOffsetCalcKey]; got != want {
		t.Errorf("persisted = %s, want %s", got, want)
	}
}

func TestRemoveByID(t *testing.T) {
	st := newMapStorage()
	s := New(st, WithIDSource(stepIDs(1)))

	first, _ := s.AddInvestment(sampleInvestment("Banco A"))
	before := st.values[constants.InvestmentsKey]
	second, _ := s.AddInvestment(sampleInvestment("Banco B"))

	removed, err := s.Investments.RemoveByID(second.ID)
	if err != nil || !removed {
		t.Fatalf("RemoveByID() = %v, %v", removed, err)
	}
	if got := s.Investments.List(); len(got) != 1 || got[0] != first {
		t.Errorf("Expected only the first record to remain, got %+v", got)
	}
	if st.values[constants.InvestmentsKey] != before {
		t.Errorf("Expected persisted state to match the state before the add")
	}
}

func TestRemoveByIDUnknown(t *testing.T) {
	st := newMapStorage()
	s := New(st, WithIDSource(stepIDs(1)))
	if _, err := s.AddTaxCalc(1000); err != nil {
		t.Fatalf("AddTaxCalc() error = %v", err)
	}
	before := st.values[constants.TaxCalcsKey]

	removed, err := s.TaxCalcs.RemoveByID(999)
	if err != nil {
		t.Fatalf("RemoveByID() error = %v", err)
	}
	if removed {
		t.Errorf("Expected nothing removed for an unknown id")
	}
	if s.TaxCalcs.Len() != 1 || st.values[constants.TaxCalcsKey] != before {
		t.Errorf("Expected collection unchanged")
	}
}

func TestRemoveByIDSharedTimestamp(t *testing.T) {
	s := New(newMapStorage(), WithIDSource(fixedIDs(42)))
	if _, err := s.AddInvestment(sampleInvestment("Banco A")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddInvestment(sampleInvestment("Banco B")); err != nil {
		t.Fatal(err)
	}

	if removed, _ := s.Investments.RemoveByID(42); !removed {
		t.Fatalf("Expected a record to be removed")
	}
	got := s.Investments.List()
	if len(got) != 1 || got[0].Institution != "Banco B" {
		t.Errorf("Expected only the first match removed, got %+v", got)
	}
}

func TestClear(t *testing.T) {
	tests := []struct {
		name        string
		confirm     Confirmer
		wantCleared bool
	}{
		{"Declined", Declined, false},
		{"Nil confirmer", nil, false},
		{"Confirmed", Confirmed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newMapStorage()
			s := New(st, WithIDSource(stepIDs(1)))
			_, _ = s.AddTaxCalc(1000)
			_, _ = s.AddTaxCalc(2000)

			cleared, err := s.TaxCalcs.Clear(tt.confirm)
			if err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			if cleared != tt.wantCleared {
				t.Errorf("Clear() = %v, want %v", cleared, tt.wantCleared)
			}
			wantLen := 2
			if tt.wantCleared {
				wantLen = 0
				if st.values[constants.TaxCalcsKey] != "[]" {
					t.Errorf("Expected [] persisted, got %s", st.values[constants.TaxCalcsKey])
				}
			}
			if s.TaxCalcs.Len() != wantLen {
				t.Errorf("Len() = %d, want %d", s.TaxCalcs.Len(), wantLen)
			}
		})
	}
}

func TestClearPromptNamesCollection(t *testing.T) {
	var asked string
	s := New(newMapStorage())
	_, _ = s.DateCalcs.Clear(ConfirmFunc(func(prompt string) bool {
		asked = prompt
		return false
	}))
	if !strings.Contains(asked, constants.DateOffsetCalcKey) {
		t.Errorf("prompt %q does not name the collection", asked)
	}
}

func TestEmptyCollectionPersistsArray(t *testing.T) {
	st := newMapStorage()
	s := New(st, WithIDSource(stepIDs(1)))
	record, _ := s.AddInvestment(sampleInvestment("Banco A"))
	if _, err := s.Investments.RemoveByID(record.ID); err != nil {
		t.Fatal(err)
	}
	if st.values[constants.InvestmentsKey] != "[]" {
		t.Errorf("Expected [] persisted, got %s", st.values[constants.InvestmentsKey])
	}
	if New(st).Investments.Len() != 0 {
		t.Errorf("Expected empty collection after reload")
	}
}

func TestPersistFailure(t *testing.T) {
	st := newMapStorage()
	st.failSet = true
	s := New(st, WithIDSource(stepIDs(1)))

	_, err := s.AddTaxCalc(1000)
	if err == nil {
		t.Fatalf("Expected persistence error")
	}
	if !strings.Contains(err.Error(), constants.TaxCalcsKey) {
		t.Errorf("error %q does not name the collection", err)
	}
	if s.TaxCalcs.Len() != 1 {
		t.Errorf("Expected the record to stay in memory")
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := New(newMapStorage(), WithIDSource(stepIDs(1)))
	_, _ = s.AddTaxCalc(1000)
	list := s.TaxCalcs.List()
	list[0].Amount = 1
	if s.TaxCalcs.List()[0].Amount != 1000 {
		t.Errorf("List() exposed internal state")
	}
}

func TestCollectionLookup(t *testing.T) {
	s := New(newMapStorage())
	for _, key := range []string{constants.InvestmentsKey, constants.TaxCalcsKey, constants.DateOffsetCalcKey} {
		c, err := s.Collection(key)
		if err != nil {
			t.Fatalf("Collection(%s) error = %v", key, err)
		}
		if c.Key() != key {
			t.Errorf("Collection(%s).Key() = %s", key, c.Key())
		}
	}
	if _, err := s.Collection("other"); !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("Expected ErrUnknownCollection, got %v", err)
	}
}
