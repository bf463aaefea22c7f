// Package testutil provides common utility functions for testing.
package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/iwvelando/deposit-calculator/internal/storage"
	"github.com/iwvelando/deposit-calculator/internal/store"
)

// FindInvestment finds the first investment with the given institution.
// Returns a pointer to the record if found, nil otherwise.
func FindInvestment(records []store.Investment, institution string) *store.Investment {
	for i := range records {
		if records[i].Institution == institution {
			return &records[i]
		}
	}
	return nil
}

// FixedClock returns a clock that always reads t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// StepClock returns a clock that starts at start and advances by step on
// every reading.
func StepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}

// NewMemoryStore returns a store backed by in-memory storage whose
// identifiers come from a clock advancing one millisecond per record.
func NewMemoryStore(tb testing.TB, opts ...store.Option) (*store.Store, *storage.Memory) {
	tb.Helper()
	mem := storage.NewMemory()
	ids := store.TimestampIDs{Now: StepClock(time.UnixMilli(1_767_600_000_000), time.Millisecond)}
	all := append([]store.Option{store.WithIDSource(ids)}, opts...)
	return store.New(mem, all...), mem
}
