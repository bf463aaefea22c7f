package store

import (
	"sync"
	"time"

	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"github.com/iwvelando/deposit-calculator/pkg/validation"
)

// IDSource hands out record identifiers.
type IDSource interface {
	NextID() int64
}

// TimestampIDs uses the creation time in milliseconds as identifier. Two
// records created within the same millisecond get the same identifier.
type TimestampIDs struct {
	Now func() time.Time
}

// NextID implements IDSource.
func (t TimestampIDs) NextID() int64 {
	return nowOrDefault(t.Now)().UnixMilli()
}

// MonotonicIDs uses the creation time in milliseconds, bumped when needed so
// every identifier is strictly greater than the last one handed out.
type MonotonicIDs struct {
	now  func() time.Time
	mu   sync.Mutex
	last int64
}

// NewMonotonicIDs creates a MonotonicIDs reading time from now (time.Now if nil).
func NewMonotonicIDs(now func() time.Time) *MonotonicIDs {
	return &MonotonicIDs{now: nowOrDefault(now)}
}

// NextID implements IDSource.
func (m *MonotonicIDs) NextID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.now().UnixMilli()
	if id <= m.last {
		id = m.last + 1
	}
	m.last = id
	return id
}

// Observe records an identifier already in use, e.g. one loaded from storage.
func (m *MonotonicIDs) Observe(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id > m.last {
		m.last = id
	}
}

// NewIDSource returns the IDSource for a configured strategy.
func NewIDSource(strategy string, now func() time.Time) (IDSource, error) {
	if err := validation.ValidateIDStrategy(strategy); err != nil {
		return nil, err
	}
	if strategy == constants.IDStrategyMonotonic {
		return NewMonotonicIDs(now), nil
	}
	return TimestampIDs{Now: now}, nil
}

func nowOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
