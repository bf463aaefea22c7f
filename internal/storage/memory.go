// Package storage provides the key-value backends behind the record store:
// memory, JSON files on disk, SQLite and Postgres.
package storage

import (
	"sync"
)

// Memory is an in-memory key-value storage. It is safe for concurrent use and
// loses its content when the process exits.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements store.Storage.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements store.Storage.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Close implements Backend.
func (m *Memory) Close() error { return nil }
