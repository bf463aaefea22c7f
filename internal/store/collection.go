package store

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Storage is the key-value persistence collaborator. Get reports ok == false
// when the key has never been written.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Collection is an ordered, persisted list of records of one kind. Records
// keep their creation order; every mutation rewrites the whole collection
// under the collection key.
type Collection[T Record] struct {
	key     string
	storage Storage
	logger  *zap.Logger

	mu    sync.Mutex
	items []T
}

func newCollection[T Record](key string, storage Storage, logger *zap.Logger) *Collection[T] {
	c := &Collection[T]{key: key, storage: storage, logger: logger}
	c.items = c.load()
	return c
}

// load reads the collection from storage. Missing or malformed data yields an
// empty collection.
func (c *Collection[T]) load() []T {
	raw, ok, err := c.storage.Get(c.key)
	if err != nil {
		c.logger.Warn("failed to read collection, starting empty",
			zap.String("op", "store.Collection.load"),
			zap.String("key", c.key),
			zap.Error(err),
		)
		return nil
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logger.Warn("malformed collection data, starting empty",
			zap.String("op", "store.Collection.load"),
			zap.String("key", c.key),
			zap.Error(err),
		)
		return nil
	}
	return items
}

// persist writes the whole collection. The caller holds c.mu.
func (c *Collection[T]) persist(op string) error {
	items := c.items
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.storage.Set(c.key, string(data)); err != nil {
		c.logger.Error("failed to persist collection",
			zap.String("op", op),
			zap.String("key", c.key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to persist %s: %w", c.key, err)
	}
	c.logger.Debug("collection persisted",
		zap.String("op", op),
		zap.String("key", c.key),
		zap.Int("records", len(items)),
	)
	return nil
}

// Key returns the storage key of the collection.
func (c *Collection[T]) Key() string { return c.key }

// List returns a copy of the records in creation order.
func (c *Collection[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Collection[T]) add(record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, record)
	return c.persist("store.Collection.add")
}

// RemoveByID removes the first record with the given identifier. An unknown
// identifier is not an error; removed reports whether a record was dropped.
func (c *Collection[T]) RemoveByID(id int64) (removed bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := slices.IndexFunc(c.items, func(r T) bool { return r.RecordID() == id })
	if idx < 0 {
		return false, nil
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	return true, c.persist("store.Collection.RemoveByID")
}

// Clear empties the collection once confirm agrees. A nil Confirmer never
// agrees. cleared reports whether the collection was emptied.
func (c *Collection[T]) Clear(confirm Confirmer) (cleared bool, err error) {
	if confirm == nil || !confirm.Confirm(ClearPrompt(c.key)) {
		return false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return true, c.persist("store.Collection.Clear")
}

// ClearPrompt is the question asked before clearing the collection stored
// under key.
func ClearPrompt(key string) string {
	return fmt.Sprintf("¿Desea eliminar todos los registros de %s?", key)
}
