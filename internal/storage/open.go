package storage

import (
	"context"
	"fmt"

	"github.com/iwvelando/deposit-calculator/internal/config"
	"github.com/iwvelando/deposit-calculator/pkg/constants"
)

// Backend is a key-value storage that holds resources until closed.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case constants.StorageBackendMemory:
		return NewMemory(), nil
	case constants.StorageBackendFile, "":
		path := cfg.Path
		if path == "" {
			path = constants.DefaultStoragePath
		}
		return NewFile(path)
	case constants.StorageBackendSQLite:
		path := cfg.Path
		if path == "" {
			path = constants.DefaultSQLitePath
		}
		return NewSQLite(path)
	case constants.StorageBackendPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("storage backend %s requires a dsn", constants.StorageBackendPostgres)
		}
		return NewPostgres(ctx, cfg.DSN, cfg.Timeout)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
