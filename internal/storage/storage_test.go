package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/deposit-calculator/internal/config"
	"github.com/iwvelando/deposit-calculator/pkg/constants"
)

// exerciseBackend checks the contract every backend shares.
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()

	if _, ok, err := b.Get(constants.InvestmentsKey); err != nil || ok {
		t.Fatalf("Get() on a fresh backend = ok %v, err %v; want not found", ok, err)
	}

	if err := b.Set(constants.InvestmentsKey, `[{"id":1}]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := b.Get(constants.InvestmentsKey)
	if err != nil || !ok {
		t.Fatalf("Get() after Set = ok %v, err %v", ok, err)
	}
	if got != `[{"id":1}]` {
		t.Errorf("Get() = %q, want %q", got, `[{"id":1}]`)
	}

	if err := b.Set(constants.InvestmentsKey, `[]`); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	got, _, _ = b.Get(constants.InvestmentsKey)
	if got != `[]` {
		t.Errorf("Get() after overwrite = %q, want []", got)
	}

	if _, ok, _ := b.Get(constants.TaxCalcsKey); ok {
		t.Errorf("Get() of an unrelated key reported a value")
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	exerciseBackend(t, m)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	defer f.Close()
	exerciseBackend(t, f)

	data, err := os.ReadFile(filepath.Join(dir, constants.InvestmentsKey+".json"))
	if err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("file content = %q, want []", data)
	}

	reopened, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile() reopen error = %v", err)
	}
	if got, ok, _ := reopened.Get(constants.InvestmentsKey); !ok || got != `[]` {
		t.Errorf("reopened Get() = %q, %v", got, ok)
	}
}

func TestFileInvalidKey(t *testing.T) {
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	for _, key := range []string{"", "../escape", "a/b", "with space"} {
		t.Run(key, func(t *testing.T) {
			if err := f.Set(key, "x"); err == nil {
				t.Errorf("Set(%q) expected error", key)
			}
			if _, _, err := f.Get(key); err == nil {
				t.Errorf("Get(%q) expected error", key)
			}
		})
	}
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "calc.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	exerciseBackend(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite() reopen error = %v", err)
	}
	defer reopened.Close()
	if got, ok, _ := reopened.Get(constants.InvestmentsKey); !ok || got != `[]` {
		t.Errorf("reopened Get() = %q, %v", got, ok)
	}
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("CDT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CDT_TEST_POSTGRES_DSN not set")
	}

	p, err := NewPostgres(context.Background(), dsn, constants.DefaultStorageTimeout)
	if err != nil {
		t.Fatalf("NewPostgres() error = %v", err)
	}
	defer p.Close()

	for _, key := range []string{constants.InvestmentsKey, constants.TaxCalcsKey} {
		if _, err := p.pool.Exec(context.Background(), `DELETE FROM kv_entries WHERE name = $1`, key); err != nil {
			t.Fatalf("cleanup error = %v", err)
		}
	}
	exerciseBackend(t, p)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name      string
		cfg       config.StorageConfig
		wantType  string
		wantError bool
	}{
		{"memory", config.StorageConfig{Backend: constants.StorageBackendMemory}, "*storage.Memory", false},
		{"file", config.StorageConfig{Backend: constants.StorageBackendFile, Path: dir}, "*storage.File", false},
		{"sqlite", config.StorageConfig{Backend: constants.StorageBackendSQLite, Path: filepath.Join(dir, "x.db")}, "*storage.SQLite", false},
		{"postgres without dsn", config.StorageConfig{Backend: constants.StorageBackendPostgres}, "", true},
		{"unknown", config.StorageConfig{Backend: "redis"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Open(context.Background(), tt.cfg)
			if tt.wantError {
				if err == nil {
					t.Errorf("Open() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer b.Close()
			if got := typeName(b); got != tt.wantType {
				t.Errorf("Open() type = %s, want %s", got, tt.wantType)
			}
		})
	}
}

func typeName(b Backend) string {
	switch b.(type) {
	case *Memory:
		return "*storage.Memory"
	case *File:
		return "*storage.File"
	case *SQLite:
		return "*storage.SQLite"
	case *Postgres:
		return "*storage.Postgres"
	}
	return "unknown"
}
