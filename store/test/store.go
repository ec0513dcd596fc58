// Package test provides store fixtures backed by a throwaway SQLite database.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hrygo/coderev/internal/profile"
	"github.com/hrygo/coderev/store"
	"github.com/hrygo/coderev/store/db/sqlite"
)

// NewTestingStore creates a migrated Store over a fresh SQLite database in a
// per-test temp directory. The store is closed on test cleanup.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	t.Helper()

	p := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		Data:   t.TempDir(),
	}
	p.DSN = filepath.Join(p.Data, "coderev_test.db")

	driver, err := sqlite.NewDB(p)
	if err != nil {
		t.Fatalf("failed to create test db driver: %v", err)
	}

	ts := store.New(driver, p)
	if err := ts.Migrate(ctx); err != nil {
		_ = ts.Close()
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() { _ = ts.Close() })
	return ts
}
