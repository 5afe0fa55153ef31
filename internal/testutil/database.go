// Package testutil provides shared test helpers: a migrated in-memory verdict
// log and builders for notifications and log entries.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/service"
	"github.com/Veraticus/banknotify/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	Seed           []model.LogEntry
	SkipMigrations bool
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database with custom options.
//
// Example:
//
//	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
//		Seed: []model.LogEntry{testutil.LogEntry(model.VerdictEmit, "50,000원")},
//	})
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	for i := range opts.Seed {
		if err := store.SaveLog(ctx, &opts.Seed[i]); err != nil {
			t.Fatalf("failed to seed log entry %d: %v", i, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustListLogs returns every stored entry, newest first, or fails the test.
func (db *TestDB) MustListLogs(filter service.LogFilter) []model.LogEntry {
	db.t.Helper()
	entries, err := db.Storage.ListLogs(context.Background(), filter)
	if err != nil {
		db.t.Fatalf("failed to list logs: %v", err)
	}
	return entries
}
