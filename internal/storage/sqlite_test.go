package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/banknotify/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

var testBase = time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)

// Helper function to create a test log entry.
func makeTestEntry(offset time.Duration, verdict model.Verdict, amount string) *model.LogEntry {
	return &model.LogEntry{
		ReceivedAt:    testBase.Add(offset),
		BankName:      "KB국민은행",
		SourceID:      "com.kbstar.kbbank",
		OriginalText:  "입금 " + amount + " 김철수",
		Amount:        model.Optional(amount),
		SenderName:    model.Optional("김철수"),
		Channel:       model.ChannelPush,
		Type:          model.TypeDeposit,
		Status:        model.StatusNormal,
		PaymentMethod: model.MethodBankTransfer,
		Verdict:       verdict,
		DeviceNumber:  1,
	}
}

func TestNewSQLiteStorage(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "file in nested directory", path: filepath.Join(t.TempDir(), "a", "b", "logs.db")},
		{name: "in memory", path: ":memory:"},
		{name: "empty path", path: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewSQLiteStorage(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrEmptyString) {
					t.Errorf("NewSQLiteStorage() error = %v, want ErrEmptyString", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSQLiteStorage() error = %v", err)
			}
			defer func() { _ = store.Close() }()

			if store.Path() != tt.path {
				t.Errorf("Path() = %q, want %q", store.Path(), tt.path)
			}
		})
	}
}

func TestSQLiteStorage_NilContext(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	//nolint:staticcheck // Testing nil context handling
	if err := store.SaveLog(nil, makeTestEntry(0, model.VerdictEmit, "1,000원")); !errors.Is(err, ErrNilContext) {
		t.Errorf("SaveLog(nil) error = %v, want ErrNilContext", err)
	}
	//nolint:staticcheck // Testing nil context handling
	if err := store.Migrate(nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("Migrate(nil) error = %v, want ErrNilContext", err)
	}
}
