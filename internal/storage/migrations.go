package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/banknotify/internal/common"
)

// ExpectedSchemaVersion is the notification_logs schema this build reads and writes.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS notification_logs (
					id TEXT PRIMARY KEY,
					received_at DATETIME NOT NULL,
					bank_name TEXT NOT NULL,
					amount TEXT,
					sender_name TEXT,
					account_info TEXT,
					original_text TEXT NOT NULL,
					source_id TEXT NOT NULL,
					channel TEXT NOT NULL DEFAULT '알림',
					transaction_type TEXT NOT NULL DEFAULT 'UNKNOWN',
					transaction_status TEXT NOT NULL DEFAULT 'NORMAL',
					payment_method TEXT NOT NULL DEFAULT '',
					verdict TEXT NOT NULL,
					reason TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_logs_received_at ON notification_logs(received_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add device columns and verdict index",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE notification_logs ADD COLUMN device_number INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE notification_logs ADD COLUMN device_name TEXT NOT NULL DEFAULT ''`,
				`CREATE INDEX idx_logs_verdict ON notification_logs(verdict, received_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if currentVersion > ExpectedSchemaVersion {
		return fmt.Errorf("%w: %s is at version %d, expected %d",
			common.ErrSchemaTooNew, s.dbPath, currentVersion, ExpectedSchemaVersion)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		common.LogDebug("Applied migration", common.Fields{
			"version":     migration.Version,
			"description": migration.Description,
		})
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion reads the schema version recorded in PRAGMA user_version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
