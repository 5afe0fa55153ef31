package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/banknotify/internal/common"
	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/service"
)

const logColumns = `id, received_at, bank_name, amount, sender_name, account_info,
	original_text, source_id, channel, transaction_type, transaction_status,
	payment_method, verdict, reason, device_number, device_name, created_at`

// SaveLog writes one pipeline decision. A missing ID or creation time is filled in.
func (s *SQLiteStorage) SaveLog(ctx context.Context, entry *model.LogEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLogEntry(entry); err != nil {
		return err
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notification_logs (`+logColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.ReceivedAt.UTC(),
		entry.BankName,
		entry.Amount,
		entry.SenderName,
		entry.AccountInfo,
		entry.OriginalText,
		entry.SourceID,
		string(entry.Channel),
		string(entry.Type),
		string(entry.Status),
		entry.PaymentMethod,
		string(entry.Verdict),
		entry.Reason,
		entry.DeviceNumber,
		entry.DeviceName,
		entry.CreatedAt.UTC(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: log %s", common.ErrDuplicateEntry, entry.ID)
		}
		return fmt.Errorf("failed to save log entry: %w", err)
	}
	return nil
}

// GetLog returns one entry by ID.
func (s *SQLiteStorage) GetLog(ctx context.Context, id string) (*model.LogEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+logColumns+` FROM notification_logs WHERE id = ?`, id)
	entry, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("log %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListLogs returns entries matching filter, newest first.
func (s *SQLiteStorage) ListLogs(ctx context.Context, filter service.LogFilter) ([]model.LogEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	where, args, err := buildLogWhere(filter)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + logColumns + ` FROM notification_logs` + where + ` ORDER BY received_at DESC, created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.LogEntry
	for rows.Next() {
		entry, scanErr := scanLog(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// CountLogs returns how many entries match filter, ignoring its limit and offset.
func (s *SQLiteStorage) CountLogs(ctx context.Context, filter service.LogFilter) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	where, args, err := buildLogWhere(filter)
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notification_logs`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count logs: %w", err)
	}
	return count, nil
}

// DeleteLogsBefore removes entries received before cutoff and reports how many went.
func (s *SQLiteStorage) DeleteLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM notification_logs WHERE received_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old logs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted logs: %w", err)
	}
	return n, nil
}

func buildLogWhere(filter service.LogFilter) (string, []any, error) {
	var clauses []string
	var args []any

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return "", nil, fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, *filter.EndDate, *filter.StartDate)
	}
	if filter.StartDate != nil {
		clauses = append(clauses, "received_at >= ?")
		args = append(args, filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		clauses = append(clauses, "received_at < ?")
		args = append(args, filter.EndDate.UTC())
	}
	if len(filter.Verdicts) > 0 {
		placeholders := make([]string, len(filter.Verdicts))
		for i, v := range filter.Verdicts {
			if err := validateVerdict(v); err != nil {
				return "", nil, err
			}
			placeholders[i] = "?"
			args = append(args, string(v))
		}
		clauses = append(clauses, "verdict IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.SourceID != "" {
		clauses = append(clauses, "source_id = ?")
		args = append(args, filter.SourceID)
	}

	if len(clauses) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (*model.LogEntry, error) {
	var (
		entry                   model.LogEntry
		amount, sender, account sql.NullString
		channel, txType, status string
		verdict                 string
		receivedAt, createdAt   time.Time
	)
	err := row.Scan(
		&entry.ID,
		&receivedAt,
		&entry.BankName,
		&amount,
		&sender,
		&account,
		&entry.OriginalText,
		&entry.SourceID,
		&channel,
		&txType,
		&status,
		&entry.PaymentMethod,
		&verdict,
		&entry.Reason,
		&entry.DeviceNumber,
		&entry.DeviceName,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan log entry: %w", err)
	}

	entry.ReceivedAt = receivedAt
	entry.CreatedAt = createdAt
	entry.Amount = nullable(amount)
	entry.SenderName = nullable(sender)
	entry.AccountInfo = nullable(account)
	entry.Channel = model.Channel(channel)
	entry.Type = model.TransactionType(txType)
	entry.Status = model.TransactionStatus(status)
	entry.Verdict = model.Verdict(verdict)
	return &entry, nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
