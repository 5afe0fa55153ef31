package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/service"
)

// Summarize builds the settlement report for entries received in [start, end).
func (s *SQLiteStorage) Summarize(ctx context.Context, start, end time.Time) (*service.Summary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, end, start)
	}

	summary := &service.Summary{
		DateRange:    service.DateRange{Start: start, End: end},
		ByTypeStatus: make(map[service.StatusKey]service.Bucket),
		ByMethod:     make(map[service.MethodKey]service.Bucket),
		ByDevice:     make(map[string]service.Bucket),
		Suppressed:   make(map[model.Verdict]int),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT transaction_type, transaction_status, payment_method, amount,
			device_number, device_name
		FROM notification_logs
		WHERE verdict = ? AND received_at >= ? AND received_at < ?
	`, string(model.VerdictEmit), start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query settlement entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			txType, status, method string
			amount                 sql.NullString
			device                 model.Device
		)
		if err := rows.Scan(&txType, &status, &method, &amount, &device.Number, &device.Name); err != nil {
			return nil, fmt.Errorf("failed to scan settlement entry: %w", err)
		}

		value := model.ParseAmount(nullable(amount))
		key := service.StatusKey{Type: model.TransactionType(txType), Status: model.TransactionStatus(status)}
		summary.ByTypeStatus[key] = summary.ByTypeStatus[key].Add(value)

		if key.Status != model.StatusNormal {
			continue
		}
		mk := service.MethodKey{Type: key.Type, Method: method}
		summary.ByMethod[mk] = summary.ByMethod[mk].Add(value)
		label := device.Label()
		summary.ByDevice[label] = summary.ByDevice[label].Add(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settlement entries: %w", err)
	}

	counts, err := s.db.QueryContext(ctx, `
		SELECT verdict, COUNT(*)
		FROM notification_logs
		WHERE verdict != ? AND received_at >= ? AND received_at < ?
		GROUP BY verdict
	`, string(model.VerdictEmit), start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to count suppressed entries: %w", err)
	}
	defer func() { _ = counts.Close() }()

	for counts.Next() {
		var verdict string
		var n int
		if err := counts.Scan(&verdict, &n); err != nil {
			return nil, fmt.Errorf("failed to scan suppressed count: %w", err)
		}
		summary.Suppressed[model.Verdict(verdict)] = n
	}

	return summary, counts.Err()
}
