// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/banknotify/internal/model"
)

// LogFilter defines filtering options for verdict log queries.
type LogFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Verdicts  []model.Verdict
	SourceID  string
	Limit     int
	Offset    int
}

// Recorder persists pipeline decisions. The pipeline only needs this much.
type Recorder interface {
	SaveLog(ctx context.Context, entry *model.LogEntry) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	Recorder

	// Verdict log operations
	GetLog(ctx context.Context, id string) (*model.LogEntry, error)
	ListLogs(ctx context.Context, filter LogFilter) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, filter LogFilter) (int, error)
	DeleteLogsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Reporting
	Summarize(ctx context.Context, start, end time.Time) (*Summary, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// DateRange represents a time period with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Bucket is a count and won total for one group of log entries.
type Bucket struct {
	Total decimal.Decimal
	Count int
}

// Add folds one amount into the bucket.
func (b Bucket) Add(amount decimal.Decimal) Bucket {
	return Bucket{Count: b.Count + 1, Total: b.Total.Add(amount)}
}

// MethodKey groups NORMAL entries by type and payment method.
type MethodKey struct {
	Method string
	Type   model.TransactionType
}

// StatusKey groups entries by type and status.
type StatusKey struct {
	Type   model.TransactionType
	Status model.TransactionStatus
}

// Summary is the settlement report over the emitted entries in a range.
// Method and device breakdowns cover NORMAL entries only; Suppressed counts
// every other verdict.
type Summary struct {
	DateRange    DateRange
	ByTypeStatus map[StatusKey]Bucket
	ByMethod     map[MethodKey]Bucket
	ByDevice     map[string]Bucket
	Suppressed   map[model.Verdict]int
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
