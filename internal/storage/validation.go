// Package storage provides the SQLite-backed verdict log.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/banknotify/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidVerdict   = errors.New("invalid verdict")
	ErrInvalidLogEntry  = errors.New("invalid log entry")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateVerdict(v model.Verdict) error {
	switch v {
	case model.VerdictEmit,
		model.VerdictDuplicate,
		model.VerdictInternal,
		model.VerdictIgnored,
		model.VerdictDropped,
		model.VerdictFiltered:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidVerdict, v)
	}
}

// validateLogEntry validates a log entry before it is written.
func validateLogEntry(entry *model.LogEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if entry.ReceivedAt.IsZero() {
		return fmt.Errorf("%w: missing received time", ErrInvalidLogEntry)
	}
	if strings.TrimSpace(entry.SourceID) == "" {
		return fmt.Errorf("%w: missing source", ErrInvalidLogEntry)
	}
	if strings.TrimSpace(entry.BankName) == "" {
		return fmt.Errorf("%w: missing bank name", ErrInvalidLogEntry)
	}
	if err := validateVerdict(entry.Verdict); err != nil {
		return err
	}
	return nil
}
