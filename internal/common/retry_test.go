package common

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/banknotify/internal/service"
)

func fastRetry() service.RetryOptions {
	return service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 2}
}

func TestWithRetry(t *testing.T) {
	errPermanent := errors.New("constraint failed")

	tests := []struct {
		failures  []error
		wantErr   error
		name      string
		wantCalls int
	}{
		{name: "succeeds first time", wantCalls: 1},
		{name: "busy then ok", failures: []error{ErrDatabaseBusy}, wantCalls: 2},
		{name: "locked message then ok", failures: []error{errors.New("database is locked")}, wantCalls: 2},
		{name: "permanent error", failures: []error{errPermanent}, wantCalls: 1, wantErr: errPermanent},
		{name: "exhausted", failures: []error{ErrDatabaseBusy, ErrDatabaseBusy, ErrDatabaseBusy}, wantCalls: 3, wantErr: ErrMaxRetries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			}, fastRetry())

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := fastRetry()
	opts.InitialDelay = time.Hour
	opts.MaxDelay = time.Hour
	err := WithRetry(ctx, func() error { return ErrDatabaseBusy }, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(fmt.Errorf("save: %w", ErrDatabaseBusy)))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
	assert.False(t, IsRetryable(ErrNotFound))
}

func TestUserError(t *testing.T) {
	err := NewUserError("could not open database", ErrDatabaseCorrupted)
	assert.Equal(t, "could not open database: database corrupted", err.Error())
	assert.ErrorIs(t, err, ErrDatabaseCorrupted)

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "could not open database", userErr.UserMessage)
}
