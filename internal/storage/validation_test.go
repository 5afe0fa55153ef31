package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/banknotify/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{
			name:      "valid string",
			str:       "test",
			paramName: "param",
			wantErr:   false,
		},
		{
			name:      "empty string",
			str:       "",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			str:       "   ",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "string with spaces",
			str:       "  test  ",
			paramName: "param",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should contain param name %s, got %v", tt.paramName, err)
			}
		})
	}
}

func TestValidateVerdict(t *testing.T) {
	for _, v := range []model.Verdict{
		model.VerdictEmit, model.VerdictDuplicate, model.VerdictInternal,
		model.VerdictIgnored, model.VerdictDropped, model.VerdictFiltered,
	} {
		if err := validateVerdict(v); err != nil {
			t.Errorf("validateVerdict(%q) error = %v", v, err)
		}
	}

	for _, v := range []model.Verdict{"", "EMIT", "sent"} {
		if err := validateVerdict(v); !errors.Is(err, ErrInvalidVerdict) {
			t.Errorf("validateVerdict(%q) error = %v, want ErrInvalidVerdict", v, err)
		}
	}
}

func TestValidateLogEntry(t *testing.T) {
	valid := func() *model.LogEntry {
		return &model.LogEntry{
			ReceivedAt: time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC),
			SourceID:   "com.kbstar.kbbank",
			BankName:   "KB국민은행",
			Verdict:    model.VerdictEmit,
		}
	}

	tests := []struct {
		entry   *model.LogEntry
		wantErr error
		name    string
		errMsg  string
	}{
		{
			name:  "valid entry",
			entry: valid(),
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrNilParameter,
		},
		{
			name: "missing received time",
			entry: func() *model.LogEntry {
				e := valid()
				e.ReceivedAt = time.Time{}
				return e
			}(),
			wantErr: ErrInvalidLogEntry,
			errMsg:  "received time",
		},
		{
			name: "blank source",
			entry: func() *model.LogEntry {
				e := valid()
				e.SourceID = "  "
				return e
			}(),
			wantErr: ErrInvalidLogEntry,
			errMsg:  "source",
		},
		{
			name: "missing bank name",
			entry: func() *model.LogEntry {
				e := valid()
				e.BankName = ""
				return e
			}(),
			wantErr: ErrInvalidLogEntry,
			errMsg:  "bank name",
		},
		{
			name: "unknown verdict",
			entry: func() *model.LogEntry {
				e := valid()
				e.Verdict = "later"
				return e
			}(),
			wantErr: ErrInvalidVerdict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLogEntry(tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateLogEntry() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateLogEntry() error = %v, want %v", err, tt.wantErr)
			}
			if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("validateLogEntry() error should contain %s, got %v", tt.errMsg, err)
			}
		})
	}
}
