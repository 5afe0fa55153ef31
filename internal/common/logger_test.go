package common

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", want: slog.LevelDebug},
		{name: "INFO", want: slog.LevelInfo},
		{name: "", want: slog.LevelInfo},
		{name: "warning", want: slog.LevelWarn},
		{name: " error ", want: slog.LevelError},
		{name: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("json output honours level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "warn", "json")
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown", "source", "com.kbstar.kbbank")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "shown", line["msg"])
		assert.Equal(t, "com.kbstar.kbbank", line["source"])
	})

	t.Run("console output", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "debug", "console")
		require.NoError(t, err)

		logger.Debug("dropped", "reason", "duplicate")
		assert.Contains(t, buf.String(), "msg=dropped")
		assert.Contains(t, buf.String(), "reason=duplicate")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewLogger(&bytes.Buffer{}, "info", "xml")
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestLogHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "debug", "json")
	require.NoError(t, err)

	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })

	LogError(ErrDatabaseBusy, "write failed", Fields{"table": "notification_log"})
	assert.Contains(t, buf.String(), `"error":"database busy"`)
	assert.Contains(t, buf.String(), `"table":"notification_log"`)

	buf.Reset()
	LogWarn("retrying", Fields{"attempt": 1})
	assert.Contains(t, buf.String(), `"level":"WARN"`)

	buf.Reset()
	LogDebug("skipped", nil)
	assert.Contains(t, buf.String(), `"msg":"skipped"`)
}
