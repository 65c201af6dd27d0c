package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/telecom-billing/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  slog.Level
		known bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := logger.ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	l, err := logger.Setup(logger.LoggerConfig{Level: "warn", Output: buf})
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("hidden")
	slog.Warn("visible", "phone", "masked")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1, "info must be filtered at warn level")
	assert.Equal(t, "visible", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
}

func TestContextLogger(t *testing.T) {
	buf, l := logger.NewTestLogger(slog.LevelDebug)
	fallback := slog.New(slog.NewJSONHandler(&logger.TestLogBuffer{}, nil))

	t.Run("empty context yields fallback", func(t *testing.T) {
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
		assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
	})

	t.Run("stored logger wins", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), l.With("correlation_id", "abc"))
		logger.FromContextOrDefault(ctx, fallback).Debug("from context")

		logger.AssertLogContains(t, buf, "from context")
		logger.AssertLogContains(t, buf, `"correlation_id":"abc"`)
	})
}
