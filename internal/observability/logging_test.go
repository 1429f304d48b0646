package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/metacatalog/timefmt/internal/observability"
)

func TestNewHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(observability.NewHandler(observability.LogConfig{Output: &buf}))

	logger.Info("preference write",
		"redis_password", "hunter2",
		"password", "mysecret",
		"api_key", "secret123",
		"session_token", "tok123",
		"authorization", "Bearer xyz",
		"Cookie", "sid=abc",
		"user_id", "user123",
		"locale", "de-DE",
		"pattern", "yyyy-MM-dd",
		"error", "store down",
		slog.Group("redis", slog.String("password", "nested")),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	for _, key := range []string{"redis_password", "password", "api_key", "session_token", "authorization", "Cookie"} {
		assert.Equal(t, "[REDACTED]", entry[key], key)
	}
	assert.Equal(t, map[string]any{"password": "[REDACTED]"}, entry["redis"])

	assert.Equal(t, "user123", entry["user_id"])
	assert.Equal(t, "de-DE", entry["locale"])
	assert.Equal(t, "yyyy-MM-dd", entry["pattern"])
	assert.Equal(t, "store down", entry["error"])
	for _, secret := range []string{"hunter2", "mysecret", "secret123", "tok123", "xyz", "sid=abc", "nested"} {
		assert.NotContains(t, buf.String(), secret)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, observability.ParseLevel(tt.in))
		})
	}
}

func TestInitLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("adds service context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := observability.InitLogger(observability.LogConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "timefmtd",
			Environment: "test",
			Output:      &buf,
		})

		logger.Info("hello", "redis_password", "hunter2")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "timefmtd", entry["service"])
		assert.Equal(t, "test", entry["environment"])
		assert.Equal(t, "[REDACTED]", entry["redis_password"])
	})

	t.Run("respects log level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := observability.InitLogger(observability.LogConfig{
			Level:  "error",
			Format: "text",
			Output: &buf,
		})

		logger.Info("dropped")
		logger.Error("kept")

		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})
}

func TestLoggerFromContext(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "test-span")
	defer span.End()
	ctx = observability.WithRequestID(ctx, "req-1")

	observability.LoggerFromContext(ctx).Info("served")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, observability.TraceIDFromContext(ctx), entry["trace_id"])
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	assert.Empty(t, observability.RequestIDFromContext(context.Background()))
}

func TestCorrelate_NothingToAdd(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	assert.Same(t, logger, observability.Correlate(context.Background(), logger))
}

func TestNewHandler_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(observability.NewHandler(observability.LogConfig{Format: "TEXT", Level: "debug", Output: &buf}))

	logger.Debug("parsed", "pattern", "yyyy-MM-dd", "api_key", "k-1")

	assert.Contains(t, buf.String(), "pattern=yyyy-MM-dd")
	assert.Contains(t, buf.String(), "api_key=[REDACTED]")
}
