package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogConfig selects the level, encoding and destination of service logs.
type LogConfig struct {
	Level       string // debug, info, warn or error
	Format      string // json or text
	ServiceName string
	Environment string
	Output      io.Writer // nil means os.Stdout
}

// redacted is substituted for the value of any attribute whose key contains
// one of redactedKeys, compared case-insensitively.
const redacted = "[REDACTED]"

var redactedKeys = []string{
	"password",
	"secret",
	"_token",
	"authorization",
	"cookie",
	"api_key",
	"apikey",
}

type requestIDKey struct{}

// ParseLevel maps a config level name to a slog level. Unknown names are
// info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds the redacting JSON or text handler described by cfg.
func NewHandler(cfg LogConfig) slog.Handler {
	w := cfg.Output
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level), ReplaceAttr: redact}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// InitLogger installs a NewHandler logger tagged with the service and
// environment as the slog default and returns it.
func InitLogger(cfg LogConfig) *slog.Logger {
	logger := slog.New(NewHandler(cfg)).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
	slog.SetDefault(logger)
	return logger
}

func redact(_ []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	for _, k := range redactedKeys {
		if strings.Contains(key, k) {
			return slog.String(a.Key, redacted)
		}
	}
	return a
}

// WithRequestID returns a copy of ctx carrying id for log correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID stored by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggerFromContext is Correlate applied to the default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return Correlate(ctx, slog.Default())
}

// Correlate adds request_id and trace_id attributes to logger for whichever
// of the two ctx carries.
func Correlate(ctx context.Context, logger *slog.Logger) *slog.Logger {
	var attrs []any
	if id := RequestIDFromContext(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	if id := TraceIDFromContext(ctx); id != "" {
		attrs = append(attrs, slog.String("trace_id", id))
	}
	if len(attrs) == 0 {
		return logger
	}
	return logger.With(attrs...)
}
