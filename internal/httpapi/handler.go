// Package httpapi exposes the formatter to the console over HTTP. Every
// request resolves its locale once (query, stored preference,
// Accept-Language, default) and renders through a Formatter bound to it.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/metacatalog/timefmt/internal/datetime"
	"github.com/metacatalog/timefmt/internal/kpi"
	"github.com/metacatalog/timefmt/internal/locale"
	"github.com/metacatalog/timefmt/internal/observability"
)

// Header names read by the API.
const (
	HeaderUserID    = "X-User-ID"
	HeaderRequestID = "X-Request-ID"
)

// PreferenceStore persists per-user locales.
type PreferenceStore interface {
	Set(ctx context.Context, userID string, tag locale.Tag) error
	Get(ctx context.Context, userID string) (locale.Tag, error)
	Delete(ctx context.Context, userID string) error
}

// Config holds the Handler's collaborators.
type Config struct {
	Formatter *datetime.Formatter
	Resolver  *locale.Resolver
	// Preferences may be nil; the preference routes then answer 503.
	Preferences PreferenceStore
	Logger      *slog.Logger
}

// Handler serves the /v1 routes.
type Handler struct {
	base     *datetime.Formatter
	resolver *locale.Resolver
	prefs    PreferenceStore
	planner  *kpi.Planner
	metrics  *observability.RequestMetrics
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a Handler. Request instruments bind to the global meter
// provider, so call it after telemetry is initialized.
func New(cfg Config) (*Handler, error) {
	if cfg.Formatter == nil {
		return nil, fmt.Errorf("httpapi: formatter is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = locale.NewResolver(cfg.Preferences, cfg.Formatter.Locale(), logger)
	}
	metrics, err := observability.NewRequestMetrics("github.com/metacatalog/timefmt/internal/httpapi")
	if err != nil {
		return nil, fmt.Errorf("httpapi: %w", err)
	}

	return &Handler{
		base:     cfg.Formatter,
		resolver: resolver,
		prefs:    cfg.Preferences,
		planner:  kpi.NewPlanner(cfg.Formatter),
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}, nil
}

// Register adds every route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	routes := []struct {
		pattern string
		handle  func(http.ResponseWriter, *http.Request) error
	}{
		{"GET /v1/format/datetime", h.formatDateTime},
		{"GET /v1/format/date", h.formatDate},
		{"GET /v1/format/zoned", h.formatZoned},
		{"GET /v1/format/long", h.formatLong},
		{"GET /v1/format/custom", h.formatCustom},
		{"GET /v1/format/timezone", h.timeZone},
		{"GET /v1/relative", h.relative},
		{"GET /v1/relative/calendar", h.relativeCalendar},
		{"GET /v1/duration", h.duration},
		{"GET /v1/duration/clock", h.durationClock},
		{"GET /v1/duration/human", h.durationHuman},
		{"GET /v1/interval", h.interval},
		{"GET /v1/days/remaining", h.daysRemaining},
		{"GET /v1/days/bounds", h.dayBounds},
		{"GET /v1/days/offset", h.dayOffset},
		{"GET /v1/pattern/validate", h.validatePattern},
		{"GET /v1/pattern/parse", h.parsePattern},
		{"GET /v1/now", h.now},
		{"GET /v1/locales", h.locales},
		{"GET /v1/preferences/locale", h.getPreference},
		{"PUT /v1/preferences/locale", h.putPreference},
		{"DELETE /v1/preferences/locale", h.deletePreference},
		{"POST /v1/kpi/window", h.kpiWindow},
		{"POST /v1/kpi/validate", h.kpiValidate},
	}
	for _, rt := range routes {
		mux.Handle(rt.pattern, h.instrument(rt.pattern, rt.handle))
	}
}

// formatter resolves the request's locale and returns the base formatter
// bound to it. The resolved tag is echoed in Content-Language.
func (h *Handler) formatter(w http.ResponseWriter, r *http.Request) (*datetime.Formatter, error) {
	tag, source, err := h.resolver.Resolve(r.Context(), locale.Request{
		Explicit:       r.URL.Query().Get("locale"),
		UserID:         r.Header.Get(HeaderUserID),
		AcceptLanguage: r.Header.Get("Accept-Language"),
	})
	if err != nil {
		return nil, err
	}
	observability.LoggerFromContext(r.Context()).DebugContext(r.Context(), "locale resolved",
		slog.String("locale", tag.String()),
		slog.String("source", string(source)),
	)
	w.Header().Set("Content-Language", tag.String())
	return h.base.WithLocale(tag), nil
}
