package locale

import (
	"context"
	"log/slog"

	"github.com/metacatalog/timefmt/internal/domain"
)

// Source names where a resolved locale came from.
type Source string

const (
	SourceExplicit       Source = "explicit"
	SourcePreference     Source = "preference"
	SourceAcceptLanguage Source = "accept-language"
	SourceDefault        Source = "default"
)

// PreferenceReader looks up a user's stored locale.
type PreferenceReader interface {
	Get(ctx context.Context, userID string) (Tag, error)
}

// Request carries every locale hint available for one call.
type Request struct {
	Explicit       string // e.g. ?locale=
	UserID         string
	AcceptLanguage string
}

// Resolver picks one locale per request: explicit → stored preference →
// Accept-Language → configured default. The resolved tag is then passed
// down explicitly; nothing is cached between requests.
type Resolver struct {
	prefs    PreferenceReader
	fallback Tag
	logger   *slog.Logger
}

// NewResolver creates a Resolver. prefs may be nil when no preference store
// is configured. An unsupported fallback is replaced by Default.
func NewResolver(prefs PreferenceReader, fallback Tag, logger *slog.Logger) *Resolver {
	if !IsSupported(fallback) {
		fallback = Default
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{prefs: prefs, fallback: fallback, logger: logger}
}

// Fallback returns the configured default locale.
func (r *Resolver) Fallback() Tag {
	return r.fallback
}

// Resolve returns the locale for req. Only an explicit but unsupported
// locale is an error; preference-store failures fall through to the next
// source.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Tag, Source, error) {
	if req.Explicit != "" {
		tag, err := Parse(req.Explicit)
		if err != nil {
			return "", "", err
		}
		return tag, SourceExplicit, nil
	}

	if req.UserID != "" && r.prefs != nil {
		tag, err := r.prefs.Get(ctx, req.UserID)
		switch {
		case err == nil:
			return tag, SourcePreference, nil
		case domain.IsNotFound(err):
		default:
			r.logger.WarnContext(ctx, "locale preference lookup failed, falling back",
				slog.String("user_id", req.UserID),
				slog.String("error", err.Error()),
			)
		}
	}

	if tag, ok := lookup(req.AcceptLanguage); ok {
		return tag, SourceAcceptLanguage, nil
	}

	return r.fallback, SourceDefault, nil
}
