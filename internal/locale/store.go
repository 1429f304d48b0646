package locale

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/metacatalog/timefmt/internal/domain"
	redisclient "github.com/metacatalog/timefmt/internal/redis"
)

// Redis key prefixes. Key patterns: locale_pref:{userID} holds the stored
// locale, locale_pref_writes:{userID} counts writes in the current window.
const (
	preferenceKeyPrefix = "locale_pref:"
	writeCountKeyPrefix = "locale_pref_writes:"
)

// writeLimitScript increments a counter and starts its TTL on the first
// increment only, so the window is fixed from the first write.
const writeLimitScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

var tracer = otel.Tracer("github.com/metacatalog/timefmt/internal/locale")

// PreferenceStore persists each user's selected console language in Redis.
// Entries expire after domain.LocalePreferenceTTL without a write.
// Each user may write at most domain.PreferenceWriteLimit times per
// domain.PreferenceWriteWindow.
type PreferenceStore struct {
	cmd         redisclient.Cmdable
	ttl         time.Duration
	writeLimit  int
	writeWindow time.Duration
}

// NewPreferenceStore creates a PreferenceStore that uses cmd for Redis operations.
func NewPreferenceStore(cmd redisclient.Cmdable) *PreferenceStore {
	return &PreferenceStore{
		cmd:         cmd,
		ttl:         domain.LocalePreferenceTTL,
		writeLimit:  domain.PreferenceWriteLimit,
		writeWindow: domain.PreferenceWriteWindow,
	}
}

// Set stores tag as the preference of userID. tag must be supported.
// Writes past the per-user limit fail with domain.ErrRateLimited.
func (s *PreferenceStore) Set(ctx context.Context, userID string, tag Tag) error {
	ctx, span := tracer.Start(ctx, "redis.locale_pref.set")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "redis"),
		attribute.String("db.operation", "SET"),
	)

	if err := validateUserID(userID); err != nil {
		return err
	}
	if !IsSupported(tag) {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedLocale, tag)
	}
	if err := s.allowWrite(ctx, userID); err != nil {
		span.RecordError(err)
		return err
	}

	if err := s.cmd.Set(ctx, preferenceKeyPrefix+userID, string(tag), s.ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("store locale preference for %q: %w: %w", userID, domain.ErrUnavailable, err)
	}
	return nil
}

// Get returns the stored preference of userID, or domain.ErrNotFound.
// A stored value that is no longer supported is reported as not found.
func (s *PreferenceStore) Get(ctx context.Context, userID string) (Tag, error) {
	ctx, span := tracer.Start(ctx, "redis.locale_pref.get")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "redis"),
		attribute.String("db.operation", "GET"),
	)

	if err := validateUserID(userID); err != nil {
		return "", err
	}

	val, err := s.cmd.Get(ctx, preferenceKeyPrefix+userID).Result()
	if errors.Is(err, redisclient.Nil) {
		return "", fmt.Errorf("locale preference for %q: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("load locale preference for %q: %w: %w", userID, domain.ErrUnavailable, err)
	}

	tag, err := Parse(val)
	if err != nil {
		return "", fmt.Errorf("locale preference for %q: %w", userID, domain.ErrNotFound)
	}
	return tag, nil
}

// Delete removes the stored preference of userID. Deleting an absent
// preference succeeds.
func (s *PreferenceStore) Delete(ctx context.Context, userID string) error {
	ctx, span := tracer.Start(ctx, "redis.locale_pref.delete")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "redis"),
		attribute.String("db.operation", "DEL"),
	)

	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := s.cmd.Del(ctx, preferenceKeyPrefix+userID).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("delete locale preference for %q: %w: %w", userID, domain.ErrUnavailable, err)
	}
	return nil
}

// allowWrite counts one write for userID. A Redis failure denies the write.
func (s *PreferenceStore) allowWrite(ctx context.Context, userID string) error {
	window := int(s.writeWindow / time.Second)
	count, err := s.cmd.Eval(ctx, writeLimitScript, []string{writeCountKeyPrefix + userID}, window).Int64()
	if err != nil {
		return fmt.Errorf("count locale preference writes for %q: %w: %w", userID, domain.ErrUnavailable, err)
	}
	if count > int64(s.writeLimit) {
		return fmt.Errorf("%w: %d locale changes within %s", domain.ErrRateLimited, s.writeLimit, s.writeWindow)
	}
	return nil
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: empty user ID", domain.ErrInvalidInput)
	}
	if len(userID) > domain.MaxUserIDLength {
		return fmt.Errorf("%w: user ID exceeds %d bytes", domain.ErrInvalidInput, domain.MaxUserIDLength)
	}
	return nil
}
