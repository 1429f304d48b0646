// Package locale owns the set of console locales, their calendar data, and
// per-request locale resolution.
//
// A locale is always an explicit value: callers resolve a Tag once (from a
// query parameter, a stored user preference, Accept-Language, or the
// configured default) and hand it to the formatter. Nothing in this package
// holds a mutable process-wide "current locale".
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/metacatalog/timefmt/internal/domain"
)

// Tag is a BCP 47 locale identifier in canonical form, e.g. "en-US".
type Tag string

// Supported console locales. Order follows the console's date-picker table.
const (
	ZhCN Tag = "zh-CN"
	EnUS Tag = "en-US"
	FrFR Tag = "fr-FR"
	JaJP Tag = "ja-JP"
	PtBR Tag = "pt-BR"
	EsES Tag = "es-ES"
	RuRU Tag = "ru-RU"
	DeDE Tag = "de-DE"
	NlNL Tag = "nl-NL"
)

// Default is the fallback locale for every unresolved lookup.
const Default = Tag(domain.DefaultLocale)

var supported = []Tag{ZhCN, EnUS, FrFR, JaJP, PtBR, EsES, RuRU, DeDE, NlNL}

// matcherTags lists the supported tags with Default first so that the
// matcher falls back to it.
var matcherTags = func() []Tag {
	tags := []Tag{Default}
	for _, t := range supported {
		if t != Default {
			tags = append(tags, t)
		}
	}
	return tags
}()

var matcher = func() language.Matcher {
	langs := make([]language.Tag, len(matcherTags))
	for i, t := range matcherTags {
		langs[i] = language.MustParse(string(t))
	}
	return language.NewMatcher(langs)
}()

// Supported returns the supported locales.
func Supported() []Tag {
	out := make([]Tag, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether t is one of the supported locales.
func IsSupported(t Tag) bool {
	for _, s := range supported {
		if s == t {
			return true
		}
	}
	return false
}

// Parse canonicalises s ("en_us", "EN-us") and returns it if it names a
// supported locale exactly.
func Parse(s string) (Tag, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if raw == "" {
		return "", fmt.Errorf("%w: empty locale", domain.ErrUnsupportedLocale)
	}
	lt, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLocale, s)
	}
	t := Tag(lt.String())
	if !IsSupported(t) {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLocale, s)
	}
	return t, nil
}

// Match returns the supported locale closest to s, which may be a single
// tag or an Accept-Language list. Unmatched or malformed input yields Default.
func Match(s string) Tag {
	if t, ok := lookup(s); ok {
		return t
	}
	return Default
}

func lookup(s string) (Tag, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return "", false
	}
	prefs, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(prefs) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return "", false
	}
	return matcherTags[idx], true
}

// String returns the tag text.
func (t Tag) String() string {
	return string(t)
}

// Language returns the x/text language tag for t.
func (t Tag) Language() language.Tag {
	lt, err := language.Parse(string(t))
	if err != nil {
		return language.MustParse(string(Default))
	}
	return lt
}
