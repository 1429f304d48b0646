package httpapi

import (
	"fmt"
	"net/http"

	"github.com/metacatalog/timefmt/internal/datetime"
	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/locale"
)

// renderOptional serves routes that format an optional ?ts= instant.
func (h *Handler) renderOptional(w http.ResponseWriter, r *http.Request, render func(*datetime.Formatter, *int64) string) error {
	ts, err := optionalInt(r, "ts")
	if err != nil {
		return err
	}
	f, err := h.formatter(w, r)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, valueResponse{Value: render(f, ts), Locale: f.Locale().String()})
	return nil
}

func (h *Handler) formatDateTime(w http.ResponseWriter, r *http.Request) error {
	return h.renderOptional(w, r, (*datetime.Formatter).FormatDateTime)
}

func (h *Handler) formatDate(w http.ResponseWriter, r *http.Request) error {
	return h.renderOptional(w, r, (*datetime.Formatter).FormatDate)
}

func (h *Handler) formatZoned(w http.ResponseWriter, r *http.Request) error {
	return h.renderOptional(w, r, (*datetime.Formatter).FormatDateTimeWithTimezone)
}

func (h *Handler) formatCustom(w http.ResponseWriter, r *http.Request) error {
	pattern := r.URL.Query().Get("pattern")
	return h.renderOptional(w, r, func(f *datetime.Formatter, ts *int64) string {
		return f.CustomFormatDateTime(ts, pattern)
	})
}

func (h *Handler) relative(w http.ResponseWriter, r *http.Request) error {
	return h.renderOptional(w, r, (*datetime.Formatter).RelativeTime)
}

// formatLong always renders en-US, so no locale is resolved.
func (h *Handler) formatLong(w http.ResponseWriter, r *http.Request) error {
	ts, err := requiredInt(r, "ts")
	if err != nil {
		return err
	}
	s, err := h.base.FormatDateTimeLong(ts, r.URL.Query().Get("pattern"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, valueResponse{Value: s, Locale: locale.EnUS.String()})
	return nil
}

func (h *Handler) timeZone(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, valueResponse{Value: h.base.TimeZone()})
	return nil
}

func (h *Handler) relativeCalendar(w http.ResponseWriter, r *http.Request) error {
	ts, err := requiredInt(r, "ts")
	if err != nil {
		return err
	}
	if !domain.ValidMillis(ts) {
		return fmt.Errorf("%w: ts %d", domain.ErrInvalidInstant, ts)
	}
	base, err := optionalInt(r, "base")
	if err != nil {
		return err
	}
	if base != nil && !domain.ValidMillis(*base) {
		return fmt.Errorf("%w: base %d", domain.ErrInvalidInstant, *base)
	}
	f, err := h.formatter(w, r)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, valueResponse{Value: f.RelativeCalendar(ts, base), Locale: f.Locale().String()})
	return nil
}

func (h *Handler) validatePattern(w http.ResponseWriter, r *http.Request) error {
	f, err := h.formatter(w, r)
	if err != nil {
		return err
	}
	body := struct {
		Value  bool   `json:"value"`
		Reason string `json:"reason,omitempty"`
	}{Value: true}
	if err := f.ValidateDateFormat(r.URL.Query().Get("pattern")); err != nil {
		body.Value = false
		body.Reason = err.Error()
	}
	writeJSON(w, http.StatusOK, body)
	return nil
}

func (h *Handler) parsePattern(w http.ResponseWriter, r *http.Request) error {
	f, err := h.formatter(w, r)
	if err != nil {
		return err
	}
	q := r.URL.Query()
	ms, err := f.Parse(q.Get("value"), q.Get("pattern"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, valueResponse{Value: ms, Locale: f.Locale().String()})
	return nil
}

func (h *Handler) locales(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, struct {
		Value   []locale.Tag `json:"value"`
		Default locale.Tag   `json:"default"`
	}{Value: locale.Supported(), Default: h.resolver.Fallback()})
	return nil
}
