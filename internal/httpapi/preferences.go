package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/locale"
	"github.com/metacatalog/timefmt/internal/observability"
)

type preferenceBody struct {
	Locale string `json:"locale" validate:"required"`
}

// preferenceUser returns the caller's user ID, failing when the header is
// missing or no store is configured.
func (h *Handler) preferenceUser(r *http.Request) (string, error) {
	if h.prefs == nil {
		return "", fmt.Errorf("%w: locale preferences are not configured", domain.ErrUnavailable)
	}
	userID := r.Header.Get(HeaderUserID)
	if userID == "" {
		return "", fmt.Errorf("%w: %s header is required", domain.ErrInvalidInput, HeaderUserID)
	}
	return userID, nil
}

func (h *Handler) getPreference(w http.ResponseWriter, r *http.Request) error {
	userID, err := h.preferenceUser(r)
	if err != nil {
		return err
	}
	tag, err := h.prefs.Get(r.Context(), userID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, valueResponse{Value: tag})
	return nil
}

func (h *Handler) putPreference(w http.ResponseWriter, r *http.Request) error {
	userID, err := h.preferenceUser(r)
	if err != nil {
		return err
	}
	var body preferenceBody
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	if err := h.validate.Struct(body); err != nil {
		return fmt.Errorf("%w: locale %s", domain.ErrInvalidInput, validationTag(err))
	}
	tag, err := locale.Parse(body.Locale)
	if err != nil {
		return err
	}
	if err := h.prefs.Set(r.Context(), userID, tag); err != nil {
		return err
	}
	observability.LoggerFromContext(r.Context()).InfoContext(r.Context(), "locale preference stored",
		slog.String("user_id", userID),
		slog.String("locale", tag.String()),
	)
	writeJSON(w, http.StatusOK, valueResponse{Value: tag})
	return nil
}

func (h *Handler) deletePreference(w http.ResponseWriter, r *http.Request) error {
	userID, err := h.preferenceUser(r)
	if err != nil {
		return err
	}
	if err := h.prefs.Delete(r.Context(), userID); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
