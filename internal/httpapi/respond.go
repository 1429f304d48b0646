package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/errmap"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// valueResponse is the envelope of every formatting route.
type valueResponse struct {
	Value  any    `json:"value"`
	Locale string `json:"locale,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	httpErr := errmap.ToHTTPError(err)
	if domain.IsRetryable(err) {
		w.Header().Set("Retry-After", retryAfter(err))
	}
	writeJSON(w, httpErr.StatusCode, httpErr)
}

// retryAfter is the Retry-After value in seconds for a retryable err.
func retryAfter(err error) string {
	if errors.Is(err, domain.ErrRateLimited) {
		return strconv.Itoa(int(domain.PreferenceWriteWindow / time.Second))
	}
	return "1"
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: decode body: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}

// optionalInt reads an int64 query parameter; absent or empty is nil.
func optionalInt(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: %s out of range", domain.ErrInvalidInstant, name)
		}
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, name)
	}
	return &v, nil
}

// requiredInt is optionalInt that rejects an absent parameter.
func requiredInt(r *http.Request, name string) (int64, error) {
	v, err := optionalInt(r, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
	}
	return *v, nil
}
