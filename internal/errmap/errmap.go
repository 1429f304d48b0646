// Package errmap translates domain errors into HTTP and gRPC responses.
// Every client-facing domain error has one row in mappings; anything else
// becomes an opaque internal error.
package errmap

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"

	"github.com/metacatalog/timefmt/internal/domain"
)

// mapping is one domain error and its wire representations.
type mapping struct {
	err    error
	status int
	code   string
	grpc   codes.Code
}

// mappings is matched in order with errors.Is; the first hit wins. Specific
// validation errors precede ErrInvalidInput because errors are often
// wrapped with both.
var mappings = []mapping{
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND", codes.NotFound},

	{domain.ErrInvalidPattern, http.StatusBadRequest, "INVALID_PATTERN", codes.InvalidArgument},
	{domain.ErrInvalidInterval, http.StatusBadRequest, "INVALID_INTERVAL", codes.InvalidArgument},
	{domain.ErrInvalidInstant, http.StatusBadRequest, "INVALID_INSTANT", codes.InvalidArgument},
	{domain.ErrUnsupportedLocale, http.StatusBadRequest, "UNSUPPORTED_LOCALE", codes.InvalidArgument},
	{domain.ErrInvalidTimezone, http.StatusBadRequest, "INVALID_TIMEZONE", codes.InvalidArgument},
	{domain.ErrInvalidInput, http.StatusBadRequest, "INVALID_ARGUMENT", codes.InvalidArgument},

	// KPI window rules: the request is well-formed but the dates are not
	// acceptable now.
	{domain.ErrInvalidDateRange, http.StatusBadRequest, "INVALID_DATE_RANGE", codes.FailedPrecondition},
	{domain.ErrDateInPast, http.StatusBadRequest, "DATE_IN_PAST", codes.FailedPrecondition},

	{domain.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED", codes.ResourceExhausted},
	{domain.ErrUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE", codes.Unavailable},
}

// internalMessage replaces the text of unmapped errors on the wire.
const internalMessage = "internal error"

func lookup(err error) (mapping, bool) {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return m, true
		}
	}
	return mapping{}, false
}
