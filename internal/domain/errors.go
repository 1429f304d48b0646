package domain

import "errors"

// Sentinel errors. Callers wrap them with context and match with
// errors.Is.
var (
	// Rejected arguments.
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidInstant   = errors.New("instant outside representable range")
	ErrInvalidPattern   = errors.New("invalid date format pattern")
	ErrInvalidInterval  = errors.New("invalid interval")
	ErrInvalidDateRange = errors.New("end date precedes start date")
	ErrDateInPast       = errors.New("date lies before today")

	ErrUnsupportedLocale = errors.New("unsupported locale")
	ErrInvalidTimezone   = errors.New("unknown time zone")

	// No stored locale preference for the user.
	ErrNotFound = errors.New("resource not found")

	// Transient; the same call may succeed later.
	ErrUnavailable = errors.New("service temporarily unavailable")
	ErrRateLimited = errors.New("rate limit exceeded")

	ErrConfigRequired = errors.New("required configuration key missing")
)

// IsRetryable reports whether err is transient.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrRateLimited)
}

var clientErrors = [...]error{
	ErrInvalidInput,
	ErrInvalidInstant,
	ErrInvalidPattern,
	ErrInvalidInterval,
	ErrInvalidDateRange,
	ErrDateInPast,
	ErrUnsupportedLocale,
	ErrInvalidTimezone,
	ErrNotFound,
}

// IsClientError reports whether err was caused by the caller's input and
// repeats until that input changes.
func IsClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
