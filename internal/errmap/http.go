package errmap

import "net/http"

// HTTPError is the JSON error body of the HTTP API.
type HTTPError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e HTTPError) Error() string {
	return e.Message
}

// ToHTTPError converts err to its HTTP form. A nil err is 200 OK.
func ToHTTPError(err error) HTTPError {
	if err == nil {
		return HTTPError{StatusCode: http.StatusOK}
	}
	if m, ok := lookup(err); ok {
		return HTTPError{StatusCode: m.status, Code: m.code, Message: err.Error()}
	}
	return HTTPError{StatusCode: http.StatusInternalServerError, Code: "INTERNAL", Message: internalMessage}
}

// ToHTTPStatusCode returns only the status of ToHTTPError.
func ToHTTPStatusCode(err error) int {
	return ToHTTPError(err).StatusCode
}
