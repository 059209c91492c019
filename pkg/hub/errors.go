package hub

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind is the closed set of failure categories a request can end in.
type ErrorKind string

const (
	// ErrorKindTransport covers network, DNS, TLS, timeout and cancellation failures.
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindStatus means the server answered with a non-2xx status.
	ErrorKindStatus ErrorKind = "status"
	// ErrorKindInvalidResponse means the server answered 2xx with a null body.
	ErrorKindInvalidResponse ErrorKind = "invalid_response"
)

// Static errors for err113 compliance.
var (
	ErrInvalidResponse       = errors.New("invalid response shape")
	ErrConfigRequired        = errors.New("config is required")
	ErrBaseURLRequired       = errors.New("API base URL is required")
	ErrEndpointRequired      = errors.New("endpoint is required")
	ErrInvalidResponseType   = errors.New("invalid response type")
	ErrResponseTypeMismatch  = errors.New("response type cannot be decoded into result data")
	ErrNATSConfigRequired    = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType  = errors.New("unsupported cache type")
	ErrCacheDisabled         = errors.New("cache disabled")
	ErrCacheKeyNotFound      = errors.New("key not found")
	ErrCacheEntryExpired     = errors.New("entry expired")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
	ErrSignInRequired        = errors.New("sign in required")
	ErrModeratorRequired     = errors.New("moderator role required")
	ErrSkipTLSOnlyInDev      = errors.New("skipping TLS verification is only allowed in development mode")
)

// StatusError is returned when the server responds with a non-2xx status.
type StatusError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Status     string `json:"status"      yaml:"status"`
	Message    string `json:"message"     yaml:"message"`
	Body       []byte `json:"-"           yaml:"-"`
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// NewStatusError builds a StatusError, pulling a human message out of common
// JSON error bodies ({"message": ...} or {"error": ...}).
func NewStatusError(statusCode int, body []byte) *StatusError {
	return &StatusError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Message:    parseErrorMessage(body),
		Body:       body,
	}
}

func parseErrorMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}

	err := json.Unmarshal(body, &payload)
	if err != nil {
		return strings.TrimSpace(string(body))
	}

	for _, raw := range []json.RawMessage{payload.Message, payload.Error} {
		if len(raw) == 0 {
			continue
		}

		var text string
		if json.Unmarshal(raw, &text) == nil {
			return text
		}

		// NestJS-style validation errors carry a list of messages.
		var list []string
		if json.Unmarshal(raw, &list) == nil {
			return strings.Join(list, "; ")
		}
	}

	return ""
}

// Error is what the default error handler returns. It carries the operation,
// the resource endpoint and the failure kind so callers can branch without
// string matching.
type Error struct {
	Op         string    `json:"op"          yaml:"op"`
	Resource   string    `json:"resource"    yaml:"resource"`
	Kind       ErrorKind `json:"kind"        yaml:"kind"`
	StatusCode int       `json:"status_code" yaml:"status_code"`
	Err        error     `json:"-"           yaml:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Resource, e.Kind, e.Err)
}

// Unwrap returns the underlying failure.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorHandler receives every failure of a resource operation exactly once,
// with the HTTP method as op. Its return value is what the caller sees.
type ErrorHandler func(op string, err error) error

// ErrorClassifier maps a raw failure to an ErrorKind.
type ErrorClassifier func(err error) ErrorKind

// ClassifyError is the default ErrorClassifier.
func ClassifyError(err error) ErrorKind {
	if errors.Is(err, ErrInvalidResponse) {
		return ErrorKindInvalidResponse
	}

	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return ErrorKindStatus
	}

	return ErrorKindTransport
}

// NewErrorHandler returns a handler that wraps failures of resource into an
// *Error using classify. A nil classify means ClassifyError.
func NewErrorHandler(resource string, classify ErrorClassifier) ErrorHandler {
	if classify == nil {
		classify = ClassifyError
	}

	return func(op string, err error) error {
		hubErr := &Error{
			Op:       op,
			Resource: resource,
			Kind:     classify(err),
			Err:      err,
		}

		statusErr := &StatusError{}
		if errors.As(err, &statusErr) {
			hubErr.StatusCode = statusErr.StatusCode
		}

		return hubErr
	}
}

// KindOf returns the kind of err, or "" if err carries none.
func KindOf(err error) ErrorKind {
	hubErr := &Error{}
	if errors.As(err, &hubErr) {
		return hubErr.Kind
	}

	if err == nil {
		return ""
	}

	return ClassifyError(err)
}

// StatusCodeOf returns the HTTP status behind err, or 0.
func StatusCodeOf(err error) int {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}

	hubErr := &Error{}
	if errors.As(err, &hubErr) {
		return hubErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return StatusCodeOf(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return StatusCodeOf(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return StatusCodeOf(err) == http.StatusForbidden
}

// IsInvalidResponse checks if the error came from a null response body.
func IsInvalidResponse(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}
