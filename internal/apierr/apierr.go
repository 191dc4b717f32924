// Package apierr defines the tagged errors the API surface renders to clients.
//
// Every error carries an HTTP status code and a machine-readable message,
// serializing to {"status_code": n, "message": s}. The set of kinds is
// closed; handlers map an error to a response by looking at the Error
// value, never by matching message text.
package apierr

import (
	"errors"
	"net/http"
)

// Kind identifies one of the closed set of error categories.
type Kind int

const (
	// KindInternal is the base kind for failures with no more specific cause.
	KindInternal Kind = iota

	// KindBadRequest covers malformed client requests.
	KindBadRequest

	// KindNotFound covers requests for resources that do not exist.
	KindNotFound

	// KindAuth covers generic Spotify authentication failures.
	KindAuth

	// KindToken covers a missing authorization code or access token.
	KindToken

	// KindAPI covers non-2xx responses from the Spotify API.
	KindAPI

	// KindInvalidResponse covers 2xx upstream bodies that fail a structural check.
	KindInvalidResponse

	// KindMissingConfig covers absent or malformed Spotify configuration.
	KindMissingConfig
)

// Default status and message per kind. Handlers pick the HTTP status from
// these tables (via New), not from control-flow dispatch.
var (
	defaultStatus = map[Kind]int{
		KindInternal:        http.StatusInternalServerError,
		KindBadRequest:      http.StatusBadRequest,
		KindNotFound:        http.StatusNotFound,
		KindAuth:            http.StatusUnauthorized,
		KindToken:           http.StatusUnauthorized,
		KindAPI:             http.StatusBadRequest,
		KindInvalidResponse: http.StatusInternalServerError,
		KindMissingConfig:   http.StatusInternalServerError,
	}

	defaultMessage = map[Kind]string{
		KindInternal:        "INTERNAL_SERVER_ERROR",
		KindBadRequest:      "BAD_REQUEST",
		KindNotFound:        "NOT_FOUND",
		KindAuth:            "SPOTIFY_AUTHENTICATION_ERROR",
		KindToken:           "SPOTIFY_TOKEN_ERROR",
		KindAPI:             "SPOTIFY_API_ERROR",
		KindInvalidResponse: "SPOTIFY_INVALID_RESPONSE_ERROR",
		KindMissingConfig:   "SPOTIFY_MISSING_CONFIG_ERROR",
	}
)

// Error is a tagged error rendered to clients as {status_code, message}.
type Error struct {
	Kind       Kind   `json:"-"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New returns an Error of the given kind. An empty message keeps the kind's
// default message code.
func New(kind Kind, message string) *Error {
	e := &Error{
		Kind:       kind,
		StatusCode: defaultStatus[kind],
		Message:    defaultMessage[kind],
	}
	if message != "" {
		e.Message = message
	}
	return e
}

// NewAPI returns a KindAPI error. A non-zero status overrides the default
// 400; the Spotify client uses this to propagate upstream 404s.
func NewAPI(message string, status int) *Error {
	e := New(KindAPI, message)
	if status != 0 {
		e.StatusCode = status
	}
	return e
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
