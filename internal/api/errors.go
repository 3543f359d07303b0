package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoCredential indicates no usable bearer token is stored locally.
	ErrNoCredential = errors.New("not signed in")

	// ErrUnauthorized indicates the backend rejected the bearer token.
	// A *Error with status 401 matches it via errors.Is.
	ErrUnauthorized = errors.New("session expired or invalid")
)

// Error is a non-success response from the backend. Message comes from the
// response body when present, otherwise it is "HTTP {status}".
type Error struct {
	Status  int
	Code    string
	Message string

	fromBody bool
}

func (e *Error) Error() string {
	return e.Message
}

// FromServer reports whether Message came from the response body.
func (e *Error) FromServer() bool {
	return e.fromBody
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func genericMessage(status int) string {
	return fmt.Sprintf("HTTP %d", status)
}
