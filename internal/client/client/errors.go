package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable means no response arrived: offline, DNS, refused.
	ErrUnavailable = errors.New("server unavailable")
	// ErrTimeout means the request gave up waiting for a response.
	ErrTimeout = errors.New("request timed out")
	// ErrUnauthorized means the backend rejected the session token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrBackend matches any error reported by the backend.
	ErrBackend = errors.New("backend error")
)

// FailureKind separates "nothing came back" from "something came back and
// it said no".
type FailureKind int

const (
	NoResponse FailureKind = iota + 1
	ErrorResponse
)

func (k FailureKind) String() string {
	switch k {
	case NoResponse:
		return "no response"
	case ErrorResponse:
		return "error response"
	}
	return "unknown"
}

// RequestError is returned by every failed call.
type RequestError struct {
	Kind       FailureKind
	Method     string
	Path       string
	Timeout    bool
	StatusCode int
	// Message is the server-provided error text, or a generic one.
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Kind == NoResponse {
		what := "unreachable"
		if e.Timeout {
			what = "timed out"
		}
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, what, e.Err)
	}
	return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is lets callers match the sentinels above with errors.Is.
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == NoResponse && e.Timeout
	case ErrUnavailable:
		return e.Kind == NoResponse && !e.Timeout
	case ErrBackend:
		return e.Kind == ErrorResponse
	case ErrUnauthorized:
		return e.Kind == ErrorResponse &&
			(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
	case ErrNotFound:
		return e.Kind == ErrorResponse && e.StatusCode == http.StatusNotFound
	}
	return false
}

// ServerMessage returns the backend's message if err is an error response.
func ServerMessage(err error) (string, bool) {
	var re *RequestError
	if errors.As(err, &re) && re.Kind == ErrorResponse && re.Message != "" {
		return re.Message, true
	}
	return "", false
}
