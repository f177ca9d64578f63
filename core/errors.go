package core

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// InvalidInput means the URL is not well formed, or other user input
	// (an edited summary, a format name) was rejected.
	InvalidInput Kind = iota + 1
	// NetworkError means no HTTP response was received.
	NetworkError
	// FetchFailed means a non-2xx status other than 401, 403 and 404.
	FetchFailed
	// AccessDenied means 401 or 403, usually a paywall.
	AccessDenied
	// NotFound means the page returned 404.
	NotFound
	// InsufficientContent means extraction produced too little text.
	InsufficientContent
	// RenderInitFailed means the drawing surface could not be allocated.
	RenderInitFailed
)

var kindNames = map[Kind]string{
	InvalidInput:        "invalid_input",
	NetworkError:        "network_error",
	FetchFailed:         "fetch_failed",
	AccessDenied:        "access_denied",
	NotFound:            "not_found",
	InsufficientContent: "insufficient_content",
	RenderInitFailed:    "render_init_failed",
}

// String returns the snake_case name used in logs and API responses.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is a structured pipeline failure.
type Error struct {
	Kind   Kind
	URL    string
	Status int // HTTP status for FetchFailed
	Cause  error
}

// Error returns a short message a user can act on.
func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case InvalidInput:
		if e.URL == "" && e.Cause != nil {
			return "invalid input: " + e.Cause.Error()
		}
		msg = "invalid URL (must include scheme and host, e.g. https://example.com)"
	case NetworkError:
		msg = "network error: the site could not be reached"
	case FetchFailed:
		msg = fmt.Sprintf("fetch failed with status %d", e.Status)
	case AccessDenied:
		msg = "access denied (possibly behind a paywall)"
	case NotFound:
		msg = "page not found"
	case InsufficientContent:
		msg = "not enough readable content on the page"
	case RenderInitFailed:
		msg = "could not allocate drawing surface"
	default:
		msg = "unknown error"
	}
	if e.URL != "" {
		msg += ": " + e.URL
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
