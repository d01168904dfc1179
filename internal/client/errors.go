package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindRequest         ErrorKind = "request"
	KindServer          ErrorKind = "server"
	KindNetwork         ErrorKind = "network"
	KindDecode          ErrorKind = "decode"
)

var (
	ErrUnauthenticated = errors.New("no session credential")
	ErrUnauthorized    = errors.New("backend rejected the session credential")
	ErrForbidden       = errors.New("backend denied access")
	ErrNotFound        = errors.New("backend resource not found")
	ErrRequest         = errors.New("backend rejected the request")
	ErrServer          = errors.New("backend failed")
	ErrNetwork         = errors.New("backend unreachable")
	ErrDecode          = errors.New("backend response malformed")
)

var sentinelByKind = map[ErrorKind]error{
	KindUnauthenticated: ErrUnauthenticated,
	KindUnauthorized:    ErrUnauthorized,
	KindForbidden:       ErrForbidden,
	KindNotFound:        ErrNotFound,
	KindRequest:         ErrRequest,
	KindServer:          ErrServer,
	KindNetwork:         ErrNetwork,
	KindDecode:          ErrDecode,
}

// Error is the typed failure every backend call returns.
type Error struct {
	Kind    ErrorKind
	Status  int
	Method  string
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var builder strings.Builder
	if e.Method != "" || e.Path != "" {
		fmt.Fprintf(&builder, "%s %s: ", e.Method, e.Path)
	}
	builder.WriteString(string(e.Kind))
	if e.Status != 0 {
		fmt.Fprintf(&builder, " (status %d)", e.Status)
	}
	if e.Message != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Message)
	}
	if e.Err != nil && e.Err != sentinelByKind[e.Kind] {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	return builder.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	sentinel, ok := sentinelByKind[e.Kind]
	return ok && target == sentinel
}

func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf reports the backend error kind carried by err, or "" when err is not a backend error.
func KindOf(err error) ErrorKind {
	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr.Kind
	}
	return ""
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindRequest
	}
}

// UserMessage is the short text shown in a toast or inline error for err.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindUnauthenticated, KindUnauthorized:
		return "Your session has expired. Please sign in again."
	case KindForbidden:
		return "You do not have access to this resource."
	case KindNotFound:
		return "The requested item was not found."
	case KindNetwork:
		return "The coaching service is unreachable. Try again."
	case KindDecode:
		return "The coaching service sent an unexpected response."
	case KindRequest:
		var backendErr *Error
		if errors.As(err, &backendErr) && backendErr.Message != "" {
			return backendErr.Message
		}
		return "The request was rejected."
	default:
		return "Something went wrong. Try again."
	}
}
