package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a configuration failed validation.
	ErrValidation = errors.New("validation error")

	// ErrUnknownBackend indicates a backend name that is neither cloud nor local.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrSessionNotFound indicates a session ID with no live session.
	ErrSessionNotFound = errors.New("session not found")
)

// ErrorKind classifies a backend failure.
type ErrorKind int

const (
	// ErrorKindTransport is a network failure, timeout or cancellation.
	ErrorKindTransport ErrorKind = iota
	// ErrorKindRejected is a response with a non-success status.
	ErrorKindRejected
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransport:
		return "transport"
	case ErrorKindRejected:
		return "rejected"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// BackendError is a classified failure from a gateway backend. StatusCode is
// zero for transport failures.
type BackendError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *BackendError) Error() string {
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return e.Err.Error()
}

func (e *BackendError) Unwrap() error { return e.Err }

// Retryable reports whether the same request might succeed later.
func (e *BackendError) Retryable() bool {
	if e.Kind == ErrorKindTransport {
		return true
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// NotFound reports whether the backend rejected the model or endpoint as
// not found.
func (e *BackendError) NotFound() bool {
	return e.Kind == ErrorKindRejected && e.StatusCode == http.StatusNotFound
}

func (e *BackendError) unauthorized() bool {
	return e.Kind == ErrorKindRejected &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// ErrorReply converts err into the Reply shown to the user. A *BackendError
// keeps its kind; any other error, including context expiry, is reported as
// a transport failure.
func ErrorReply(err error) Reply {
	if err == nil {
		err = errors.New("unknown error")
	}
	class := BackendError{Kind: ErrorKindTransport}
	if be := (*BackendError)(nil); errors.As(err, &be) {
		class = *be
	}
	if errors.Is(err, context.DeadlineExceeded) {
		class.Kind = ErrorKindTransport
	}

	text := WarningMarker + " AI Service Error: " + err.Error()
	switch {
	case class.NotFound():
		text += NotFoundHints
	case class.unauthorized():
		text += AuthHints
	}

	kind := ReplyTransportError
	if class.Kind == ErrorKindRejected {
		kind = ReplyRejected
	}
	return Reply{Text: text, Kind: kind, Err: err}
}
