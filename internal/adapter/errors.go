package adapter

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by [RemoteClient.Call] matches exactly
// one of them.
var (
	// ErrNetwork marks failures that are expected to clear up by themselves.
	ErrNetwork = errors.New("remote store unreachable")
	// ErrRejected marks requests the remote store refused as sent.
	ErrRejected = errors.New("remote store rejected request")
)

var (
	ErrUnauthorized = fmt.Errorf("%w: unauthorized", ErrNetwork)
	ErrTimeout      = fmt.Errorf("%w: request timeout", ErrNetwork)
	ErrRateLimited  = fmt.Errorf("%w: too many requests", ErrNetwork)
	ErrServer       = fmt.Errorf("%w: server error", ErrNetwork)

	ErrBadRequest = fmt.Errorf("%w: bad request", ErrRejected)
	ErrForbidden  = fmt.Errorf("%w: forbidden", ErrRejected)
	ErrNotFound   = fmt.Errorf("%w: not found", ErrRejected)
	ErrConflict   = fmt.Errorf("%w: conflict", ErrRejected)
)

// ErrMissingID is returned when a create reply carries no document id.
var ErrMissingID = errors.New("remote reply has no document id")

// StatusError is a non-2xx reply of the remote store.
type StatusError struct {
	StatusCode int
	// Code is the "error" field of the reply envelope.
	Code string
	// Message is the "message" field of the reply envelope, or the raw body.
	Message string

	kind error
}

func (e *StatusError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s (http %d): %s: %s", e.kind, e.StatusCode, e.Code, e.Message)
	case e.Code != "" || e.Message != "":
		return fmt.Sprintf("%s (http %d): %s%s", e.kind, e.StatusCode, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s (http %d)", e.kind, e.StatusCode)
	}
}

func (e *StatusError) Unwrap() error {
	return e.kind
}

// ErrorClass is the coarse outcome of a failed remote call.
type ErrorClass int

const (
	// ClassNone is returned for a nil error.
	ClassNone ErrorClass = iota
	// ClassNetwork is a retryable failure.
	ClassNetwork
	// ClassRejected is a failure that will repeat until the request changes.
	ClassRejected
)

func (c ErrorClass) String() string {
	switch c {
	case ClassNetwork:
		return "network"
	case ClassRejected:
		return "rejected"
	default:
		return "none"
	}
}

// Classify returns the class of err. Errors that did not come from the
// remote client are classified as network failures, so that nothing is
// dropped because of a local hiccup.
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrRejected):
		return ClassRejected
	default:
		return ClassNetwork
	}
}

// IsRetryable reports whether err is worth retrying later.
func IsRetryable(err error) bool {
	return Classify(err) == ClassNetwork
}
