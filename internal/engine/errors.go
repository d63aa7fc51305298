package engine

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind discriminates engine failures for the fallback policy.
type ErrorKind string

const (
	// KindUnsupported means the engine cannot handle this input shape or
	// format. The selector skips it without recording a failure.
	KindUnsupported ErrorKind = "unsupported"
	// KindUnavailable means a required credential or dependency is
	// missing. Skipped without recording, same as unsupported.
	KindUnavailable ErrorKind = "unavailable"
	// KindTimeout covers context deadline or cancellation during an
	// attempt.
	KindTimeout ErrorKind = "timeout"
	// KindRemoteFailure covers non-2xx responses and malformed payloads
	// from remote services.
	KindRemoteFailure ErrorKind = "remote_failure"
	// KindParseFailure covers local parser errors on well-received input.
	KindParseFailure ErrorKind = "parse_failure"
)

// Error is the single failure type engines return. Engine internals
// (network errors, parser crashes) are converted to this at the adapter
// boundary and never propagate untyped.
type Error struct {
	Engine  string
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Engine, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Engine, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an engine failure with a formatted message.
func NewError(engineName string, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Engine: engineName, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError converts an arbitrary error into an engine failure, mapping
// context cancellation and deadline to the timeout kind.
func WrapError(engineName string, kind ErrorKind, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		kind = KindTimeout
	}
	return &Error{Engine: engineName, Kind: kind, Err: err}
}

// KindOf extracts the failure kind from err, or remote_failure when err is
// not a typed engine error. Selector code relies on every engine honoring
// the typed contract, so the fallback only guards against bugs.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindRemoteFailure
}
