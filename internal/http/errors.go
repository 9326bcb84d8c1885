package http

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes the failure modes of a single fetch transaction.
type ErrorKind int

const (
	// KindInvalidURL covers malformed URLs, missing hosts, undeducible
	// ports, and unsupported schemes. No I/O has been attempted.
	KindInvalidURL ErrorKind = iota
	// KindConnectionFailed covers DNS and TCP connect failures.
	KindConnectionFailed
	// KindTLS covers handshake failures and TLS being disabled on the client.
	KindTLS
	// KindRequestFailed covers write failures, read failures, and JSON
	// body serialization failures.
	KindRequestFailed
	// KindResponseParse covers structurally malformed responses.
	KindResponseParse
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid URL"
	case KindConnectionFailed:
		return "connection failed"
	case KindTLS:
		return "TLS error"
	case KindRequestFailed:
		return "request failed"
	case KindResponseParse:
		return "response parsing error"
	default:
		return "unknown error"
	}
}

// Error is the categorized error returned by every failing operation in
// this package. Exactly one kind is assigned per failure; nothing is
// logged, swallowed, or retried internally.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain support
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of a categorized error, or ok=false if err was
// not produced by this package.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func isKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsInvalidURL reports whether err is an invalid-URL error.
func IsInvalidURL(err error) bool { return isKind(err, KindInvalidURL) }

// IsConnectionFailed reports whether err is a TCP connect failure.
func IsConnectionFailed(err error) bool { return isKind(err, KindConnectionFailed) }

// IsTLSError reports whether err is a TLS handshake or availability failure.
func IsTLSError(err error) bool { return isKind(err, KindTLS) }

// IsRequestFailed reports whether err is a write, read, or body
// serialization failure.
func IsRequestFailed(err error) bool { return isKind(err, KindRequestFailed) }

// IsParseError reports whether err is a response parse failure.
func IsParseError(err error) bool { return isKind(err, KindResponseParse) }
