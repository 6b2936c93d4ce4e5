// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogama/requests/transient"
)

// A Kind classifies an Error.
type Kind int

const (
	// KindUnknown is reported by KindOf for errors which are not an
	// *Error.
	KindUnknown Kind = iota
	// KindTransport is any I/O failure opening, connecting to, writing
	// to, or reading from the connection.
	KindTransport
	// KindProtocol is a malformed request (bad method token, bad header
	// field, unsupported charset) or a malformed response (no status
	// line).
	KindProtocol
	// KindRedirect is a redirect policy violation: a redirect without a
	// Location, a malformed Location, or too many redirects.
	KindRedirect
	// KindDecoding is a failure to decode a compressed response body.
	KindDecoding
)

var kindNames = []string{
	"unknown",
	"transport",
	"protocol",
	"redirect",
	"decoding",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

var (
	// ErrMissingLocation is the cause of the error returned when a
	// redirect response has no Location header.
	ErrMissingLocation = errors.New("redirect location missing")
	// ErrTooManyRedirects is the cause of the error returned when a
	// redirect chain exceeds the hop limit.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrMissingStatusLine is the cause of the error returned when a
	// response has no status line.
	ErrMissingStatusLine = errors.New("missing status line")
)

// Error is the error type returned by every failed execution. It
// records the kind of failure, the operation and URL which failed,
// and the underlying cause.
type Error struct {
	Kind Kind
	// Op is the request method in the style of url.Error, for example
	// "Get" or "Post".
	Op  string
	URL string
	Err error
}

// NewError returns an *Error wrapping err. If err is already an *Error
// it is returned unchanged.
func NewError(kind Kind, method, url string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{
		Kind: kind,
		Op:   Op(method),
		URL:  url,
		Err:  err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %s: %v", e.Op, e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the error was caused by a connect or read
// timeout, or by the deadline of the request context.
func (e *Error) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// Op converts an HTTP method to the operation name used in errors. It
// is lifted verbatim from urlErrorOp in net/http/client.go.
func Op(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
