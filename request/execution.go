// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/url"
	"time"

	"github.com/gogama/requests/transient"
)

// An Execution represents the state of a single Request execution.
//
// When a request is executed, an Execution is created for it. It is
// updated as the execution progresses, hop by hop along any redirect
// chain, and passed to event handlers and retry policies.
//
// Handlers and policies may store data in an Execution using SetValue
// and read it back with Value. They should treat the exported fields
// as read-only. In particular they must not read or close the body of
// Response, which still belongs to the client.
type Execution struct {
	// Request is the original request being executed. It is never nil.
	Request *Request

	// Start is the start time of the execution.
	Start time.Time

	// End is the end time of the execution. It is the zero value until
	// the execution ends.
	End time.Time

	// Attempt is the zero-based number of the current attempt. It only
	// exceeds zero if the client has a retry policy which decided to
	// repeat the request.
	Attempt int

	// Hop is the zero-based number of the current hop within the
	// current attempt. Hop zero is the original request; hop one is the
	// first redirect, and so on.
	Hop int

	// HopRequest is the request sent in the current hop. On hop zero it
	// is the same as Request.
	HopRequest *Request

	// Response is the response received in the current hop. It is nil
	// before the hop's response headers are read and if the hop failed.
	Response *Response

	// Err is the error which ended the current hop or the execution,
	// if any. Whenever Err is non-nil, it has the type *Error.
	Err error

	// Trail lists the URLs requested so far in the current attempt, in
	// order. Its last element is the URL of the current hop.
	Trail []*url.URL

	data context.Context
}

// StatusCode returns the status code of the current response, or zero
// if there is none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Header returns the header fields of the current response, or nil if
// there is none.
func (e *Execution) Header() Headers {
	if e.Response == nil {
		return nil
	}
	return e.Response.Header
}

// Redirects returns the number of redirects followed so far in the
// current attempt.
func (e *Execution) Redirects() int {
	return e.Hop
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If it has
// ended, the duration is End minus Start. Otherwise, it is the current
// time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout indicates whether Err is a timeout.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of a built-in type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
