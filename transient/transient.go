// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"io"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// Not means a repeat of the same request is very unlikely to succeed.
// Every other category means a repeat has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error, and the nil error.
	Not Category = iota
	// Timeout indicates a connect or read deadline was exceeded.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout method reporting true, or is
	// context.DeadlineExceeded.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (ECONNREFUSED). The remote service may be restarting.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// connection (ECONNRESET).
	ConnReset
	// ConnClosed indicates the remote host closed the connection before
	// a complete response was read: a premature io.EOF,
	// io.ErrUnexpectedEOF, or a broken pipe while sending the request.
	ConnClosed
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"ConnClosed",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of err. Wrapped causes are
// examined as well as err itself. Temporary methods are ignored because
// their semantics are unclear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var ht hasTimeout
	if errors.As(err, &ht) && ht.Timeout() {
		return Timeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		case syscall.EPIPE:
			return ConnClosed
		}
	}

	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return ConnClosed
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
