// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package requests

import (
	"github.com/gogama/requests/request"
)

// A HandlerGroup holds one chain of handlers per Event. Installed in
// Client.Handlers, its chains run at the matching points of every
// execution: once per execution for BeforeExecutionStart and
// AfterExecutionEnd, once per attempt for the attempt events, and once
// per redirect hop for BeforeHop and AfterHop.
//
// The zero value is an empty group. A group must not be modified once
// the client using it is executing requests.
type HandlerGroup struct {
	chains [numEvents][]Handler
}

// PushBack appends h to the chain run for evt, so it runs after every
// handler already in that chain.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("requests: nil handler")
	}
	g.chains[evt] = append(g.chains[evt], h)
}

// PushFront prepends h to the chain run for evt, so it runs before
// every handler already in that chain.
func (g *HandlerGroup) PushFront(evt Event, h Handler) {
	if h == nil {
		panic("requests: nil handler")
	}
	chain := make([]Handler, 0, len(g.chains[evt])+1)
	g.chains[evt] = append(append(chain, h), g.chains[evt]...)
}

// Merge appends each chain of other to the chain of g for the same
// event. Merging the group returned by NewLogHandler, for example, adds
// logging to a group which already has handlers.
func (g *HandlerGroup) Merge(other *HandlerGroup) {
	if other == nil {
		return
	}
	for evt := range other.chains {
		g.chains[evt] = append(g.chains[evt], other.chains[evt]...)
	}
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	for _, h := range g.chains[evt] {
		h.Handle(evt, e)
	}
}

// A Handler is called when an event occurs during an execution. The
// execution's fields reflect the point reached: during BeforeHop, for
// instance, e.HopRequest is the request about to be sent, and during
// AfterHop, e.Response or e.Err holds its outcome.
//
// A handler may modify the execution. An AfterHop handler which sets
// e.Err, or replaces e.Response, changes what the redirect loop acts
// on next.
type Handler interface {
	Handle(evt Event, e *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers.
type HandlerFunc func(evt Event, e *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
