// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package requests

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/gogama/requests/config"
	"github.com/gogama/requests/request"
	"github.com/gogama/requests/retry"
	"github.com/gogama/requests/session"
	"github.com/gogama/requests/transport"
)

// An Exchanger performs one HTTP exchange: it sends a request and
// reads the response head, without following redirects.
//
// The returned response owns its connection; closing the response
// releases it. Any error returned must be a *request.Error, and no
// connection may be left open when an error is returned.
type Exchanger interface {
	Exchange(r *request.Request) (*request.Response, error)
}

// The ExchangerFunc type is an adapter to allow the use of ordinary
// functions as exchangers.
type ExchangerFunc func(r *request.Request) (*request.Response, error)

// Exchange calls f(r).
func (f ExchangerFunc) Exchange(r *request.Request) (*request.Response, error) {
	return f(r)
}

// DefaultExchanger exchanges over a fresh HTTP/1.1 connection per
// request using package transport.
var DefaultExchanger Exchanger = ExchangerFunc(transport.Exchange)

var emptyHandlers = HandlerGroup{}

// A Client executes requests, following redirects and keeping session
// cookies. Its zero value is a valid configuration.
//
// The zero value client uses DefaultExchanger, never retries, runs no
// event handlers, and lazily creates one Session shared by every
// request executed without a session of its own.
//
// Client is safe for concurrent use by multiple goroutines, provided
// its exported fields are not changed once it is in use.
//
// On top of the single exchange done by the Exchanger, Client adds the
// following features:
//
// • Client follows up to request.MaxRedirects redirects when the
// request's FollowRedirect field is set. Every redirect is re-issued as
// a GET derived from the original request (see request.RedirectTo).
//
// • Client binds requests without a session to its own Session, so
// cookies set by one response are sent with later requests.
//
// • Client optionally retries failed executions using a retry policy;
//
// • Client invokes user-provided handler functions at designated plug-in
// points within the redirect and retry loops, allowing new features to
// be mixed in from outside libraries; and
//
// • Client implements the requests.Executor interface.
type Client struct {
	// Exchanger specifies the mechanics of a single exchange.
	//
	// If Exchanger is nil, DefaultExchanger is used.
	Exchanger Exchanger
	// RetryPolicy decides when to retry failed executions and how long
	// to sleep before retrying.
	//
	// If RetryPolicy is nil, executions are never retried.
	RetryPolicy retry.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a request execution.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Session is used for requests executed without a session. If nil,
	// a new session is created on first use.
	Session *session.Session
	// Config, if not nil, is applied to requests created by NewRequest
	// and the Get, Head, Post and PostForm methods.
	Config *config.Config

	sessionOnce sync.Once
}

// Do executes a request and returns the final response, following
// redirects and the retry policy set on Client.
//
// If the request's FollowRedirect field is false, or the first
// response is not a redirect, the first response is returned as is.
// Otherwise the Location header of each redirect is resolved against
// the URL of the hop which returned it, and the next hop is a GET of
// the result. Redirect bodies are discarded. More than
// request.MaxRedirects redirects is an error.
//
// Any returned error is a *request.Error, and no connection is left
// open. A non-2XX final status code does not result in an error. On
// success, the caller must close the response.
//
// For simple use cases, the Get, Head, Post, and PostForm methods may
// prove easier to use than Do.
func (c *Client) Do(r *request.Request) (*request.Response, error) {
	e, err := c.Execute(r)
	if err != nil {
		return nil, err
	}
	return e.Response, nil
}

// Execute works like Do but returns the whole execution state, which
// includes the redirect trail, attempt count, and timing.
//
// The returned Execution is never nil. If an error is returned, the
// execution's Response is nil and its Err field references the same
// error.
func (c *Client) Execute(r *request.Request) (*request.Execution, error) {
	if r.Session == nil {
		r = r.WithSession(c.session())
	}

	e := request.Execution{
		Request: r,
	}

	exchanger := c.Exchanger
	if exchanger == nil {
		exchanger = DefaultExchanger
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()

	ctx := r.Context()

RetryLoop:
	for {
		handlers.run(BeforeAttempt, &e)
		follow(&e, exchanger, handlers)
		if e.Timeout() {
			handlers.run(AfterAttemptTimeout, &e)
		}
		handlers.run(AfterAttempt, &e)
		ctxErr := ctx.Err()
		if ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				handlers.run(AfterExecutionTimeout, &e)
			}
			break
		} else if c.RetryPolicy != nil && c.RetryPolicy.Decide(&e) {
			wait := c.RetryPolicy.Wait(&e)
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				discard(&e)
				err := ctx.Err()
				e.Err = request.NewError(request.KindTransport, r.Method, r.URL.Redacted(), err)
				if errors.Is(err, context.DeadlineExceeded) {
					handlers.run(AfterExecutionTimeout, &e)
				}
				break RetryLoop
			}
			discard(&e)
			e.Err = nil
			e.Attempt++
		} else {
			break
		}
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	return &e, e.Err
}

// follow runs one attempt: the original request and every redirect it
// leads to.
func follow(e *request.Execution, x Exchanger, handlers *HandlerGroup) {
	r := e.Request
	e.Hop = 0
	e.HopRequest = r
	e.Trail = []*url.URL{r.URL}
	for {
		handlers.run(BeforeHop, e)
		resp, err := x.Exchange(e.HopRequest)
		if err != nil {
			e.Response = nil
			e.Err = request.NewError(request.KindTransport, e.HopRequest.Method, e.HopRequest.URL.Redacted(), err)
		} else {
			e.Response = resp
			e.Err = nil
		}
		handlers.run(AfterHop, e)
		if e.Err != nil || !r.FollowRedirect || !request.IsRedirect(e.Response.StatusCode) {
			return
		}

		if e.Hop == request.MaxRedirects {
			redirectFailed(e, request.ErrTooManyRedirects)
			return
		}
		location, ok := e.Response.First("Location")
		if !ok {
			redirectFailed(e, request.ErrMissingLocation)
			return
		}
		u, err := request.ResolveReference(e.HopRequest.URL, location)
		if err != nil {
			redirectFailed(e, err)
			return
		}
		discard(e)
		e.HopRequest = r.RedirectTo(u)
		e.Hop++
		e.Trail = append(e.Trail, u)
	}
}

func redirectFailed(e *request.Execution, err error) {
	discard(e)
	e.Err = request.NewError(request.KindRedirect, e.HopRequest.Method, e.HopRequest.URL.Redacted(), err)
}

func discard(e *request.Execution) {
	if e.Response != nil {
		e.Response.Discard()
		e.Response = nil
	}
}

// NewRequest returns a new request with the client's Config applied.
func (c *Client) NewRequest(method, url string, body request.Body) (*request.Request, error) {
	r, err := request.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	if c.Config != nil {
		if err = c.Config.Apply(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
//
// To make a request with custom headers, use NewRequest and Do.
func (c *Client) Get(url string) (*request.Response, error) {
	return Get(c, url)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do.
//
// To make a request with custom headers, use NewRequest and Do.
func (c *Client) Head(url string) (*request.Response, error) {
	return Head(c, url)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by the Post function, namely: string; []byte;
// io.Reader; and request.Body.
//
// To make a request with custom headers, use NewRequest and Do.
func (c *Client) Post(url, contentType string, body interface{}) (*request.Response, error) {
	return Post(c, url, contentType, body)
}

// PostForm issues a POST to the specified URL, with data's keys and
// values URL-encoded in the request charset as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To set other headers, use NewRequest and Do.
func (c *Client) PostForm(url string, data url.Values) (*request.Response, error) {
	return PostForm(c, url, data)
}

func (c *Client) session() *session.Session {
	c.sessionOnce.Do(func() {
		if c.Session == nil {
			c.Session = session.New()
		}
	})
	return c.Session
}
