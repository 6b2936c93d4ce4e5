// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package requests

import (
	"fmt"
	"io"
	"net/url"

	"github.com/gogama/requests/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do executes a request and returns the final response (or error).
// Client implements the Doer interface, and any other Doer
// implementation must behave substantially the same as Client.Do.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(r *request.Request) (*request.Response, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Get creates a request to issue a GET to the specified URL, executes
// it, and returns the final response (or error). Client implements the
// Getter interface, and any other Getter implementation must behave
// substantially the same as Client.Get.
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(url string) (*request.Response, error)
}

// Header is the interface that wraps the basic Head method.
//
// Head creates a request to issue a HEAD to the specified URL, executes
// it, and returns the final response (or error). Client implements the
// Header interface, and any other Header implementation must behave
// substantially the same as Client.Head.
//
// Any Doer can be used to emulate a Header via the Head function.
type Header interface {
	Head(url string) (*request.Response, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Post creates a request to issue a POST to the specified URL, executes
// it, and returns the final response (or error). Client implements the
// Poster interface, and any other Poster implementation must behave
// substantially the same as Client.Post.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by the Post function, namely: string; []byte;
// io.Reader; and request.Body.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(url, contentType string, body interface{}) (*request.Response, error)
}

// FormPoster is the interface that wraps the basic PostForm method.
//
// PostForm creates a request to issue a form POST to the specified URL,
// executes it, and returns the final response (or error). Client
// implements the FormPoster interface, and any other FormPoster
// implementation must behave substantially the same as
// Client.PostForm.
//
// The request body is set to the URL-encoded keys and values from data,
// and the content type is set to application/x-www-form-urlencoded.
//
// Any Doer can be used to emulate a FormPoster via the PostForm
// function.
type FormPoster interface {
	PostForm(url string, data url.Values) (*request.Response, error)
}

// Executor is the interface that groups the basic Do, Get, Head, Post,
// and PostForm methods.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Getter
	Header
	Poster
	FormPoster
}

// A RequestMaker creates requests carrying its own defaults. Client is
// a RequestMaker. The Get, Head, Post and PostForm functions create
// requests with a Doer's NewRequest method when it has one.
type RequestMaker interface {
	NewRequest(method, url string, body request.Body) (*request.Request, error)
}

// Get uses the specified Doer to issue a GET to the specified URL,
// using the same policies as d.Do.
//
// To make a request with custom headers, use request.NewRequest and
// d.Do.
func Get(d Doer, url string) (*request.Response, error) {
	r, err := newRequest(d, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(r)
}

// Head uses the specified Doer to issue a HEAD to the specified URL,
// using the same policies as d.Do.
//
// To make a request with custom headers, use request.NewRequest and
// d.Do.
func Head(d Doer, url string) (*request.Response, error) {
	r, err := newRequest(d, "HEAD", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(r)
}

// Post uses the specified Doer to issue a POST to the specified URL,
// using the same policies as d.Do.
//
// The body parameter may be nil for an empty body, a string (encoded
// in the request charset), a []byte, an io.Reader (sent chunked), or a
// request.Body. Unless body is a request.Body, contentType is sent as
// the Content-Type header.
//
// To make a request with custom headers, use request.NewRequest and
// d.Do.
func Post(d Doer, url, contentType string, body interface{}) (*request.Response, error) {
	b, err := toBody(body, contentType)
	if err != nil {
		return nil, err
	}
	r, err := newRequest(d, "POST", url, b)
	if err != nil {
		return nil, err
	}
	return d.Do(r)
}

// PostForm uses the specified Doer to issue a POST to the specified URL,
// with data's keys and values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To set other headers, use request.NewRequest and d.Do.
func PostForm(d Doer, url string, data url.Values) (*request.Response, error) {
	return Post(d, url, "", request.FormBody(data))
}

func newRequest(d Doer, method, url string, body request.Body) (*request.Request, error) {
	if rm, ok := d.(RequestMaker); ok {
		return rm.NewRequest(method, url, body)
	}
	return request.NewRequest(method, url, body)
}

func toBody(body interface{}, contentType string) (request.Body, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case request.Body:
		return b, nil
	case string:
		return request.StringBody(b, contentType), nil
	case []byte:
		return request.BytesBody(b, contentType), nil
	case io.Reader:
		return request.ReaderBody(b, contentType, -1), nil
	default:
		return nil, fmt.Errorf("requests: invalid body type %T (use nil, string, []byte, io.Reader or request.Body)", body)
	}
}

// Inflate converts any non-nil Doer into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Doer needs to call a function that requires an
// Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("requests: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(r *request.Request) (*request.Response, error) {
	return i.doer.Do(r)
}

func (i inflated) Get(url string) (*request.Response, error) {
	return Get(i.doer, url)
}

func (i inflated) Head(url string) (*request.Response, error) {
	return Head(i.doer, url)
}

func (i inflated) Post(url, contentType string, body interface{}) (*request.Response, error) {
	return Post(i.doer, url, contentType, body)
}

func (i inflated) PostForm(url string, data url.Values) (*request.Response, error) {
	return PostForm(i.doer, url, data)
}
