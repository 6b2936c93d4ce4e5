// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sync"

	"github.com/gogama/requests/cookie"
	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding/htmlindex"
)

// BodyKind says what a Response body stream is.
type BodyKind int

const (
	// BodyEmpty is an empty placeholder stream, used when the response
	// has no body.
	BodyEmpty BodyKind = iota
	// BodyRaw is the body exactly as read from the connection.
	BodyRaw
	// BodyDecoded is the body read through a gzip or deflate decoder.
	BodyDecoded
)

// discardLimit bounds how much of an unwanted body Discard reads
// before closing the connection.
const discardLimit = 256 << 10

// A Response is the raw result of one HTTP exchange.
//
// A Response owns its body stream and the connection the stream is
// read from. Both are released together by Close, which the caller
// must call, directly or through one of the consuming helpers, once
// the response is no longer needed.
type Response struct {
	// StatusCode is the numeric status code, e.g. 200.
	StatusCode int

	// StatusLine is the full status line, e.g. "HTTP/1.1 200 OK".
	StatusLine string

	// Header lists the response header fields in the order received.
	//
	// If the body was decoded, the Content-Encoding field still names
	// the encoding the server used.
	Header Headers

	// Cookies lists the cookies set by this response. The same cookies
	// have already been merged into the request's session.
	Cookies []cookie.Cookie

	// Body is the body stream. It is never nil.
	Body io.ReadCloser

	// BodyKind tells whether Body is empty, raw or decoded. A body is
	// never decoded twice.
	BodyKind BodyKind

	// URL is the URL of the request which produced this response. For
	// a redirected request, it is the URL of the final hop.
	URL *url.URL

	// Method is the method of the request which produced the response.
	Method string

	// Conn is the connection the response was read from. It is closed
	// by Close.
	Conn io.Closer

	closeOnce sync.Once
	closeErr  error
}

// First returns the value of the first header field named name.
func (r *Response) First(name string) (string, bool) {
	return r.Header.First(name)
}

// Cookie returns the cookie named name set by this response.
func (r *Response) Cookie(name string) (cookie.Cookie, bool) {
	for i := range r.Cookies {
		if r.Cookies[i].Name == name {
			return r.Cookies[i], true
		}
	}
	return cookie.Cookie{}, false
}

// Charset returns the charset parameter of the Content-Type header, or
// the empty string if there is none.
func (r *Response) Charset() string {
	ct, ok := r.Header.First("Content-Type")
	if !ok {
		return ""
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// Close closes the body stream and the connection. It is safe to call
// Close more than once; later calls return the result of the first.
func (r *Response) Close() error {
	r.closeOnce.Do(func() {
		if r.Body != nil {
			r.closeErr = r.Body.Close()
		}
		if r.Conn != nil {
			if err := r.Conn.Close(); r.closeErr == nil {
				r.closeErr = err
			}
		}
	})
	return r.closeErr
}

// Discard reads and throws away a bounded amount of the body, then
// closes the response. Any error is ignored.
func (r *Response) Discard() {
	_, _ = io.CopyN(io.Discard, r.body(), discardLimit)
	_ = r.Close()
}

// Bytes reads the whole body and closes the response.
func (r *Response) Bytes() ([]byte, error) {
	defer r.Close()
	return io.ReadAll(r.body())
}

// Text reads the whole body, decodes it using the charset named in the
// Content-Type header, and closes the response. If no charset is
// named, or the charset is unknown, the body is taken to be UTF-8.
func (r *Response) Text() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	if cs := r.Charset(); cs != "" {
		if enc, err := htmlindex.Get(cs); err == nil {
			if d, err := enc.NewDecoder().Bytes(b); err == nil {
				return string(d), nil
			}
		}
	}
	return string(b), nil
}

// JSON decodes the body as JSON into v and closes the response.
func (r *Response) JSON(v interface{}) error {
	defer r.Close()
	return json.NewDecoder(r.body()).Decode(v)
}

// JSONPath reads the whole body, closes the response, and returns the
// value at path using gjson path syntax.
func (r *Response) JSONPath(path string) (gjson.Result, error) {
	b, err := r.Bytes()
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.GetBytes(b, path), nil
}

// WriteTo copies the whole body to w and closes the response.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	defer r.Close()
	return io.Copy(w, r.body())
}

func (r *Response) body() io.Reader {
	if r.Body == nil {
		return http.NoBody
	}
	return r.Body
}
