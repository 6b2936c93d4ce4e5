// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	urlpkg "net/url"
	"strings"
	"time"

	"github.com/gogama/requests/session"
	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "requests/request: nil context"

	// DefaultUserAgent is the User-Agent sent by requests created with
	// NewRequest.
	DefaultUserAgent = "gogama-requests/1.0"

	// DefaultTimeout is the connect and read timeout of requests
	// created with NewRequest.
	DefaultTimeout = 30 * time.Second

	// DefaultCharset is the character encoding of requests created with
	// NewRequest.
	DefaultCharset = "utf-8"
)

// A Param is a name/value pair. Params make up header lists and
// request cookie lists.
type Param struct {
	Name  string
	Value string
}

// BasicAuth holds HTTP Basic Authentication credentials.
type BasicAuth struct {
	Username string
	Password string
}

// Encode returns the Authorization header value for the credentials.
//
// See 2 (end of page 4) https://www.ietf.org/rfc/rfc2617.txt
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64
// encoded string in the credentials."
// It is not meant to be urlencoded.
func (a *BasicAuth) Encode() string {
	auth := a.Username + ":" + a.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(auth))
}

// A Request describes one logical HTTP request, which may take several
// hops to complete if the server redirects it.
//
// Requests are values owned by the caller. A client reads a Request
// but never modifies it; redirect hops are made with new requests
// derived from the original (see RedirectTo).
type Request struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.). It must
	// be a valid HTTP token.
	Method string

	// URL specifies the absolute http or https URL to access.
	URL *urlpkg.URL

	// Proxy optionally specifies a proxy to connect through. Supported
	// schemes are http, https and socks5. A nil Proxy means connect
	// directly.
	Proxy *urlpkg.URL

	// Body is the request body, or nil for none.
	Body Body

	// Charset names the character encoding used to encode the body,
	// for example "utf-8" or "iso-8859-1". An empty Charset means
	// DefaultCharset.
	Charset string

	// Header lists custom request header fields in the order they are
	// sent. A custom header replaces any header of the same name the
	// client would otherwise set itself, such as User-Agent or Cookie.
	Header Headers

	// Cookies lists request-level cookies. They are sent ahead of any
	// matching session cookies.
	Cookies []Param

	// Verify enables TLS certificate chain and host name verification.
	// If Verify is false, every certificate is trusted.
	Verify bool

	// Certs, if non-empty and Verify is true, restricts the trusted TLS
	// roots to exactly these certificates.
	Certs []*x509.Certificate

	// UserAgent is sent in the User-Agent header unless empty.
	UserAgent string

	// Compress advertises gzip and deflate content codings and enables
	// transparent decoding of compressed response bodies.
	Compress bool

	// KeepAlive, if false, asks the server to close the connection
	// after the response by sending "Connection: close".
	KeepAlive bool

	// ConnectTimeout bounds the time taken to establish the connection,
	// including any proxy and TLS handshakes. Zero means no timeout.
	ConnectTimeout time.Duration

	// ReadTimeout bounds the time any single read from the connection
	// may block. Zero means no timeout.
	ReadTimeout time.Duration

	// FollowRedirect enables following 3xx redirect responses.
	FollowRedirect bool

	// Session is the session whose cookies are sent with the request
	// and which is updated with cookies received.
	Session *session.Session

	// BasicAuth optionally specifies credentials for the Authorization
	// header.
	BasicAuth *BasicAuth

	// ctx bounds the whole execution, including every redirect hop. It
	// should only be modified by copying the whole Request using
	// WithContext.
	ctx context.Context
}

// NewRequest wraps NewRequestWithContext using the background context.
func NewRequest(method, url string, body Body) (*Request, error) {
	return NewRequestWithContext(context.Background(), method, url, body)
}

// NewRequestWithContext returns a new Request given a method, URL, and
// optional body, with every other field set to its documented default.
//
// An empty method means GET. The URL must be an absolute http or https
// URL.
func NewRequestWithContext(ctx context.Context, method, url string, body Body) (*Request, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !ValidMethod(method) {
		return nil, fmt.Errorf("requests/request: invalid method %q", method)
	}
	u, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Request{
		ctx:            ctx,
		Method:         method,
		URL:            u,
		Body:           body,
		Charset:        DefaultCharset,
		Verify:         true,
		UserAgent:      DefaultUserAgent,
		Compress:       true,
		KeepAlive:      true,
		ConnectTimeout: DefaultTimeout,
		ReadTimeout:    DefaultTimeout,
		FollowRedirect: true,
	}, nil
}

// ParseURL parses an absolute http or https URL.
func ParseURL(url string) (*urlpkg.URL, error) {
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	return checkURL(u)
}

// ResolveReference resolves a redirect location, which may be absolute
// or relative, against base. The result must be an absolute http or
// https URL.
func ResolveReference(base *urlpkg.URL, location string) (*urlpkg.URL, error) {
	ref, err := urlpkg.Parse(location)
	if err != nil {
		return nil, err
	}
	return checkURL(base.ResolveReference(ref))
}

func checkURL(u *urlpkg.URL) (*urlpkg.URL, error) {
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("requests/request: unsupported protocol scheme %q", u.Scheme)
	}
	u.Host = removeEmptyPort(u.Host)
	if u.Hostname() == "" {
		return nil, fmt.Errorf("requests/request: no host in URL %q", u.String())
	}
	return u, nil
}

// Context returns the request's context. The returned context is
// always non-nil; it defaults to the background context.
func (r *Request) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of r with its context changed to
// ctx, which must be non-nil.
//
// The context bounds the entire execution including all redirect hops.
// Cancelling it closes the connection of the hop in flight.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	r2 := new(Request)
	*r2 = *r
	r2.ctx = ctx
	return r2
}

// WithSession returns a shallow copy of r bound to session s.
func (r *Request) WithSession(s *session.Session) *Request {
	r2 := new(Request)
	*r2 = *r
	r2.Session = s
	return r2
}

// AddCookie appends a request-level cookie.
func (r *Request) AddCookie(name, value string) {
	r.Cookies = append(r.Cookies, Param{Name: name, Value: value})
}

// SetBasicAuth sets the request's Basic Authentication credentials.
//
// With HTTP Basic Authentication the provided username and password
// are not encrypted.
func (r *Request) SetBasicAuth(username, password string) {
	r.BasicAuth = &BasicAuth{Username: username, Password: password}
}

// EffectiveCharset returns Charset, or DefaultCharset if Charset is
// empty.
func (r *Request) EffectiveCharset() string {
	if r.Charset == "" {
		return DefaultCharset
	}
	return r.Charset
}

// RedirectTo derives the request for a redirect hop to u.
//
// The derived request is a body-less GET which inherits from r the
// timeouts, basic authentication, user agent, compression preference,
// TLS verification settings, proxy, keep-alive preference, session and
// context. It never follows redirects itself. Custom headers and
// request-level cookies are not inherited.
func (r *Request) RedirectTo(u *urlpkg.URL) *Request {
	return &Request{
		ctx:            r.ctx,
		Method:         "GET",
		URL:            u,
		Proxy:          r.Proxy,
		Charset:        r.Charset,
		Verify:         r.Verify,
		Certs:          r.Certs,
		UserAgent:      r.UserAgent,
		Compress:       r.Compress,
		KeepAlive:      r.KeepAlive,
		ConnectTimeout: r.ConnectTimeout,
		ReadTimeout:    r.ReadTimeout,
		FollowRedirect: false,
		Session:        r.Session,
		BasicAuth:      r.BasicAuth,
	}
}

// MaxRedirects is the number of redirects a client follows before
// failing with ErrTooManyRedirects.
const MaxRedirects = 5

// IsRedirect reports whether status is a redirect status a client
// follows: 300, 301, 302, 303, 307 or 308.
func IsRedirect(status int) bool {
	switch status {
	case 300, 301, 302, 303, 307, 308:
		return true
	default:
		return false
	}
}

// ValidMethod reports whether method is a valid HTTP method token.
func ValidMethod(method string) bool {
	return method != "" && httpguts.ValidHeaderFieldName(method)
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
