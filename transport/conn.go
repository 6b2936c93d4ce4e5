// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http/httputil"
	"strconv"
	"strings"
	"sync"

	"github.com/gogama/requests/cookie"
	"github.com/gogama/requests/request"
	"golang.org/x/net/http/httpguts"
	"golang.org/x/text/encoding"
)

var (
	errNotConnected     = errors.New("requests/transport: not connected")
	errAlreadyConnected = errors.New("requests/transport: already connected")
)

// A Conn is a connection carrying a single HTTP/1.1 exchange for one
// request hop.
//
// A Conn is not safe for concurrent use, except that Close may be
// called at any time.
type Conn struct {
	req    *request.Request
	method string
	header request.Headers
	enc    encoding.Encoding

	conn         net.Conn
	br           *bufio.Reader
	absoluteForm bool
	stop         func() bool

	closeOnce sync.Once
	closed    bool
	closeErr  error
}

// Open validates r and computes the header fields to send, without
// touching the network.
//
// Header fields are computed in this order: Content-Type (with a
// charset parameter if the body advertises one), User-Agent,
// Accept-Encoding, Authorization, and Cookie. Custom headers from
// r.Header then replace any computed field of the same name. Finally
// "Connection: close" is set if r.KeepAlive is false.
//
// Cookie lists the request cookies of r followed by the cookies of
// r.Session matching the URL's scheme, host, and effective path.
//
// An invalid method, header field, or charset is reported as a protocol
// error.
func Open(r *request.Request) (*Conn, error) {
	method := r.Method
	if method == "" {
		method = "GET"
	}
	c := &Conn{req: r, method: method}
	if r.URL == nil {
		return nil, request.NewError(request.KindProtocol, method, "", errors.New("requests/transport: nil URL"))
	}
	if !request.ValidMethod(method) {
		return nil, c.error(request.KindProtocol, fmt.Errorf("requests/transport: invalid method %q", method))
	}
	if r.Body != nil {
		enc, err := request.LookupCharset(r.EffectiveCharset())
		if err != nil {
			return nil, c.error(request.KindProtocol, err)
		}
		c.enc = enc
	}
	h, err := requestHeader(r)
	if err != nil {
		return nil, c.error(request.KindProtocol, err)
	}
	c.header = h
	return c, nil
}

// framing header fields are always computed when the body is sent.
var framing = map[string]bool{
	"host":              true,
	"content-length":    true,
	"transfer-encoding": true,
}

func requestHeader(r *request.Request) (request.Headers, error) {
	var h request.Headers
	if r.Body != nil {
		if ct := r.Body.ContentType(); ct != "" {
			if r.Body.IncludeCharset() {
				ct += "; charset=" + strings.ToLower(r.EffectiveCharset())
			}
			h.Add("Content-Type", ct)
		}
	}
	if r.UserAgent != "" {
		h.Add("User-Agent", r.UserAgent)
	}
	if r.Compress {
		h.Add("Accept-Encoding", "gzip, deflate")
	}
	if r.BasicAuth != nil {
		h.Add("Authorization", r.BasicAuth.Encode())
	}
	if v := cookieHeader(r); v != "" {
		h.Add("Cookie", v)
	}

	for _, p := range r.Header {
		if !httpguts.ValidHeaderFieldName(p.Name) {
			return nil, fmt.Errorf("requests/transport: invalid header field name %q", p.Name)
		}
		h.Del(p.Name)
	}
	for _, p := range r.Header {
		if !framing[strings.ToLower(p.Name)] {
			h.Add(p.Name, p.Value)
		}
	}

	if !r.KeepAlive {
		h.Set("Connection", "close")
	}

	for _, p := range h {
		if !httpguts.ValidHeaderFieldValue(p.Value) {
			return nil, fmt.Errorf("requests/transport: invalid value for header field %q", p.Name)
		}
	}
	return h, nil
}

func cookieHeader(r *request.Request) string {
	var b strings.Builder
	add := func(name, value string) {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(value)
	}
	for _, p := range r.Cookies {
		add(p.Name, p.Value)
	}
	if r.Session != nil {
		u := r.URL
		matched := r.Session.MatchedCookies(strings.ToLower(u.Scheme), u.Hostname(), cookie.EffectivePath(u.Path))
		for _, c := range matched {
			add(c.Name, c.Value)
		}
	}
	return b.String()
}

// Header returns the header fields computed by Open, excluding Host and
// the body framing fields written by SendBody.
func (c *Conn) Header() request.Headers {
	return c.header.Clone()
}

// Connect establishes the connection to the request URL, through the
// request proxy if one is set, and completes any TLS handshake. The
// request's ConnectTimeout bounds the whole operation.
//
// Once connected, cancelling the request context closes the connection.
func (c *Conn) Connect() error {
	if c.closed {
		return c.error(request.KindTransport, net.ErrClosed)
	}
	if c.conn != nil {
		return c.error(request.KindTransport, errAlreadyConnected)
	}

	ctx := c.req.Context()
	dialCtx := ctx
	if c.req.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.req.ConnectTimeout)
		defer cancel()
	}

	conn, absoluteForm, err := dial(dialCtx, c.req)
	if err != nil {
		return c.error(request.KindTransport, err)
	}
	c.conn = &deadlineConn{Conn: conn, timeout: c.req.ReadTimeout}
	c.br = bufio.NewReader(c.conn)
	c.absoluteForm = absoluteForm
	c.stop = context.AfterFunc(ctx, func() { _ = conn.Close() })
	return nil
}

// SendBody writes the request head and then the request body, if any,
// encoded in the request charset.
//
// A body implementing request.Sized is sent with a Content-Length
// header; any other body is sent with chunked transfer coding. The
// caller must Close the connection if SendBody fails.
func (c *Conn) SendBody() error {
	if c.conn == nil {
		return c.error(request.KindTransport, errNotConnected)
	}

	body := c.req.Body
	size := int64(-1)
	if s, ok := body.(request.Sized); ok {
		size = s.Len()
	}

	bw := bufio.NewWriter(c.conn)
	c.writeHead(bw, body != nil, size)
	var err error
	switch {
	case body == nil:
	case size >= 0:
		cw := &countingWriter{w: bw}
		err = body.WriteBody(cw, c.enc)
		if err == nil && cw.n != size {
			err = fmt.Errorf("requests/transport: body length %d does not match declared length %d", cw.n, size)
		}
	default:
		cw := httputil.NewChunkedWriter(bw)
		err = body.WriteBody(cw, c.enc)
		if err == nil {
			err = cw.Close()
		}
		if err == nil {
			_, err = bw.WriteString("\r\n")
		}
	}
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		return c.error(request.KindTransport, err)
	}
	return nil
}

// writeHead buffers the request line and header. Write errors surface
// when the buffer is flushed.
func (c *Conn) writeHead(w *bufio.Writer, hasBody bool, size int64) {
	u := c.req.URL
	target := u.RequestURI()
	if c.absoluteForm {
		abs := *u
		abs.User = nil
		abs.Fragment = ""
		abs.RawFragment = ""
		target = abs.String()
	}
	w.WriteString(c.method)
	w.WriteByte(' ')
	w.WriteString(target)
	w.WriteString(" HTTP/1.1\r\n")

	host := u.Host
	if v, ok := c.req.Header.First("Host"); ok {
		host = v
	}
	writeField(w, "Host", host)
	for _, p := range c.header {
		writeField(w, p.Name, p.Value)
	}
	switch {
	case hasBody && size >= 0:
		writeField(w, "Content-Length", strconv.FormatInt(size, 10))
	case hasBody:
		writeField(w, "Transfer-Encoding", "chunked")
	case c.method == "POST" || c.method == "PUT" || c.method == "PATCH":
		writeField(w, "Content-Length", "0")
	}
	if c.absoluteForm {
		if auth := proxyAuthorization(c.req.Proxy); auth != "" {
			writeField(w, "Proxy-Authorization", auth)
		}
	}
	w.WriteString("\r\n")
}

func writeField(w *bufio.Writer, name, value string) {
	w.WriteString(name)
	w.WriteString(": ")
	w.WriteString(value)
	w.WriteString("\r\n")
}

// Close closes the connection. It is safe to call Close more than
// once, and before Connect.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closed = true
		if c.stop != nil {
			c.stop()
		}
		if c.conn != nil {
			c.closeErr = c.conn.Close()
		}
	})
	return c.closeErr
}

// error wraps err as a request error of the given kind. If the request
// context is done, its error replaces err, since a cancelled context is
// why the connection failed.
func (c *Conn) error(kind request.Kind, err error) error {
	if ctxErr := c.req.Context().Err(); ctxErr != nil && kind == request.KindTransport {
		err = ctxErr
	}
	var url string
	if c.req.URL != nil {
		url = c.req.URL.Redacted()
	}
	return request.NewError(kind, c.method, url, err)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.n += int64(n)
	return n, err
}

// Exchange performs a single HTTP exchange for r: Open, Connect,
// SendBody, and ReadResponse. It never follows redirects.
//
// On success the returned Response owns the connection. On failure the
// connection has already been closed.
func Exchange(r *request.Request) (*request.Response, error) {
	c, err := Open(r)
	if err != nil {
		return nil, err
	}
	if err = c.Connect(); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SendBody(); err != nil {
		_ = c.Close()
		return nil, err
	}
	resp, err := c.ReadResponse(r.Session, r.Compress, c.method, r.URL.Hostname(), cookie.EffectivePath(r.URL.Path))
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return resp, nil
}
