// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/gogama/requests/cookie"
	"github.com/gogama/requests/request"
	"github.com/gogama/requests/session"
	"golang.org/x/net/http/httpguts"
)

// A protocolError is a response which does not follow HTTP/1.1 syntax.
type protocolError string

func (e protocolError) Error() string {
	return "requests/transport: " + string(e)
}

func kindOf(err error) request.Kind {
	var pe protocolError
	if errors.As(err, &pe) || errors.Is(err, request.ErrMissingStatusLine) {
		return request.KindProtocol
	}
	return request.KindTransport
}

// ReadResponse reads the response to the request sent by SendBody.
//
// Interim 1xx responses other than 101 Switching Protocols are skipped.
// Each Set-Cookie field is parsed into a cookie bound to host and the
// effective path path; fields which cannot be parsed, or which try to
// set a cookie for a foreign or public suffix domain, are ignored. The
// cookies are merged into sess, if it is not nil, before ReadResponse
// returns.
//
// Responses to HEAD requests, and responses with status 1xx, 204, or
// 304, have an empty body. If compress is true the body is decoded as
// described for DecodeBody.
//
// The body is read lazily. The returned Response owns the connection:
// closing it, or its body, closes the connection.
func (c *Conn) ReadResponse(sess *session.Session, compress bool, method, host, path string) (*request.Response, error) {
	if c.br == nil {
		return nil, c.error(request.KindTransport, errNotConnected)
	}

	tp := textproto.NewReader(c.br)
	var (
		line   string
		code   int
		header request.Headers
		err    error
	)
	for {
		line, code, err = readStatusLine(tp)
		if err != nil {
			return nil, c.error(kindOf(err), err)
		}
		header, err = readHeader(tp)
		if err != nil {
			return nil, c.error(kindOf(err), err)
		}
		if code >= 200 || code == 101 {
			break
		}
	}

	now := time.Now()
	if sess != nil {
		now = sess.Now()
	}
	cookies := setCookies(header.Values("Set-Cookie"), host, path, now)

	body, kind, err := c.body(method, code, header)
	if err != nil {
		return nil, c.error(kindOf(err), err)
	}
	if compress && kind == request.BodyRaw {
		decoded, ok, err := DecodeBody(code, method, header, body)
		if err != nil {
			return nil, c.error(request.KindDecoding, err)
		}
		if ok {
			body = &bodyReader{c: c, r: decoded, close: decoded.Close, kind: request.KindDecoding}
			kind = request.BodyDecoded
		}
	}

	if sess != nil && len(cookies) > 0 {
		sess.UpdateCookies(cookies)
	}

	return &request.Response{
		StatusCode: code,
		StatusLine: line,
		Header:     header,
		Cookies:    cookies,
		Body:       body,
		BodyKind:   kind,
		URL:        c.req.URL,
		Method:     method,
		Conn:       c,
	}, nil
}

// setCookies parses Set-Cookie field values, skipping malformed ones.
// A cookie repeating the identity of an earlier one replaces it in
// place.
func setCookies(values []string, host, path string, now time.Time) []cookie.Cookie {
	var cookies []cookie.Cookie
	index := make(map[[3]string]int, len(values))
	for _, v := range values {
		ck, err := cookie.Parse(host, path, v, now)
		if err != nil {
			continue
		}
		id := [3]string{ck.Domain, ck.Path, ck.Name}
		if i, ok := index[id]; ok {
			cookies[i] = ck
			continue
		}
		index[id] = len(cookies)
		cookies = append(cookies, ck)
	}
	return cookies
}

// body frames the response body following RFC 9112 section 6.3.
func (c *Conn) body(method string, code int, header request.Headers) (io.ReadCloser, request.BodyKind, error) {
	empty := &bodyReader{c: c, r: http.NoBody, close: c.Close, kind: request.KindTransport}
	if method == "HEAD" || code < 200 || code == 204 || code == 304 {
		return empty, request.BodyEmpty, nil
	}

	var r io.Reader
	if isChunked(header) {
		r = httputil.NewChunkedReader(c.br)
	} else if values := header.Values("Content-Length"); len(values) > 0 {
		n, err := contentLength(values)
		if err != nil {
			return nil, request.BodyEmpty, err
		}
		if n == 0 {
			return empty, request.BodyEmpty, nil
		}
		r = &lengthReader{r: c.br, n: n}
	} else {
		r = c.br
	}
	return &bodyReader{c: c, r: r, close: c.Close, kind: request.KindTransport}, request.BodyRaw, nil
}

func isChunked(header request.Headers) bool {
	values := header.Values("Transfer-Encoding")
	if len(values) == 0 {
		return false
	}
	codings := strings.Split(values[len(values)-1], ",")
	return strings.EqualFold(strings.TrimSpace(codings[len(codings)-1]), "chunked")
}

func contentLength(values []string) (int64, error) {
	first := textproto.TrimString(values[0])
	for _, v := range values[1:] {
		if textproto.TrimString(v) != first {
			return 0, protocolError(fmt.Sprintf("conflicting Content-Length values %q", values))
		}
	}
	n, err := strconv.ParseInt(first, 10, 64)
	if err != nil || n < 0 {
		return 0, protocolError(fmt.Sprintf("invalid Content-Length %q", first))
	}
	return n, nil
}

// readStatusLine reads and parses an HTTP/1.x status line. A connection
// closed before any status line is reported as ErrMissingStatusLine.
func readStatusLine(tp *textproto.Reader) (line string, code int, err error) {
	line, err = tp.ReadLine()
	if err != nil {
		if err == io.EOF {
			err = request.ErrMissingStatusLine
		}
		return "", 0, err
	}
	proto, status, ok := strings.Cut(line, " ")
	if !ok || !strings.HasPrefix(proto, "HTTP/") {
		return "", 0, protocolError(fmt.Sprintf("malformed status line %q", line))
	}
	codeText, _, _ := strings.Cut(strings.TrimLeft(status, " "), " ")
	if len(codeText) != 3 {
		return "", 0, protocolError(fmt.Sprintf("malformed status code %q", codeText))
	}
	code, err = strconv.Atoi(codeText)
	if err != nil || code < 100 {
		return "", 0, protocolError(fmt.Sprintf("malformed status code %q", codeText))
	}
	return line, code, nil
}

// readHeader reads header fields up to and including the blank line
// ending the header. Obsolete line folding is unfolded into a single
// space. Field order and repeated names are kept.
func readHeader(tp *textproto.Reader) (request.Headers, error) {
	var h request.Headers
	for {
		line, err := tp.ReadContinuedLine()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if line == "" {
			return h, nil
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || !httpguts.ValidHeaderFieldName(name) {
			return nil, protocolError(fmt.Sprintf("malformed header line %q", line))
		}
		h.Add(name, textproto.TrimString(value))
	}
}

// bodyReader is the body stream of a response. Read errors other than
// io.EOF are reported as request errors of its kind, and closing it
// closes the connection.
type bodyReader struct {
	c     *Conn
	r     io.Reader
	close func() error
	kind  request.Kind
}

func (b *bodyReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && err != io.EOF {
		err = b.c.error(b.kind, err)
	}
	return n, err
}

func (b *bodyReader) Close() error {
	return b.close()
}

// lengthReader reads exactly n bytes, reporting io.ErrUnexpectedEOF if
// the stream ends early.
type lengthReader struct {
	r io.Reader
	n int64
}

func (l *lengthReader) Read(p []byte) (int, error) {
	if l.n <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > l.n {
		p = p[:l.n]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if err == io.EOF && l.n > 0 {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}
