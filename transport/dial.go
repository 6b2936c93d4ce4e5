// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/requests/request"
	"golang.org/x/net/proxy"
)

var defaultPorts = map[string]string{
	"http": "80", "https": "443", "socks5": "1080", "socks5h": "1080",
}

var zeroDialer net.Dialer

// hostPort returns the host:port address of u, using the default port
// for its scheme if u names none.
func hostPort(u *url.URL) string {
	port := u.Port()
	if port == "" {
		port = defaultPorts[strings.ToLower(u.Scheme)]
	}
	return net.JoinHostPort(u.Hostname(), port)
}

func isHTTPS(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, "https")
}

// dial opens a connection to r.URL, through r.Proxy if one is set, and
// completes the TLS handshake if the target is https. The returned
// flag reports whether requests on the connection must be written in
// absolute-form because it leads to an HTTP proxy rather than to the
// target itself.
func dial(ctx context.Context, r *request.Request) (conn net.Conn, absoluteForm bool, err error) {
	target := r.URL
	switch {
	case r.Proxy == nil:
		conn, err = zeroDialer.DialContext(ctx, "tcp", hostPort(target))
	case isSOCKS(r.Proxy):
		conn, err = dialSOCKS(ctx, r.Proxy, hostPort(target))
	case isHTTPProxy(r.Proxy):
		conn, err = dialHTTPProxy(ctx, r)
		absoluteForm = !isHTTPS(target)
	default:
		err = fmt.Errorf("requests/transport: unsupported proxy scheme %q", r.Proxy.Scheme)
	}
	if err != nil {
		return nil, false, err
	}

	if isHTTPS(target) {
		tc := tls.Client(conn, TLSConfig(r, target.Hostname()))
		if err = tc.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, false, err
		}
		conn = tc
	}
	return conn, absoluteForm, nil
}

func isSOCKS(p *url.URL) bool {
	s := strings.ToLower(p.Scheme)
	return s == "socks5" || s == "socks5h"
}

func isHTTPProxy(p *url.URL) bool {
	s := strings.ToLower(p.Scheme)
	return s == "http" || s == "https"
}

func dialSOCKS(ctx context.Context, p *url.URL, addr string) (net.Conn, error) {
	d, err := proxy.FromURL(p, &net.Dialer{})
	if err != nil {
		return nil, err
	}
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, "tcp", addr)
	}
	return d.Dial("tcp", addr)
}

// dialHTTPProxy connects to an HTTP or HTTPS proxy. For https targets
// it also establishes a CONNECT tunnel to the target, so the returned
// connection is ready for the target's TLS handshake.
func dialHTTPProxy(ctx context.Context, r *request.Request) (net.Conn, error) {
	p := r.Proxy
	conn, err := zeroDialer.DialContext(ctx, "tcp", hostPort(p))
	if err != nil {
		return nil, err
	}

	if isHTTPS(p) {
		tc := tls.Client(conn, proxyTLSConfig(r, p.Hostname()))
		if err = tc.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, err
		}
		conn = tc
	}

	if !isHTTPS(r.URL) {
		return conn, nil
	}
	if err = connectTunnel(ctx, conn, p, hostPort(r.URL)); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// connectTunnel asks the proxy on conn to open a tunnel to addr.
func connectTunnel(ctx context.Context, conn net.Conn, p *url.URL, addr string) error {
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
		defer func() { _ = conn.SetDeadline(time.Time{}) }()
	}

	var b strings.Builder
	b.WriteString("CONNECT " + addr + " HTTP/1.1\r\n")
	b.WriteString("Host: " + addr + "\r\n")
	if auth := proxyAuthorization(p); auth != "" {
		b.WriteString("Proxy-Authorization: " + auth + "\r\n")
	}
	b.WriteString("\r\n")
	if _, err := io.WriteString(conn, b.String()); err != nil {
		return err
	}

	br := bufio.NewReader(conn)
	tp := textproto.NewReader(br)
	line, code, err := readStatusLine(tp)
	if err != nil {
		return err
	}
	if _, err = readHeader(tp); err != nil {
		return err
	}
	if code != 200 {
		return fmt.Errorf("requests/transport: proxy refused CONNECT to %s: %s", addr, line)
	}
	if br.Buffered() > 0 {
		return fmt.Errorf("requests/transport: unexpected data from proxy after CONNECT to %s", addr)
	}
	return nil
}

// proxyAuthorization returns the Proxy-Authorization header value for
// the credentials in the userinfo of p, or the empty string if it has
// none.
func proxyAuthorization(p *url.URL) string {
	if p.User == nil {
		return ""
	}
	password, _ := p.User.Password()
	a := request.BasicAuth{Username: p.User.Username(), Password: password}
	return a.Encode()
}

// deadlineConn is a net.Conn which pushes its read deadline forward
// before every read, so that timeout bounds each individual read
// rather than the whole exchange.
type deadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(p)
}
