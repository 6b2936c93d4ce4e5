// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cookie

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// A Cookie is an HTTP cookie as kept by a client.
//
// The identity of a cookie for storage purposes is the triple
// (Domain, Path, Name). Two cookies with the same identity are the
// same cookie, and the later one replaces the earlier.
type Cookie struct {
	Name  string
	Value string

	// Domain is the lower-case host or domain the cookie belongs to,
	// without a leading dot.
	Domain string

	// Path is the path prefix the cookie applies to. It always starts
	// with a slash.
	Path string

	// HostOnly is true if the cookie was set without a Domain
	// attribute, and is therefore sent only to exactly Domain and not
	// to its subdomains.
	HostOnly bool

	// Secure cookies are only sent over https.
	Secure bool

	HTTPOnly bool

	// Expires is the expiry time. The zero value means a session
	// cookie which never expires while it is held in memory.
	Expires time.Time

	// Created is the time the cookie was first received.
	Created time.Time
}

// Expired reports whether the cookie has expired at time now.
func (c *Cookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

// Matches reports whether the cookie should be sent with a request
// for the given scheme, host and effective path at time now.
func (c *Cookie) Matches(scheme, host, path string, now time.Time) bool {
	if c.Expired(now) {
		return false
	}
	if c.Secure && !strings.EqualFold(scheme, "https") {
		return false
	}
	host = canonicalHost(host)
	if c.HostOnly {
		if host != c.Domain {
			return false
		}
	} else if !domainMatch(host, c.Domain) {
		return false
	}
	return PathMatch(path, c.Path)
}

// String returns the cookie in the name=value form used within a
// Cookie request header.
func (c *Cookie) String() string {
	return c.Name + "=" + c.Value
}

var (
	errDomainMismatch = errors.New("requests/cookie: domain attribute does not match host")
	errPublicSuffix   = errors.New("requests/cookie: domain attribute is a public suffix")
)

// Parse parses the value of a single Set-Cookie header received from
// host in response to a request whose effective path (see
// EffectivePath) is path.
//
// Without a Domain attribute the cookie is bound to host and marked
// HostOnly. Without a valid Path attribute it is bound to path. A
// Domain attribute that does not domain-match host, or that names a
// public suffix other than host itself, is rejected with an error.
//
// Max-Age takes precedence over Expires. A cookie whose Max-Age is zero
// or negative is returned already expired, so that merging it into a
// Store deletes any stored cookie with the same identity.
func Parse(host, path, header string, now time.Time) (Cookie, error) {
	hc, err := http.ParseSetCookie(header)
	if err != nil {
		return Cookie{}, fmt.Errorf("requests/cookie: %w", err)
	}

	host = canonicalHost(host)
	domain, hostOnly, err := bindDomain(host, hc.Domain)
	if err != nil {
		return Cookie{}, err
	}

	c := Cookie{
		Name:     hc.Name,
		Value:    hc.Value,
		Domain:   domain,
		Path:     hc.Path,
		HostOnly: hostOnly,
		Secure:   hc.Secure,
		HTTPOnly: hc.HttpOnly,
		Created:  now,
	}
	if c.Path == "" || c.Path[0] != '/' {
		c.Path = path
	}

	switch {
	case hc.MaxAge < 0:
		c.Expires = time.Unix(1, 0)
	case hc.MaxAge > 0:
		c.Expires = now.Add(time.Duration(hc.MaxAge) * time.Second)
	case !hc.Expires.IsZero():
		c.Expires = hc.Expires
	}

	return c, nil
}

// EffectivePath returns the path used to scope cookies for a request
// to path: path truncated after its last slash. A path with no slash,
// including the empty path, yields "/".
//
//	EffectivePath("")       // "/"
//	EffectivePath("/")      // "/"
//	EffectivePath("/a/b")   // "/a/"
//	EffectivePath("/a/b/")  // "/a/b/"
func EffectivePath(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "/"
	}
	return path[:i+1]
}

// PathMatch implements path-match from RFC 6265 section 5.1.4. It
// reports whether a request path is within cookiePath.
func PathMatch(path, cookiePath string) bool {
	if cookiePath == "" {
		cookiePath = "/"
	}
	if path == cookiePath {
		return true
	}
	if !strings.HasPrefix(path, cookiePath) {
		return false
	}
	return cookiePath[len(cookiePath)-1] == '/' || path[len(cookiePath)] == '/'
}

func domainMatch(host, domain string) bool {
	if host == domain {
		return true
	}
	if isIP(host) {
		return false
	}
	return strings.HasSuffix(host, domain) && host[len(host)-len(domain)-1] == '.'
}

func bindDomain(host, attr string) (string, bool, error) {
	d := strings.ToLower(strings.TrimPrefix(attr, "."))
	if d == "" {
		return host, true, nil
	}
	if isIP(host) {
		if d != host {
			return "", false, errDomainMismatch
		}
		return host, true, nil
	}
	// A public suffix may only be used as the domain of its own host,
	// and then only as a host-only cookie.
	if ps, _ := publicsuffix.PublicSuffix(d); ps == d {
		if d == host {
			return host, true, nil
		}
		return "", false, errPublicSuffix
	}
	if !domainMatch(host, d) {
		return "", false, errDomainMismatch
	}
	return d, false, nil
}

func canonicalHost(host string) string {
	host = strings.ToLower(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(strings.Trim(host, "[]"), ".")
}

func isIP(host string) bool {
	return net.ParseIP(host) != nil
}
