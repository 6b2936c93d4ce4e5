// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package cookie implements the client side of HTTP state management:
parsing Set-Cookie response headers into Cookie values, deciding which
stored cookies apply to an outgoing request, and a Store that keeps
cookies keyed by domain, path, and name.

Parse a Set-Cookie header received from a host while requesting a
path:

	c, err := cookie.Parse("example.com", cookie.EffectivePath("/a/b"), header, time.Now())

Keep cookies in a Store and find the ones to send:

	var s cookie.Store
	s.Merge([]cookie.Cookie{c})
	matched := s.Match("https", "www.example.com", "/a/")

A Store is safe for concurrent use by multiple goroutines. It never
persists cookies; persistence is the business of the caller.
*/
package cookie
