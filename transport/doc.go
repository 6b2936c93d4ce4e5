// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport performs single HTTP/1.1 request/response exchanges
over a dedicated connection.

A Conn is the connection abstraction used for one hop of a request. Its
lifecycle is:

	c, err := transport.Open(r)          // validate, compute headers
	err = c.Connect()                    // dial, proxy, TLS
	err = c.SendBody()                   // write request head and body
	resp, err := c.ReadResponse(sess, compress, method, host, path)

The returned Response owns the connection; closing the response closes
the connection. On any error before that point the caller must call
Close. Exchange runs the whole lifecycle and releases the connection on
every failure path.

Connections are never reused and redirects are never followed at this
layer.

Dialing supports direct connections, HTTP and HTTPS proxies (absolute-
form requests for plain http targets, CONNECT tunnels for https
targets) and SOCKS5 proxies.
*/
package transport
