// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core value types exchanged with the
requests client: Request (one logical HTTP request), Response (the raw
result of an exchange, owning its body stream and connection),
Execution (the state of one Request execution as it follows redirects),
and Error (the single error type every execution failure is reported
with).

Create a request and execute it with a client:

	r, err := request.NewRequest("GET", "https://example.com/", nil)
	...
	resp, err := client.Do(r)
	...
	defer resp.Close()

A request may be bound to a session so that cookies received by one
request are sent by the next:

	s := session.New()
	r = r.WithSession(s)

A Request is treated as immutable once handed to a client. Copy it
(WithContext, WithSession) rather than changing a request which may be
in flight.

Response bodies are streams. The caller must eventually call
Response.Close, or one of the helpers which consume the body (Bytes,
Text, JSON, JSONPath, WriteTo, Discard), to release the underlying
connection.

Every error returned by an execution is an *Error whose Kind tells
transport failures, protocol violations, redirect policy violations and
body decoding failures apart:

	if request.IsKind(err, request.KindRedirect) {
		...
	}
*/
package request
