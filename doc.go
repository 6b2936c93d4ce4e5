// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package requests provides a session-aware HTTP/1.1 client which follows
redirects, keeps cookies, and decodes compressed responses, within a
simple and familiar interface.

Create a Client to begin making requests.

	client := &requests.Client{}
	resp, err := client.Get("https://www.example.com")
	...
	resp, err := client.Post("https://www.example.com/upload",
		"application/json", &buf)
	...
	resp, err := client.PostForm("http://example.com/form",
		url.Values{"key": {"Value"}, "id": {"123"}})

Every response must be closed, either directly or by one of the
consuming helpers such as Text, JSON or Discard:

	text, err := resp.Text()

For control over a single request, create it with request.NewRequest
and execute it with Do:

	r, err := request.NewRequest("PUT", "https://example.com/widgets/1",
		request.JSONBody(widget))
	r.FollowRedirect = false
	r.Header.Add("If-Match", etag)
	resp, err := client.Do(r)

Requests executed by a Client without a session of their own share the
client's session, so cookies set by one response are sent with later
requests. To keep cookies apart, give each request its own session:

	r = r.WithSession(session.New())

To set defaults for every request the client creates, load them from
a file using package config:

	cfg, err := config.Load("requests.yaml")
	client := &requests.Client{Config: cfg}

By default a Client never retries. For retries, create a retry policy
using components from package retry:

	retryWaiter := retry.NewExpWaiter(250*time.Millisecond, 5*time.Second, time.Now())
	retryPolicy := retry.NewPolicy(retry.DefaultDecider, retryWaiter)
	client := &requests.Client{
		RetryPolicy: retryPolicy,
	}

To hook into the fine-grained details of the client's request execution
logic, install a handler into the appropriate handler chain:

	handlers := &requests.HandlerGroup{}
	handlers.PushBack(requests.BeforeHop, requests.HandlerFunc(
		func(_ requests.Event, e *request.Execution) {
			log.Printf("Hop %d to %s", e.Hop, e.HopRequest.URL)
		})
	)
	client := &requests.Client{
		Handlers: handlers,
	}

For structured logging with zap, use the ready-made handler group
returned by NewLogHandler.

Package requests provides basic interfaces for each method of the
client (Doer, Getter, Header, Poster, and FormPoster); a combined
interface that composes all the basic methods (Executor); and utility
functions for working with a Doer (Inflate, Get, Head, Post, and
PostForm).
*/
package requests
