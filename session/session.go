// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package session provides Session, the long-lived client state shared
// by every request a logical client issues, including each hop of a
// redirect chain.
package session

import (
	"sync"
	"time"

	"github.com/gogama/requests/cookie"
	"github.com/google/uuid"
)

// A Session holds state which outlives any single request. At present
// that state is a cookie store.
//
// Sessions are created by the caller and shared by reference. A Session
// is safe for concurrent use by multiple goroutines: concurrent
// requests sharing one Session may find and merge cookies at the same
// time without corrupting the store.
//
// The zero value is an empty session with a nil ID, ready to use. Use
// New to get a session with a random ID.
type Session struct {
	// ID uniquely identifies the session, for example to correlate log
	// records of requests made within it.
	ID uuid.UUID

	once    sync.Once
	cookies *cookie.Store
}

// New returns a new session with an empty cookie store.
func New() *Session {
	return &Session{
		ID:      uuid.New(),
		cookies: cookie.NewStore(),
	}
}

// NewWithStore returns a new session backed by an existing cookie
// store, which may be shared with other sessions or preloaded by the
// caller.
func NewWithStore(s *cookie.Store) *Session {
	if s == nil {
		panic("requests/session: nil cookie store")
	}
	return &Session{
		ID:      uuid.New(),
		cookies: s,
	}
}

// MatchedCookies returns the session cookies applicable to a request
// with the given scheme, host, and effective path.
func (s *Session) MatchedCookies(scheme, host, path string) []cookie.Cookie {
	return s.store().Match(scheme, host, path)
}

// UpdateCookies merges cookies received in a response into the
// session. A cookie with the same domain, path and name as a stored
// cookie replaces it.
func (s *Session) UpdateCookies(cookies []cookie.Cookie) {
	s.store().Merge(cookies)
}

// Cookies returns all unexpired cookies held by the session.
func (s *Session) Cookies() []cookie.Cookie {
	return s.store().All()
}

// ClearCookies discards every cookie held by the session.
func (s *Session) ClearCookies() {
	s.store().Clear()
}

// Now returns the current time according to the session's clock. It
// is the time used to compute the expiry of cookies received in
// responses.
func (s *Session) Now() time.Time {
	if s.store().Now != nil {
		return s.store().Now()
	}
	return time.Now()
}

// SetClock replaces the clock the session uses to expire cookies. It
// must be called before the session is shared.
func (s *Session) SetClock(now func() time.Time) {
	s.store().Now = now
}

func (s *Session) store() *cookie.Store {
	s.once.Do(func() {
		if s.cookies == nil {
			s.cookies = cookie.NewStore()
		}
	})
	return s.cookies
}
