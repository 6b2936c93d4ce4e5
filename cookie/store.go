// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cookie

import (
	"sort"
	"strings"
	"sync"
	"time"
)

type key struct {
	domain, path, name string
}

type entry struct {
	cookie Cookie
	seq    uint64
}

// A Store holds cookies keyed by (Domain, Path, Name). The zero value
// is an empty store ready to use.
//
// A Store is safe for concurrent use by multiple goroutines. Each
// method call is atomic with respect to the others; no atomicity is
// provided across calls.
type Store struct {
	// Now returns the current time. If nil, time.Now is used.
	Now func() time.Time

	mu      sync.Mutex
	entries map[key]*entry
	seq     uint64
}

// NewStore returns a new, empty Store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Match returns the cookies applicable to a request for the given
// scheme, host and effective path. Cookies with longer paths come
// first; cookies with equal path lengths are ordered by creation.
//
// Expired cookies are never returned, and are evicted from the store.
func (s *Store) Match(scheme, host, path string) []Cookie {
	now := s.now()

	s.mu.Lock()
	var matched []*entry
	for k, e := range s.entries {
		if e.cookie.Expired(now) {
			delete(s.entries, k)
			continue
		}
		if e.cookie.Matches(scheme, host, path, now) {
			matched = append(matched, e)
		}
	}
	cookies := sortedCookies(matched)
	s.mu.Unlock()

	return cookies
}

// Merge stores cookies, replacing any stored cookie with the same
// identity. The creation time of a replaced cookie is kept. A cookie
// which is already expired removes the stored cookie with its identity
// and is not itself stored. A cookie whose Path is empty or does not
// begin with a slash is stored with Path "/".
//
// Merging the same cookies again has no further effect.
func (s *Store) Merge(cookies []Cookie) {
	if len(cookies) == 0 {
		return
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[key]*entry)
	}
	for i := range cookies {
		c := cookies[i]
		if !strings.HasPrefix(c.Path, "/") {
			c.Path = "/"
		}
		k := key{c.Domain, c.Path, c.Name}
		if c.Expired(now) {
			delete(s.entries, k)
			continue
		}
		if old, ok := s.entries[k]; ok {
			c.Created = old.cookie.Created
			old.cookie = c
			continue
		}
		s.seq++
		s.entries[k] = &entry{cookie: c, seq: s.seq}
	}
}

// All returns every unexpired cookie in the store, ordered as Match
// orders them.
func (s *Store) All() []Cookie {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.cookie.Expired(now) {
			all = append(all, e)
		}
	}
	return sortedCookies(all)
}

// Len returns the number of cookies held, including any expired
// cookies not yet evicted.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear removes every cookie.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}

func sortedCookies(entries []*entry) []Cookie {
	if len(entries) == 0 {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if len(a.cookie.Path) != len(b.cookie.Path) {
			return len(a.cookie.Path) > len(b.cookie.Path)
		}
		return a.seq < b.seq
	})
	cookies := make([]Cookie, len(entries))
	for i, e := range entries {
		cookies[i] = e.cookie
	}
	return cookies
}
