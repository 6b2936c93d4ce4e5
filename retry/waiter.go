// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gogama/requests/request"
)

// A Waiter says how long requests.Client sleeps before starting the
// next attempt of an execution. It is only consulted after the
// Decider of the same policy has decided to retry, and it sees the
// execution as the failed attempt left it: the final response of the
// redirect chain, if any, is still available in e.Response.
//
// Implementations of Waiter must be safe for concurrent use by multiple
// goroutines.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// The WaiterFunc type is an adapter to allow the use of ordinary
// functions as waiters.
type WaiterFunc func(e *request.Execution) time.Duration

// Wait calls f(e).
func (f WaiterFunc) Wait(e *request.Execution) time.Duration {
	return f(e)
}

// DefaultRetryAfterMax is the longest wait DefaultWaiter takes from a
// Retry-After header.
const DefaultRetryAfterMax = 10 * time.Second

// DefaultWaiter is the default retry wait policy. If the failed
// attempt ended with a 429 or 503 response carrying a Retry-After
// header, it waits as the server asked, up to DefaultRetryAfterMax.
// Otherwise it uses a jittered exponential backoff from 50 milliseconds
// up to 1 second.
var DefaultWaiter = NewRetryAfterWaiter(
	NewExpWaiter(50*time.Millisecond, 1*time.Second, time.Now()),
	DefaultRetryAfterMax,
)

// NewFixedWaiter returns a Waiter which always waits d.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *request.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter returns a Waiter whose wait ceiling doubles with every
// attempt, starting at base and never exceeding max:
//
//	ceil := min(base * 2**e.Attempt, max)
//
// Base must be positive and max must be at least base.
//
// If jitter is nil, the waiter waits exactly ceil. Otherwise it waits a
// random duration in [0, ceil), the "Full Jitter" scheme of
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
// The randomness comes from jitter, which is either a seed (time.Time,
// int or int64) or a random source (rand.Source or *rand.Rand).
func NewExpWaiter(base, max time.Duration, jitter interface{}) Waiter {
	if base < 1 {
		panic("requests/retry: base must be positive")
	}
	if max < base {
		panic("requests/retry: max must be at least base")
	}
	return &expWaiter{
		base: base,
		max:  max,
		rand: newJitter(jitter),
	}
}

type expWaiter struct {
	base, max time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

func (w *expWaiter) Wait(e *request.Execution) time.Duration {
	n := e.Attempt
	if n < 0 {
		n = 0
	}
	ceil := w.max
	if n < 63 && w.base <= w.max>>uint(n) {
		ceil = w.base << uint(n)
	}
	if w.rand == nil {
		return ceil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Duration(w.rand.Int63n(int64(ceil)))
}

func newJitter(jitter interface{}) *rand.Rand {
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		return rand.New(rand.NewSource(j.UnixNano()))
	case int:
		return rand.New(rand.NewSource(int64(j)))
	case int64:
		return rand.New(rand.NewSource(j))
	case *rand.Rand:
		if j == nil {
			panic("requests/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		return rand.New(j)
	default:
		panic("requests/retry: invalid jitter type")
	}
}

// NewRetryAfterWaiter returns a Waiter which honours the Retry-After
// header of a 429 (Too Many Requests) or 503 (Service Unavailable)
// final response, capping the wait at max. When the attempt ended
// without such a response, or the header is absent or malformed, the
// fallback waiter decides.
//
// Max must be positive.
func NewRetryAfterWaiter(fallback Waiter, max time.Duration) Waiter {
	if fallback == nil {
		panic("requests/retry: nil fallback waiter")
	}
	if max < 1 {
		panic("requests/retry: max must be positive")
	}
	return &retryAfterWaiter{
		fallback: fallback,
		max:      max,
		now:      time.Now,
	}
}

type retryAfterWaiter struct {
	fallback Waiter
	max      time.Duration
	now      func() time.Time
}

func (w *retryAfterWaiter) Wait(e *request.Execution) time.Duration {
	d, ok := retryAfter(e, w.now())
	if !ok {
		return w.fallback.Wait(e)
	}
	if d > w.max {
		return w.max
	}
	return d
}

// retryAfter returns the wait requested by the Retry-After header of
// the execution's final response. The header is either a number of
// seconds or an HTTP date; a date in the past means no wait.
func retryAfter(e *request.Execution, now time.Time) (time.Duration, bool) {
	resp := e.Response
	if resp == nil {
		return 0, false
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return 0, false
	}
	v, ok := resp.First("Retry-After")
	if !ok {
		return 0, false
	}
	v = strings.TrimSpace(v)
	if secs, err := strconv.ParseInt(v, 10, 32); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return 0, false
	}
	if d := t.Sub(now); d > 0 {
		return d, true
	}
	return 0, true
}
