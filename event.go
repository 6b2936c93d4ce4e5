// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package requests

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// request execution starts.
	//
	// When Client fires BeforeExecutionStart, the execution is
	// non-nil but the only field that has been set is the request.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// attempt to execute the request. An attempt starts at the original
	// URL and follows any redirects. There is only one attempt unless
	// the Client has a retry policy.
	BeforeAttempt
	// BeforeHop identifies the event that occurs before each hop of an
	// attempt: the original request, and each redirect followed.
	//
	// When Client fires BeforeHop, the execution's HopRequest field is
	// set to the request that WILL BE sent, and the last element of its
	// Trail is that request's URL. Handlers must not modify HopRequest.
	BeforeHop
	// AfterHop identifies the event that occurs after each hop, whether
	// it concluded with a response or an error.
	//
	// When Client fires AfterHop, exactly one of the execution's
	// Response and Err fields is non-nil. If the response is a redirect
	// the client will follow, the client discards its body after all
	// AfterHop handlers have finished.
	AfterHop
	// AfterAttemptTimeout identifies the event that occurs after an
	// attempt failed because of a timeout error.
	AfterAttemptTimeout
	// AfterAttempt identifies the event that occurs after an attempt is
	// concluded, regardless of whether it concluded successfully or
	// not.
	//
	// When Client fires AfterAttempt, exactly one of the execution's
	// Response and Err fields is non-nil. AfterAttempt runs before the
	// retry policy, if any, is consulted.
	AfterAttempt
	// AfterExecutionTimeout identifies the event that occurs after the
	// deadline of the request's context is exceeded. It can be
	// detected either at the end of an attempt or during the retry wait
	// period.
	//
	// Note that AfterExecutionTimeout always occurs after AfterAttempt.
	AfterExecutionTimeout
	// AfterExecutionEnd identifies the event that occurs after the
	// request execution ends.
	//
	// When Client fires AfterExecutionEnd, the execution is in the
	// same state it was in after the final attempt EXCEPT that the end
	// time is set to the time the execution ended.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"BeforeHop",
	"AfterHop",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"AfterExecutionTimeout",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// request execution by Client, in the order in which they would
// occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		BeforeHop,
		AfterHop,
		AfterAttemptTimeout,
		AfterAttempt,
		AfterExecutionTimeout,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
