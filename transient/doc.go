// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors raised while executing a request
// as transient or non-transient. Retry policies use the classification
// to decide whether a failed execution is worth repeating, and
// request.Error uses it to answer Timeout.
//
// Package transient depends only on the standard library.
package transient
