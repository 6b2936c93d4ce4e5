// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "strings"

// Headers is an ordered list of header fields. Unlike http.Header, a
// name may appear any number of times and the order fields were added
// or received in is kept.
//
// Name lookups are case-insensitive.
type Headers []Param

// First returns the value of the first field named name, and whether
// such a field exists.
func (h Headers) First(name string) (string, bool) {
	for i := range h {
		if strings.EqualFold(h[i].Name, name) {
			return h[i].Value, true
		}
	}
	return "", false
}

// Get returns the value of the first field named name, or the empty
// string if there is none.
func (h Headers) Get(name string) string {
	v, _ := h.First(name)
	return v
}

// Values returns the values of all fields named name, in order.
func (h Headers) Values(name string) []string {
	var vs []string
	for i := range h {
		if strings.EqualFold(h[i].Name, name) {
			vs = append(vs, h[i].Value)
		}
	}
	return vs
}

// Has reports whether any field is named name.
func (h Headers) Has(name string) bool {
	_, ok := h.First(name)
	return ok
}

// Add appends a field.
func (h *Headers) Add(name, value string) {
	*h = append(*h, Param{Name: name, Value: value})
}

// Set replaces all fields named name with a single field. The new field
// takes the position of the first field replaced, or is appended if
// there was none.
func (h *Headers) Set(name, value string) {
	out := (*h)[:0]
	set := false
	for _, p := range *h {
		if !strings.EqualFold(p.Name, name) {
			out = append(out, p)
		} else if !set {
			out = append(out, Param{Name: name, Value: value})
			set = true
		}
	}
	if !set {
		out = append(out, Param{Name: name, Value: value})
	}
	*h = out
}

// Del removes all fields named name.
func (h *Headers) Del(name string) {
	out := (*h)[:0]
	for _, p := range *h {
		if !strings.EqualFold(p.Name, name) {
			out = append(out, p)
		}
	}
	for i := len(out); i < len(*h); i++ {
		(*h)[i] = Param{}
	}
	*h = out
}

// Clone returns a copy of h. The clone of nil is nil.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	h2 := make(Headers, len(h))
	copy(h2, h)
	return h2
}
