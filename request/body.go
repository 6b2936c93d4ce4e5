// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// A Body is a request body which can write itself to a connection in a
// given character encoding.
//
// Implementations which are charset-sensitive (text, forms) encode
// their content with enc. Binary bodies ignore enc.
type Body interface {
	// ContentType returns the media type to send in the Content-Type
	// header, or the empty string to send none.
	ContentType() string
	// IncludeCharset reports whether the request charset should be
	// advertised as a Content-Type parameter.
	IncludeCharset() bool
	// WriteBody writes the whole body to w.
	WriteBody(w io.Writer, enc encoding.Encoding) error
}

// A Sized body knows its exact length in bytes regardless of the
// request charset. Sized bodies are sent with a Content-Length header;
// others are sent with chunked transfer coding.
type Sized interface {
	Len() int64
}

// LookupCharset returns the encoding named by charset, using the
// WHATWG encoding names and labels.
func LookupCharset(charset string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("requests/request: unsupported charset %q", charset)
	}
	return enc, nil
}

// StringBody returns a body containing text encoded in the request
// charset. The charset is advertised.
func StringBody(text, contentType string) Body {
	return &stringBody{text: text, contentType: contentType}
}

// TextBody is StringBody with content type text/plain.
func TextBody(text string) Body {
	return StringBody(text, "text/plain")
}

type stringBody struct {
	text        string
	contentType string
}

func (b *stringBody) ContentType() string { return b.contentType }

func (b *stringBody) IncludeCharset() bool { return true }

func (b *stringBody) WriteBody(w io.Writer, enc encoding.Encoding) error {
	return writeEncoded(w, enc, b.text)
}

// BytesBody returns a binary body. The charset is not advertised.
func BytesBody(data []byte, contentType string) Body {
	return &bytesBody{data: data, contentType: contentType}
}

type bytesBody struct {
	data        []byte
	contentType string
}

func (b *bytesBody) ContentType() string { return b.contentType }

func (b *bytesBody) IncludeCharset() bool { return false }

func (b *bytesBody) Len() int64 { return int64(len(b.data)) }

func (b *bytesBody) WriteBody(w io.Writer, _ encoding.Encoding) error {
	_, err := w.Write(b.data)
	return err
}

// ReaderBody returns a binary body streamed from r. If size is not
// negative the body is sent with a Content-Length of size, and r must
// yield exactly size bytes. If r is an io.Closer it is closed after
// the body is written.
func ReaderBody(r io.Reader, contentType string, size int64) Body {
	if size >= 0 {
		return &sizedReaderBody{readerBody{r: r, contentType: contentType}, size}
	}
	return &readerBody{r: r, contentType: contentType}
}

type readerBody struct {
	r           io.Reader
	contentType string
}

func (b *readerBody) ContentType() string { return b.contentType }

func (b *readerBody) IncludeCharset() bool { return false }

func (b *readerBody) WriteBody(w io.Writer, _ encoding.Encoding) error {
	_, err := io.Copy(w, b.r)
	if c, ok := b.r.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

type sizedReaderBody struct {
	readerBody
	size int64
}

func (b *sizedReaderBody) Len() int64 { return b.size }

// FormBody returns an application/x-www-form-urlencoded body. Names and
// values are encoded in the request charset before being
// percent-escaped, and the pairs are sorted by name.
func FormBody(values url.Values) Body {
	return &formBody{values: values}
}

type formBody struct {
	values url.Values
}

func (b *formBody) ContentType() string { return "application/x-www-form-urlencoded" }

func (b *formBody) IncludeCharset() bool { return true }

func (b *formBody) WriteBody(w io.Writer, enc encoding.Encoding) error {
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var buf strings.Builder
	for _, k := range keys {
		ek, err := escapeIn(enc, k)
		if err != nil {
			return err
		}
		for _, v := range b.values[k] {
			ev, err := escapeIn(enc, v)
			if err != nil {
				return err
			}
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(ek)
			buf.WriteByte('=')
			buf.WriteString(ev)
		}
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

func escapeIn(enc encoding.Encoding, s string) (string, error) {
	if enc == nil {
		return url.QueryEscape(s), nil
	}
	encoded, err := enc.NewEncoder().String(s)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(encoded), nil
}

// JSONBody returns an application/json body holding the JSON encoding
// of v. Marshalling happens when the body is written.
func JSONBody(v interface{}) Body {
	return &jsonBody{v: v}
}

type jsonBody struct {
	v interface{}
}

func (b *jsonBody) ContentType() string { return "application/json" }

func (b *jsonBody) IncludeCharset() bool { return true }

func (b *jsonBody) WriteBody(w io.Writer, enc encoding.Encoding) error {
	data, err := json.Marshal(b.v)
	if err != nil {
		return err
	}
	return writeEncoded(w, enc, string(data))
}

func writeEncoded(w io.Writer, enc encoding.Encoding, s string) error {
	if enc == nil {
		_, err := io.WriteString(w, s)
		return err
	}
	encoded, err := enc.NewEncoder().String(s)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, encoded)
	return err
}
