// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"io"

	"github.com/gogama/requests/request"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
)

// DecodeBody wraps raw in a decompressor for the response content
// coding, and reports whether it did so.
//
// No decoder is applied to responses to HEAD requests, or to responses
// with status 1xx, 204 or 304, since they carry no body. Otherwise the
// first Content-Encoding value decides, matched case-sensitively:
// "gzip" selects a gzip decoder and "deflate" a raw DEFLATE decoder
// without zlib framing. Any other value, including "identity", leaves
// raw as it is.
//
// If the gzip header cannot be read, raw is closed and the error is
// returned. Closing the returned stream closes raw. The header itself
// is never modified.
func DecodeBody(status int, method string, header request.Headers, raw io.ReadCloser) (io.ReadCloser, bool, error) {
	if method == "HEAD" || (status >= 100 && status < 200) || status == 204 || status == 304 {
		return raw, false, nil
	}

	ce, _ := header.First("Content-Encoding")
	switch ce {
	case "gzip":
		zr, err := gzip.NewReader(raw)
		if err != nil {
			_ = raw.Close()
			return nil, false, err
		}
		return &decoder{Reader: zr, dec: zr, raw: raw}, true, nil
	case "deflate":
		fr := flate.NewReader(raw)
		return &decoder{Reader: fr, dec: fr, raw: raw}, true, nil
	default:
		return raw, false, nil
	}
}

type decoder struct {
	io.Reader
	dec io.Closer
	raw io.Closer
}

func (d *decoder) Close() error {
	err := d.dec.Close()
	if rerr := d.raw.Close(); err == nil {
		err = rerr
	}
	return err
}
