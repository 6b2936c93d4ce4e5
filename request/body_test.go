// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCharset(t *testing.T) {
	for _, name := range []string{"utf-8", "UTF-8", "iso-8859-1", "latin1", "gbk", "windows-1252"} {
		t.Run(name, func(t *testing.T) {
			enc, err := LookupCharset(name)
			require.NoError(t, err)
			assert.NotNil(t, enc)
		})
	}
	t.Run("unknown", func(t *testing.T) {
		_, err := LookupCharset("klingon")
		assert.EqualError(t, err, `requests/request: unsupported charset "klingon"`)
	})
}

func TestStringBody(t *testing.T) {
	b := TextBody("café")
	assert.Equal(t, "text/plain", b.ContentType())
	assert.True(t, b.IncludeCharset())
	_, sized := b.(Sized)
	assert.False(t, sized)

	t.Run("utf-8", func(t *testing.T) {
		enc, err := LookupCharset("utf-8")
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, b.WriteBody(&buf, enc))
		assert.Equal(t, []byte("caf\xc3\xa9"), buf.Bytes())
	})
	t.Run("latin1", func(t *testing.T) {
		enc, err := LookupCharset("iso-8859-1")
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, b.WriteBody(&buf, enc))
		assert.Equal(t, []byte("caf\xe9"), buf.Bytes())
	})
	t.Run("nil encoding", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, b.WriteBody(&buf, nil))
		assert.Equal(t, "café", buf.String())
	})
}

func TestBytesBody(t *testing.T) {
	b := BytesBody([]byte{0, 1, 2, 0xff}, "application/octet-stream")
	assert.Equal(t, "application/octet-stream", b.ContentType())
	assert.False(t, b.IncludeCharset())
	s, ok := b.(Sized)
	require.True(t, ok)
	assert.Equal(t, int64(4), s.Len())
	enc, _ := LookupCharset("iso-8859-1")
	var buf bytes.Buffer
	require.NoError(t, b.WriteBody(&buf, enc))
	assert.Equal(t, []byte{0, 1, 2, 0xff}, buf.Bytes())
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestReaderBody(t *testing.T) {
	t.Run("unsized", func(t *testing.T) {
		r := &closeRecorder{Reader: strings.NewReader("stream")}
		b := ReaderBody(r, "text/csv", -1)
		_, sized := b.(Sized)
		assert.False(t, sized)
		assert.False(t, b.IncludeCharset())
		var buf bytes.Buffer
		require.NoError(t, b.WriteBody(&buf, nil))
		assert.Equal(t, "stream", buf.String())
		assert.True(t, r.closed)
	})
	t.Run("sized", func(t *testing.T) {
		b := ReaderBody(strings.NewReader("abc"), "", 3)
		s, ok := b.(Sized)
		require.True(t, ok)
		assert.Equal(t, int64(3), s.Len())
		assert.Empty(t, b.ContentType())
	})
	t.Run("read error", func(t *testing.T) {
		b := ReaderBody(io.MultiReader(strings.NewReader("a"), &errReader{errors.New("boom")}), "", -1)
		err := b.WriteBody(io.Discard, nil)
		assert.EqualError(t, err, "boom")
	})
}

type errReader struct {
	err error
}

func (r *errReader) Read(_ []byte) (int, error) { return 0, r.err }

func TestFormBody(t *testing.T) {
	b := FormBody(url.Values{"z": {"1"}, "name": {"José", "Zoë"}, "a b": {"c&d"}})
	assert.Equal(t, "application/x-www-form-urlencoded", b.ContentType())
	assert.True(t, b.IncludeCharset())

	t.Run("utf-8", func(t *testing.T) {
		enc, _ := LookupCharset("utf-8")
		var buf bytes.Buffer
		require.NoError(t, b.WriteBody(&buf, enc))
		assert.Equal(t, "a+b=c%26d&name=Jos%C3%A9&name=Zo%C3%AB&z=1", buf.String())
	})
	t.Run("latin1", func(t *testing.T) {
		enc, _ := LookupCharset("iso-8859-1")
		var buf bytes.Buffer
		require.NoError(t, b.WriteBody(&buf, enc))
		assert.Equal(t, "a+b=c%26d&name=Jos%E9&name=Zo%EB&z=1", buf.String())
	})
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormBody(nil).WriteBody(&buf, nil))
		assert.Empty(t, buf.String())
	})
}

func TestJSONBody(t *testing.T) {
	b := JSONBody(map[string]interface{}{"a": 1, "b": "x"})
	assert.Equal(t, "application/json", b.ContentType())
	assert.True(t, b.IncludeCharset())
	var buf bytes.Buffer
	require.NoError(t, b.WriteBody(&buf, nil))
	assert.JSONEq(t, `{"a":1,"b":"x"}`, buf.String())

	t.Run("marshal error", func(t *testing.T) {
		err := JSONBody(make(chan int)).WriteBody(io.Discard, nil)
		assert.Error(t, err)
	})
}
