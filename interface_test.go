// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package requests

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/gogama/requests/request"

	"github.com/stretchr/testify/assert"

	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/mock"
)

func TestGet(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		expected := &request.Response{}
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(r *request.Request) bool {
			return r.Method == "GET" && r.URL.String() == "http://foo" && r.Body == nil
		})).Return(expected, nil).Once()
		resp, err := Get(m, "http://foo")
		assert.Same(t, expected, resp)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("error invalid URL", func(t *testing.T) {
		m := newMockDoer(t)
		resp, err := Get(m, ":::")
		assert.Nil(t, resp)
		assert.Error(t, err)
		m.AssertNotCalled(t, "Do", mock.Anything)
	})
}

func TestHead(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		expected := &request.Response{}
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(r *request.Request) bool {
			return r.Method == "HEAD" && r.URL.String() == "https://bar/"
		})).Return(expected, nil).Once()
		resp, err := Head(m, "https://bar/")
		assert.Same(t, expected, resp)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("error invalid URL", func(t *testing.T) {
		m := newMockDoer(t)
		resp, err := Head(m, "mailto:bar@example.com")
		assert.Nil(t, resp)
		assert.Error(t, err)
		m.AssertNotCalled(t, "Do", mock.Anything)
	})
}

func TestPost(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		testCases := []struct {
			name        string
			body        interface{}
			contentType string
			sized       bool
		}{
			{"string", "eggs", "ham; charset=utf-8", false},
			{"[]byte", []byte("eggs"), "ham", true},
			{"io.Reader", strings.NewReader("eggs"), "ham", false},
			{"request.Body", request.BytesBody([]byte("eggs"), "spam"), "spam", true},
		}
		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				expected := &request.Response{}
				m := newMockDoer(t)
				m.On("Do", mock.MatchedBy(func(r *request.Request) bool {
					if r.Method != "POST" || r.URL.String() != "http://baz" || r.Body == nil {
						return false
					}
					_, sized := r.Body.(request.Sized)
					return contentType(r.Body) == testCase.contentType &&
						sized == testCase.sized
				})).Return(expected, nil).Once()
				resp, err := Post(m, "http://baz", "ham", testCase.body)
				assert.Same(t, expected, resp)
				assert.NoError(t, err)
				m.AssertExpectations(t)
				r := m.Calls[0].Arguments.Get(0).(*request.Request)
				assert.Equal(t, "eggs", bodyString(t, r.Body))
			})
		}
	})
	t.Run("nil body", func(t *testing.T) {
		expected := &request.Response{}
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(r *request.Request) bool {
			return r.Method == "POST" && r.Body == nil
		})).Return(expected, nil).Once()
		resp, err := Post(m, "http://baz", "ham", nil)
		assert.Same(t, expected, resp)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("error invalid URL", func(t *testing.T) {
		m := newMockDoer(t)
		resp, err := Post(m, ":::", "text/plain", []byte{'a', 'b', 'c'})
		assert.Nil(t, resp)
		assert.Error(t, err)
		m.AssertNotCalled(t, "Do", mock.Anything)
	})
	t.Run("error invalid body", func(t *testing.T) {
		m := newMockDoer(t)
		resp, err := Post(m, "http://baz", "text/plain", 123)
		assert.Nil(t, resp)
		assert.EqualError(t, err, "requests: invalid body type int (use nil, string, []byte, io.Reader or request.Body)")
		m.AssertNotCalled(t, "Do", mock.Anything)
	})
}

func TestPostForm(t *testing.T) {
	expected := &request.Response{}
	m := newMockDoer(t)
	m.On("Do", mock.MatchedBy(func(r *request.Request) bool {
		return r.Method == "POST" && r.URL.String() == "http://poster/boy%20wonder" &&
			r.Body != nil && contentType(r.Body) == "application/x-www-form-urlencoded; charset=utf-8"
	})).Return(expected, nil).Once()
	resp, err := PostForm(m, "http://poster/boy wonder", url.Values{"b": {"2"}, "a": {"1"}})
	assert.Same(t, expected, resp)
	assert.NoError(t, err)
	m.AssertExpectations(t)
	r := m.Calls[0].Arguments.Get(0).(*request.Request)
	assert.Equal(t, "a=1&b=2", bodyString(t, r.Body))
}

func TestInflate(t *testing.T) {
	t.Run("Inflate", func(t *testing.T) {
		t.Run("nil doer", func(t *testing.T) {
			assert.PanicsWithValue(t, "requests: nil doer", func() {
				Inflate(nil)
			})
		})
		t.Run("already an Executor", func(t *testing.T) {
			cl := &Client{}
			x := Inflate(cl)
			assert.Same(t, cl, x)
		})
		t.Run("not yet an Executor", func(t *testing.T) {
			m := newMockDoer(t)
			x := Inflate(m)
			assert.NotSame(t, m, x)
		})
	})
	expected := &request.Response{}
	t.Run("Do", func(t *testing.T) {
		r, err := request.NewRequest("PUT", "http://www.randomcollections.com/widgets/1", request.TextBody("foo"))
		require.NotNil(t, r)
		require.NoError(t, err)
		m := newMockDoer(t)
		m.On("Do", r).Return(expected, nil).Once()
		x := Inflate(m)
		resp, err := x.Do(r)
		assert.Same(t, expected, resp)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Get", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(r *request.Request) bool {
			return r.Method == "GET" && r.URL.String() == "http://bar"
		})).Return(expected, nil).Once()
		x := Inflate(m)
		resp, err := x.Get("http://bar")
		assert.Same(t, expected, resp)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Head", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(r *request.Request) bool {
			return r.Method == "HEAD" && r.URL.String() == "http://baz"
		})).Return(expected, nil).Once()
		x := Inflate(m)
		resp, err := x.Head("http://baz")
		assert.Same(t, expected, resp)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Post", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(r *request.Request) bool {
			return r.Method == "POST" && r.URL.String() == "http://ham" &&
				r.Body == nil
		})).Return(expected, nil).Once()
		x := Inflate(m)
		resp, err := x.Post("http://ham", "eggs", nil)
		assert.Same(t, expected, resp)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("PostForm", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(r *request.Request) bool {
			return r.Method == "POST" && r.URL.String() == "http://form" &&
				r.Body != nil && bodyString(t, r.Body) == "x=y"
		})).Return(expected, nil).Once()
		x := Inflate(m)
		resp, err := x.PostForm("http://form", url.Values{"x": []string{"y"}})
		assert.Same(t, expected, resp)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
}

func TestRequestMaker(t *testing.T) {
	m := newMockMakingDoer(t)
	made, err := request.NewRequest("GET", "http://made", nil)
	require.NoError(t, err)
	made.UserAgent = "made/1.0"
	m.On("NewRequest", "POST", "http://target", mock.Anything).Return(made, nil).Once()
	m.On("Do", made).Return(&request.Response{StatusCode: 201}, nil).Once()
	resp, err := PostForm(m, "http://target", url.Values{"k": {"v"}})
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	m.AssertExpectations(t)
}

type mockDoer struct {
	mock.Mock
}

func newMockDoer(t *testing.T) *mockDoer {
	m := &mockDoer{}
	m.Test(t)
	return m
}

func (m *mockDoer) Do(r *request.Request) (*request.Response, error) {
	args := m.Called(r)
	resp := args.Get(0)
	err := args.Error(1)
	if resp == nil {
		return nil, err
	}
	return resp.(*request.Response), err
}

type mockMakingDoer struct {
	mockDoer
}

func newMockMakingDoer(t *testing.T) *mockMakingDoer {
	m := &mockMakingDoer{}
	m.Test(t)
	return m
}

func (m *mockMakingDoer) NewRequest(method, url string, body request.Body) (*request.Request, error) {
	args := m.Called(method, url, body)
	return args.Get(0).(*request.Request), args.Error(1)
}

func contentType(b request.Body) string {
	ct := b.ContentType()
	if b.IncludeCharset() {
		ct += "; charset=" + request.DefaultCharset
	}
	return ct
}

func bodyString(t *testing.T, b request.Body) string {
	enc, err := request.LookupCharset(request.DefaultCharset)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, b.WriteBody(&buf, enc))
	return buf.String()
}
