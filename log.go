// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package requests

import (
	"github.com/gogama/requests/request"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type executionIDKey struct{}

// ExecutionID returns the identifier a log handler assigned to e, or
// the empty string if none was assigned.
func ExecutionID(e *request.Execution) string {
	id, _ := e.Value(executionIDKey{}).(string)
	return id
}

// NewLogHandler returns a handler group which logs request executions
// to logger. Install it directly in Client.Handlers, or merge it into
// an existing group with HandlerGroup.Merge.
//
// Each execution is assigned a random identifier, logged with every
// record as "execution_id". Hops are logged at debug level; failed
// attempts and failed executions at warn level; and successful
// executions at info level.
func NewLogHandler(logger *zap.Logger) *HandlerGroup {
	if logger == nil {
		panic("requests: nil logger")
	}
	l := &logHandler{logger: logger}
	g := &HandlerGroup{}
	g.PushBack(BeforeExecutionStart, HandlerFunc(l.start))
	g.PushBack(AfterHop, HandlerFunc(l.hop))
	g.PushBack(AfterAttempt, HandlerFunc(l.attempt))
	g.PushBack(AfterExecutionEnd, HandlerFunc(l.end))
	return g
}

type logHandler struct {
	logger *zap.Logger
}

func (l *logHandler) start(_ Event, e *request.Execution) {
	e.SetValue(executionIDKey{}, uuid.NewString())
}

func (l *logHandler) hop(_ Event, e *request.Execution) {
	if ce := l.logger.Check(zap.DebugLevel, "hop"); ce != nil {
		fields := append(l.fields(e),
			zap.Int("hop", e.Hop),
			zap.String("method", e.HopRequest.Method),
			zap.String("url", e.HopRequest.URL.Redacted()),
		)
		if e.Err != nil {
			fields = append(fields, zap.Error(e.Err))
		} else {
			fields = append(fields, zap.Int("status", e.Response.StatusCode))
		}
		ce.Write(fields...)
	}
}

func (l *logHandler) attempt(_ Event, e *request.Execution) {
	if e.Err == nil {
		return
	}
	l.logger.Warn("attempt failed", append(l.fields(e),
		zap.Int("attempt", e.Attempt),
		zap.Int("redirects", e.Redirects()),
		zap.Bool("timeout", e.Timeout()),
		zap.Error(e.Err),
	)...)
}

func (l *logHandler) end(_ Event, e *request.Execution) {
	fields := append(l.fields(e),
		zap.String("method", e.Request.Method),
		zap.String("url", e.Request.URL.Redacted()),
		zap.Int("attempts", e.Attempt+1),
		zap.Int("redirects", e.Redirects()),
		zap.Duration("duration", e.Duration()),
	)
	if e.Err != nil {
		l.logger.Warn("request failed", append(fields,
			zap.Stringer("kind", request.KindOf(e.Err)),
			zap.Error(e.Err),
		)...)
		return
	}
	fields = append(fields, zap.Int("status", e.StatusCode()))
	if u := e.Response.URL; u != nil {
		fields = append(fields, zap.String("final_url", u.Redacted()))
	}
	l.logger.Info("request executed", fields...)
}

func (l *logHandler) fields(e *request.Execution) []zap.Field {
	fields := make([]zap.Field, 0, 12)
	fields = append(fields, zap.String("execution_id", ExecutionID(e)))
	if e.Request.Session != nil {
		fields = append(fields, zap.Stringer("session_id", e.Request.Session.ID))
	}
	return fields
}
