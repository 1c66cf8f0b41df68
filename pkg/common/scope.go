// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "invite-rewards"
	traceIDLogField = "traceID"
)

// Scope carries the span and trace-tagged logger of one gateway event or command.
type Scope struct {
	Ctx     context.Context
	TraceID string
	Log     *logrus.Entry

	span oteltrace.Span
}

// StartScope opens a span named name under whatever span ctx already carries.
func StartScope(ctx context.Context, name string) *Scope {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, name)
	traceID := span.SpanContext().TraceID().String()

	return &Scope{
		Ctx:     spanCtx,
		TraceID: traceID,
		Log:     logrus.WithField(traceIDLogField, traceID),
		span:    span,
	}
}

// Child opens a nested span that shares the parent's logger.
func (s *Scope) Child(name string) *Scope {
	ctx, span := s.span.TracerProvider().Tracer(tracerName).Start(s.Ctx, name)
	return &Scope{Ctx: ctx, TraceID: s.TraceID, Log: s.Log, span: span}
}

// Finish ends the span.
func (s *Scope) Finish() {
	s.span.End()
}

func (s *Scope) Event(message string) {
	s.span.AddEvent(message)
}

// Fail marks the span as failed.
func (s *Scope) Fail(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// Tag sets a string attribute; guild, user and event IDs go here.
func (s *Scope) Tag(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

// Count sets an integer attribute such as a credit total.
func (s *Scope) Count(key string, value int) {
	s.span.SetAttributes(attribute.Int(key, value))
}
