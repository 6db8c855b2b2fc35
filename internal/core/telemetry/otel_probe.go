package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"todohub/internal/core/port"
)

type OtelProbe struct {
	tracer trace.Tracer
}

func NewOtelProbe(serviceName string) port.Telemetry {
	return &OtelProbe{tracer: otel.Tracer(serviceName)}
}

func (p *OtelProbe) StartServiceSpan(ctx context.Context, service, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, service+"."+operation, trace.WithAttributes(attrs...))
}

func (p *OtelProbe) StartRepositorySpan(ctx context.Context, operation, entity string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.table", entity),
		attribute.String("db.operation", operation),
	)

	return p.tracer.Start(ctx, "db."+entity+"."+operation, trace.WithAttributes(attrs...))
}

func (p *OtelProbe) RecordError(ctx context.Context, operation string, err error) {
	span := trace.SpanFromContext(ctx)

	if !span.SpanContext().IsValid() {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error.operation", operation))
}

func (p *OtelProbe) RecordBusinessEvent(ctx context.Context, event, entity, entityID string, userID uuid.UUID) {
	span := trace.SpanFromContext(ctx)

	if !span.SpanContext().IsValid() {
		return
	}

	span.AddEvent(event, trace.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("entity.id", entityID),
		attribute.String("user.id", userID.String()),
	))
}
