package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"todohub/internal/core/port"
)

// NoOpProbe satisfies port.Telemetry without emitting anything. Used in tests
// and when telemetry is disabled.
type NoOpProbe struct {
	tracer trace.Tracer
}

func NewNoOpProbe() port.Telemetry {
	return &NoOpProbe{tracer: noop.NewTracerProvider().Tracer("noop")}
}

func (p *NoOpProbe) StartServiceSpan(ctx context.Context, service, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, service+"."+operation)
}

func (p *NoOpProbe) StartRepositorySpan(ctx context.Context, operation, entity string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, "db."+entity+"."+operation)
}

func (p *NoOpProbe) RecordError(ctx context.Context, operation string, err error) {}

func (p *NoOpProbe) RecordBusinessEvent(ctx context.Context, event, entity, entityID string, userID uuid.UUID) {
}
