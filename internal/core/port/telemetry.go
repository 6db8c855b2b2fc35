package port

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry lets the core emit spans and events without knowing the backend.
type Telemetry interface {
	StartServiceSpan(ctx context.Context, service, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span)
	StartRepositorySpan(ctx context.Context, operation, entity string, attrs []attribute.KeyValue) (context.Context, trace.Span)
	RecordError(ctx context.Context, operation string, err error)
	RecordBusinessEvent(ctx context.Context, event, entity, entityID string, userID uuid.UUID)
}
