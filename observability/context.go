package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/oidcguard/errors"
)

// OperationContext tracks one traced validation.
type OperationContext struct {
	ServiceName   string
	OperationName string
	RequestID     string
	StartTime     time.Time
	Metrics       *Metrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is skipped.
func NewOperationContext(serviceName, operationName, requestID string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ServiceName:   serviceName,
		OperationName: operationName,
		RequestID:     requestID,
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

type operationContextKey struct{}

// WithOperationContext stores an OperationContext in the context.
func WithOperationContext(ctx context.Context, oc *OperationContext) context.Context {
	return context.WithValue(ctx, operationContextKey{}, oc)
}

// OperationContextFromContext retrieves the OperationContext from context, or nil.
func OperationContextFromContext(ctx context.Context) *OperationContext {
	if oc, ok := ctx.Value(operationContextKey{}).(*OperationContext); ok {
		return oc
	}
	return nil
}

// Start opens the operation's span.
func (oc *OperationContext) Start(ctx context.Context, provider string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanValidate)
	span.SetAttributes(
		attribute.String("service.name", oc.ServiceName),
		attribute.String("operation.name", oc.OperationName),
		attribute.String(AttrProvider, provider),
	)
	if oc.RequestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, oc.RequestID))
	}
	return WithOperationContext(ctx, oc), span
}

// End closes the span and records the validation outcome: "ok" on success,
// otherwise the error code.
func (oc *OperationContext) End(ctx context.Context, span trace.Span, provider string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(errors.CodeOf(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		span.SetAttributes(attribute.String(AttrErrorCode, outcome))
	}
	span.SetAttributes(attribute.String(AttrStatus, outcome))
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordValidation(ctx, provider, outcome, oc.Duration())
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
