package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("go-storefront/repository")

func startSpan(ctx context.Context, collection, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, collection+"."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.mongodb.collection", collection),
			attribute.String("db.operation", op),
		),
	)
}

// endSpan records err, if any, and ends span
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
