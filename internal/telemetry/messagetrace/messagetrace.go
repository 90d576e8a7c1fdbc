// Package messagetrace provides span helpers for the dispatcher (spec
// §4.5), replacing the teacher's gRPC unary interceptors — there is no
// RPC boundary here to intercept, just an in-process dispatch — with a
// plain start/end wrapper keyed by message type and node identity.
package messagetrace

import (
	"context"

	"DodagMesh/internal/codec"
	"DodagMesh/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "dodagmesh/dispatch"

var tracer = otel.Tracer(tracerName)

// StartDispatch opens a span for handling one received message at self.
// The caller must End() the returned span.
func StartDispatch(ctx context.Context, self domain.NodeIdentity, src domain.NodeIdentity, msgType codec.MsgType) (context.Context, trace.Span) {
	return tracer.Start(ctx, "dispatch."+msgType.String(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("mesh.self", self.String()),
			attribute.String("mesh.src", src.String()),
			attribute.String("mesh.msg_type", msgType.String()),
		),
	)
}

// StartForward opens a span for forwarding a message on towards nextHop.
func StartForward(ctx context.Context, self, nextHop domain.NodeIdentity, msgType codec.MsgType) (context.Context, trace.Span) {
	return tracer.Start(ctx, "forward."+msgType.String(),
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("mesh.self", self.String()),
			attribute.String("mesh.next_hop", nextHop.String()),
			attribute.String("mesh.msg_type", msgType.String()),
		),
	)
}
