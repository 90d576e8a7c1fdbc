// Package telemetry wires up OpenTelemetry tracing for a mote process.
// Unlike the teacher's multi-exporter setup, only the stdout exporter is
// wired: jaeger and the OTLP/gRPC exporter both pull in a gRPC transport,
// and hand-authoring the generated client code they need without running
// the Go toolchain would mean fabricating generated code, which this
// exercise cannot do (see DESIGN.md). Tracing in this module exists to
// let a developer watch a dispatch unfold on a terminal, not to feed a
// collector.
package telemetry

import (
	"context"
	"fmt"

	"DodagMesh/internal/config"
	"DodagMesh/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// InitTracer configures the global tracer provider for serviceName/id and
// returns a shutdown function. If tracing is disabled in cfg, it leaves
// the global provider untouched (OpenTelemetry's default no-op provider)
// and returns a no-op shutdown.
func InitTracer(cfg config.TelemetryConfig, serviceName string, id domain.NodeIdentity) (func(context.Context) error, error) {
	if !cfg.Tracing.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	if cfg.Tracing.Exporter != "stdout" {
		return nil, fmt.Errorf("telemetry: unsupported exporter %q (only \"stdout\" is wired)", cfg.Tracing.Exporter)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("mesh.node.identity", id.String()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("telemetry: stdout exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	return tp.Shutdown, nil
}
