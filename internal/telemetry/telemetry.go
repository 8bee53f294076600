// Package telemetry sets up OpenTelemetry tracing for sitedeck.
//
// Export is enabled only when an OTLP endpoint is configured; otherwise a
// no-op tracer is handed out so callers never branch on it.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName is the tracer name used for sitedeck spans.
const InstrumentationName = "sitedeck"

// Config configures the exporter.
type Config struct {
	Endpoint    string // host:port of an OTLP/HTTP collector
	ServiceName string
	Insecure    bool
}

// Provider owns the tracer provider (if any) and hands out tracers.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// Setup creates a Provider. An empty endpoint yields a disabled Provider.
func Setup(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.Endpoint == "" {
		return Disabled(), nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = InstrumentationName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	return NewWithSDK(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)), nil
}

// NewWithSDK wraps an existing SDK provider. Tests pass one built around a
// tracetest.SpanRecorder.
func NewWithSDK(tp *sdktrace.TracerProvider) *Provider {
	return &Provider{
		provider: tp,
		tracer:   tp.Tracer(InstrumentationName),
	}
}

// Disabled returns a Provider whose tracer records nothing.
func Disabled() *Provider {
	return &Provider{tracer: noop.NewTracerProvider().Tracer(InstrumentationName)}
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.provider != nil
}

// Tracer returns the sitedeck tracer.
func (p *Provider) Tracer() oteltrace.Tracer {
	if p == nil {
		return Disabled().tracer
	}
	return p.tracer
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
