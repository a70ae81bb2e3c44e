package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"swimrank-backend/internal/configutil"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ConfigFile is looked up from the working directory upward by SetupFromEnv.
const ConfigFile = "telemetry.json5"

// Endpoint is where one signal is exported. Grpc wins when both are set and
// the signal is not exported when neither is.
type Endpoint struct {
	Grpc    string            `json:"grpc_endpoint"`
	Http    string            `json:"http_endpoint"`
	Headers map[string]string `json:"headers"`
}

const (
	protocolNone = ""
	protocolGrpc = "grpc"
	protocolHttp = "http"
)

func (e Endpoint) protocol() string {
	switch {
	case e.Grpc != "":
		return protocolGrpc
	case e.Http != "":
		return protocolHttp
	default:
		return protocolNone
	}
}

type Config struct {
	Traces  Endpoint `json:"traces"`
	Metrics Endpoint `json:"metrics"`
	// MetricIntervalSeconds defaults to 15.
	MetricIntervalSeconds int `json:"metric_interval_seconds"`
}

// Telemetry holds the providers that were installed so they can be flushed
// on exit, either may be nil.
type Telemetry struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

func (t Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		errs = append(errs, t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errs = append(errs, t.MeterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// SetupFromEnv reads ConfigFile and installs the exporters it names. Without
// a ConfigFile nothing is exported and the otel globals stay no-ops.
func SetupFromEnv(ctx context.Context, serviceName string) (Telemetry, error) {
	config, err := configutil.ReadUpward[Config](ConfigFile)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no telemetry config, not exporting", "service", serviceName)
		return Telemetry{}, nil
	}
	if err != nil {
		return Telemetry{}, fmt.Errorf("read %s: %w", ConfigFile, err)
	}
	return Setup(ctx, serviceName, config)
}

func Setup(ctx context.Context, serviceName string, config Config) (Telemetry, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return Telemetry{}, err
	}

	var out Telemetry
	if config.Traces.protocol() != protocolNone {
		exporter, err := newSpanExporter(ctx, config.Traces)
		if err != nil {
			return Telemetry{}, fmt.Errorf("trace exporter: %w", err)
		}
		out.TracerProvider = trace.NewTracerProvider(
			trace.WithBatcher(exporter),
			trace.WithResource(r),
		)
		otel.SetTracerProvider(out.TracerProvider)
	}

	if config.Metrics.protocol() != protocolNone {
		exporter, err := newMetricExporter(ctx, config.Metrics)
		if err != nil {
			return Telemetry{}, errors.Join(fmt.Errorf("metric exporter: %w", err), out.Shutdown(ctx))
		}
		interval := time.Duration(config.MetricIntervalSeconds) * time.Second
		if interval <= 0 {
			interval = 15 * time.Second
		}
		out.MeterProvider = metric.NewMeterProvider(
			metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(interval))),
			metric.WithResource(r),
		)
		otel.SetMeterProvider(out.MeterProvider)
	}

	return out, nil
}

func newSpanExporter(ctx context.Context, e Endpoint) (trace.SpanExporter, error) {
	slog.Info("exporting traces", "protocol", e.protocol(), "grpc", e.Grpc, "http", e.Http)
	if e.protocol() == protocolGrpc {
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(e.Grpc),
			otlptracegrpc.WithHeaders(e.Headers),
		)
	}
	return otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(e.Http),
		otlptracehttp.WithHeaders(e.Headers),
	)
}

func newMetricExporter(ctx context.Context, e Endpoint) (metric.Exporter, error) {
	slog.Info("exporting metrics", "protocol", e.protocol(), "grpc", e.Grpc, "http", e.Http)
	if e.protocol() == protocolGrpc {
		return otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(e.Grpc),
			otlpmetricgrpc.WithHeaders(e.Headers),
		)
	}
	return otlpmetrichttp.New(
		ctx,
		otlpmetrichttp.WithEndpointURL(e.Http),
		otlpmetrichttp.WithHeaders(e.Headers),
	)
}
