// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry wires OpenTelemetry tracing and metrics for AlgoViz.
//
// # Description
//
// Init installs global tracer and meter providers. Code elsewhere uses the
// OTel API directly (otel.Tracer, otel.Meter); swapping backends is a
// configuration change, not a code change.
//
// Traces: "otlp" (gRPC), "stdout" or "none" (default).
// Metrics: "prometheus" (default, served by MetricsHandler), "stdout" or "none".
//
// # Environment Variables
//
//   - OTEL_TRACES_EXPORTER: otlp, stdout, or none
//   - OTEL_METRICS_EXPORTER: prometheus, stdout, or none
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint (default: localhost:4317)
//   - ALGOVIZ_ENV: environment name (default: development)
//
// # Usage
//
//	shutdown, err := telemetry.Init(ctx, telemetry.DefaultConfig())
//	if err != nil {
//	    return fmt.Errorf("init telemetry: %w", err)
//	}
//	defer shutdown(context.Background())
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Config controls telemetry behavior.
//
// All fields have sensible defaults via DefaultConfig().
type Config struct {
	// ServiceName identifies this service in traces and metrics.
	ServiceName string `yaml:"service_name"`

	// ServiceVersion is the version string for this service.
	ServiceVersion string `yaml:"service_version"`

	// Environment identifies the deployment environment.
	Environment string `yaml:"environment"`

	// TraceExporter selects the trace exporter: "otlp", "stdout", or "none".
	TraceExporter string `yaml:"trace_exporter" validate:"omitempty,oneof=otlp stdout none"`

	// MetricExporter selects the metric exporter: "prometheus", "stdout", or "none".
	MetricExporter string `yaml:"metric_exporter" validate:"omitempty,oneof=prometheus stdout none"`

	// OTLPEndpoint is the OTLP gRPC receiver for traces.
	OTLPEndpoint string `yaml:"otlp_endpoint"`

	// OTLPInsecure disables TLS for the OTLP connection.
	OTLPInsecure bool `yaml:"otlp_insecure"`
}

// DefaultConfig returns defaults suitable for running locally.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "algoviz",
		ServiceVersion: "0.1.0",
		Environment:    getEnvOr("ALGOVIZ_ENV", "development"),
		TraceExporter:  getEnvOr("OTEL_TRACES_EXPORTER", "none"),
		MetricExporter: getEnvOr("OTEL_METRICS_EXPORTER", "prometheus"),
		OTLPEndpoint:   getEnvOr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTLPInsecure:   true,
	}
}

// Init configures the global tracer and meter providers.
//
// # Inputs
//
//   - ctx: Context for exporter construction. Must not be nil.
//   - cfg: Exporter selection.
//
// # Outputs
//
//   - shutdown: Flushes and stops every provider that was started.
//   - err: ErrNilContext, or a wrapped ErrUnknownExporter / exporter error.
//
// # Limitations
//
//   - Replaces the global providers; call once per process outside tests.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	var shutdownFuncs []func(context.Context) error
	shutdown = func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdownFuncs {
			if err := fn(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return fmt.Errorf("shutdown errors: %v", errs)
		}
		return nil
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
		attribute.String("deployment.environment", cfg.Environment),
	)

	if cfg.TraceExporter != "none" && cfg.TraceExporter != "" {
		tp, err := initTracer(ctx, cfg, res)
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{}))
		shutdownFuncs = append(shutdownFuncs, tp.Shutdown)
	}

	if cfg.MetricExporter != "none" && cfg.MetricExporter != "" {
		mp, err := initMeter(ctx, cfg, res)
		if err != nil {
			return nil, fmt.Errorf("init meter: %w", err)
		}
		otel.SetMeterProvider(mp)
		shutdownFuncs = append(shutdownFuncs, mp.Shutdown)
	}

	return shutdown, nil
}

func initTracer(ctx context.Context, cfg Config, res *resource.Resource) (*trace.TracerProvider, error) {
	var exporter trace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "otlp":
		creds := credentials.NewClientTLSFromCert(nil, "")
		if cfg.OTLPInsecure {
			creds = insecure.NewCredentials()
		}
		conn, connErr := grpc.NewClient(cfg.OTLPEndpoint, grpc.WithTransportCredentials(creds))
		if connErr != nil {
			return nil, fmt.Errorf("dial otlp endpoint: %w", connErr)
		}
		exporter, err = otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))

	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.TraceExporter)
	}

	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.AlwaysSample()),
	), nil
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var (
	prometheusHandler  http.Handler
	prometheusRegistry *prometheus.Registry
	prometheusMu       sync.RWMutex
)

// MetricsHandler returns the /metrics handler.
//
// # Outputs
//
//   - http.Handler: Prometheus exposition handler, or nil when the
//     "prometheus" metric exporter was not initialized.
func MetricsHandler() http.Handler {
	prometheusMu.RLock()
	defer prometheusMu.RUnlock()
	return prometheusHandler
}

// Registry returns the Prometheus registry behind MetricsHandler, or nil.
func Registry() *prometheus.Registry {
	prometheusMu.RLock()
	defer prometheusMu.RUnlock()
	return prometheusRegistry
}

func initMeter(_ context.Context, cfg Config, res *resource.Resource) (*metric.MeterProvider, error) {
	switch cfg.MetricExporter {
	case "prometheus":
		// A registry per Init keeps repeated initialization (tests) free of
		// duplicate-registration errors.
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())

		exporter, err := promexporter.New(promexporter.WithRegisterer(reg))
		if err != nil {
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}

		prometheusMu.Lock()
		prometheusRegistry = reg
		prometheusHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		prometheusMu.Unlock()

		return metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(exporter),
		), nil

	case "stdout":
		exporter, err := stdoutmetric.New(stdoutmetric.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout metric exporter: %w", err)
		}

		return metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(metric.NewPeriodicReader(exporter)),
		), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.MetricExporter)
	}
}

// RegisterSessionGauge exposes the number of live undo sessions.
//
// # Inputs
//
//   - reg: Registry to register with, typically Registry().
//   - count: Called on every scrape.
//
// # Outputs
//
//   - error: Registration error, e.g. a duplicate gauge.
func RegisterSessionGauge(reg prometheus.Registerer, count func() int) error {
	gauge := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "algoviz",
			Name:      "sessions_active",
			Help:      "Number of live undo sessions",
		},
		func() float64 { return float64(count()) },
	)
	return reg.Register(gauge)
}
