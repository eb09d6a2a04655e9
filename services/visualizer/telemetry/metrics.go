// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics contains the instruments recorded by the AlgoViz service.
//
// Description:
//
//	HTTP counters and histograms plus per-algorithm run metrics and
//	undo-session operation counts. All names use the "algoviz_" prefix.
//
// Thread Safety: Safe for concurrent use after creation. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	// --- HTTP Metrics ---

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal metric.Int64Counter

	// HTTPRequestDuration records HTTP request duration in seconds.
	HTTPRequestDuration metric.Float64Histogram

	// HTTPActiveRequests tracks in-flight HTTP requests.
	HTTPActiveRequests metric.Int64UpDownCounter

	// --- Algorithm Metrics ---

	// RunsTotal counts algorithm runs by algorithm and outcome.
	RunsTotal metric.Int64Counter

	// RunSteps records the number of trace steps per run.
	RunSteps metric.Int64Histogram

	// --- Session Metrics ---

	// HistoryOpsTotal counts edit/undo/clear operations by result.
	HistoryOpsTotal metric.Int64Counter
}

// NewMetrics creates a Metrics instance with every instrument registered.
//
// Inputs:
//
//	meter - The OTel meter to register instruments with.
//
// Outputs:
//
//	*Metrics - Initialized instruments.
//	error - Non-nil if any instrument fails to register.
//
// Example:
//
//	metrics, err := telemetry.NewMetrics(otel.Meter("algoviz"))
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"algoviz_http_requests_total",
		metric.WithDescription("Total HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_requests_total: %w", err)
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"algoviz_http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_request_duration: %w", err)
	}

	m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"algoviz_http_active_requests",
		metric.WithDescription("Currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_active_requests: %w", err)
	}

	m.RunsTotal, err = meter.Int64Counter(
		"algoviz_runs_total",
		metric.WithDescription("Algorithm runs by algorithm and outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create runs_total: %w", err)
	}

	m.RunSteps, err = meter.Int64Histogram(
		"algoviz_run_steps",
		metric.WithDescription("Trace steps recorded per algorithm run"),
		metric.WithUnit("{step}"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 50, 100, 500, 1000, 5000, 20000),
	)
	if err != nil {
		return nil, fmt.Errorf("create run_steps: %w", err)
	}

	m.HistoryOpsTotal, err = meter.Int64Counter(
		"algoviz_history_ops_total",
		metric.WithDescription("Undo session operations by op and result"),
		metric.WithUnit("{op}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create history_ops_total: %w", err)
	}

	return m, nil
}

// RecordRun records one algorithm run.
//
// algorithm is "bubble_sort" or "binary_search"; outcome is e.g. "sorted",
// "found", "not_found", or "invalid".
func (m *Metrics) RecordRun(ctx context.Context, algorithm, outcome string, steps int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("algorithm", algorithm))
	m.RunsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("algorithm", algorithm),
		attribute.String("outcome", outcome),
	))
	if steps > 0 {
		m.RunSteps.Record(ctx, int64(steps), attrs)
	}
}

// RecordHistoryOp records an edit, undo, or clear on a session.
func (m *Metrics) RecordHistoryOp(ctx context.Context, op string, changed bool) {
	if m == nil {
		return
	}
	result := "noop"
	if changed {
		result = "applied"
	}
	m.HistoryOpsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("result", result),
	))
}
