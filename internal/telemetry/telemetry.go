// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry holds the OpenTelemetry instruments shared by the task
// packages.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// ScopeName is the instrumentation scope of every instrument in this package.
const ScopeName = "github.com/go-a2a/a2a-task"

// Outcome values recorded with each push delivery.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var outcomeKey = attribute.Key("a2a.push.outcome")

// PushMetrics records webhook deliveries.
type PushMetrics struct {
	deliveries metric.Int64Counter
	latency    metric.Float64Histogram
}

// NewPushMetrics creates the push delivery instruments on m.
// A nil m uses the global meter provider. Instruments that fail to register
// fall back to no-ops.
func NewPushMetrics(m metric.Meter) *PushMetrics {
	if m == nil {
		m = otel.GetMeterProvider().Meter(ScopeName)
	}

	pm := &PushMetrics{}

	var err error
	pm.deliveries, err = m.Int64Counter("a2a.push.deliveries",
		metric.WithDescription("Count of push notification deliveries"),
	)
	if err != nil {
		otel.Handle(err)
		pm.deliveries = noop.Int64Counter{}
	}

	pm.latency, err = m.Float64Histogram("a2a.push.latency",
		metric.WithDescription("Push notification delivery latency"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		otel.Handle(err)
		pm.latency = noop.Float64Histogram{}
	}

	return pm
}

// RecordDelivery records one delivery that started at start.
func (pm *PushMetrics) RecordDelivery(ctx context.Context, start time.Time, ok bool) {
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeFailure
	}
	attrs := metric.WithAttributes(outcomeKey.String(outcome))

	pm.deliveries.Add(ctx, 1, attrs)
	pm.latency.Record(ctx, float64(time.Since(start))/float64(time.Millisecond), attrs)
}
