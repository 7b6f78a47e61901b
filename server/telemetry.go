// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/go-a2a/a2a-exchange/server"

var (
	methodKey    = attribute.Key("rpc.method")
	requestIDKey = attribute.Key("rpc.jsonrpc.request_id")
	errorCodeKey = attribute.Key("rpc.jsonrpc.error_code")
)

type metrics struct {
	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

func newMetrics(m metric.Meter) *metrics {
	var (
		ms  metrics
		err error
	)

	ms.requests, err = m.Int64Counter("a2a.rpc.requests",
		metric.WithDescription("Count of dispatched RPCs"),
	)
	if err != nil {
		otel.Handle(err)
		ms.requests = noop.Int64Counter{}
	}

	ms.latency, err = m.Float64Histogram("a2a.rpc.duration",
		metric.WithDescription("Duration of dispatched RPCs"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		otel.Handle(err)
		ms.latency = noop.Float64Histogram{}
	}

	return &ms
}

func (ms *metrics) record(ctx context.Context, method string, code int, elapsed time.Duration) {
	attrs := metric.WithAttributes(methodKey.String(method), errorCodeKey.Int(code))
	ms.requests.Add(ctx, 1, attrs)
	ms.latency.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
}
