// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-a2a/a2a-exchange"
)

// Option represents an option for configuring the [Dispatcher].
type Option func(*Dispatcher)

// WithAgentCard sets the [a2a.AgentCard] returned by get_agent_card.
func WithAgentCard(card *a2a.AgentCard) Option {
	return func(d *Dispatcher) {
		d.card = card
	}
}

// WithLogger sets the [*slog.Logger] for the [Dispatcher].
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithTracer sets the [trace.Tracer] for the [Dispatcher].
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = tracer
	}
}

// WithMeter sets the [metric.Meter] for the [Dispatcher].
func WithMeter(meter metric.Meter) Option {
	return func(d *Dispatcher) {
		d.meter = meter
	}
}
