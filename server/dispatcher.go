// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package server routes JSON-RPC envelopes to the task store and the push
// notification registry, and exposes them over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"runtime/debug"
	"slices"
	"time"

	"github.com/go-json-experiment/json/jsontext"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-a2a/a2a-exchange"
	"github.com/go-a2a/a2a-exchange/jsonrpc"
	"github.com/go-a2a/a2a-exchange/task"
)

// DefaultAgentCard returns the card served when none is configured.
func DefaultAgentCard() *a2a.AgentCard {
	return &a2a.AgentCard{
		Name:            "a2a-exchange",
		Description:     "A2A task and push notification registry",
		URL:             "http://localhost:8080/",
		Version:         "1.0.0",
		ProtocolVersion: a2a.Version,
		Capabilities: a2a.AgentCapabilities{
			PushNotifications:      true,
			StateTransitionHistory: true,
		},
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Skills:             []a2a.AgentSkill{},
	}
}

// Dispatcher maps JSON-RPC methods to task and push notification operations.
//
// A Dispatcher holds no per-call state and is safe for concurrent use.
type Dispatcher struct {
	tasks *task.Store
	push  *task.PushConfigStore
	card  *a2a.AgentCard

	logger  *slog.Logger
	tracer  trace.Tracer
	meter   metric.Meter
	metrics *metrics

	methods map[string]handlerFunc
}

// NewDispatcher creates a Dispatcher serving tasks and push.
func NewDispatcher(tasks *task.Store, push *task.PushConfigStore, opts ...Option) *Dispatcher {
	if tasks == nil || push == nil {
		panic("server: task store and push config store are required")
	}

	d := &Dispatcher{
		tasks:  tasks,
		push:   push,
		card:   DefaultAgentCard(),
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.GetTracerProvider().Tracer(instrumentationName),
		meter:  otel.GetMeterProvider().Meter(instrumentationName),
	}
	for _, o := range opts {
		o(d)
	}
	d.metrics = newMetrics(d.meter)
	d.methods = d.routes()

	return d
}

// Methods returns the supported method names in sorted order.
func (d *Dispatcher) Methods() []string {
	return slices.Sorted(maps.Keys(d.methods))
}

// AgentCard returns the served agent card.
func (d *Dispatcher) AgentCard() *a2a.AgentCard {
	return d.card
}

// Handle answers a raw request or batch and returns the encoded response.
// Batch elements are answered independently and in order.
func (d *Dispatcher) Handle(ctx context.Context, raw []byte) []byte {
	elems, batch, rpcErr := jsonrpc.SplitBatch(raw)
	if rpcErr != nil {
		return d.encode(ctx, jsonrpc.NewErrorResponse(jsonrpc.PeekID(raw), rpcErr))
	}
	if !batch {
		return d.encode(ctx, d.handleRaw(ctx, elems[0]))
	}

	responses := make([]*jsonrpc.Response, len(elems))
	for i, elem := range elems {
		responses[i] = d.handleRaw(ctx, elem)
	}
	return d.encode(ctx, responses)
}

func (d *Dispatcher) handleRaw(ctx context.Context, raw jsontext.Value) *jsonrpc.Response {
	req, rpcErr := jsonrpc.ParseRequest(raw)
	if rpcErr != nil {
		d.logger.DebugContext(ctx, "rejected request",
			slog.Int("code", rpcErr.Code),
			slog.String("error", rpcErr.Message),
		)
		return jsonrpc.NewErrorResponse(jsonrpc.PeekID(raw), rpcErr)
	}
	return d.HandleRequest(ctx, req)
}

// HandleRequest routes a parsed request and builds its response.
func (d *Dispatcher) HandleRequest(ctx context.Context, req *jsonrpc.Request) (resp *jsonrpc.Response) {
	start := time.Now()
	ctx, span := d.tracer.Start(ctx, req.Method,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(methodKey.String(req.Method), requestIDKey.String(req.ID.String())),
	)
	defer span.End()

	defer func() {
		elapsed := time.Since(start)
		code := 0
		if resp.Error != nil {
			code = resp.Error.Code
			span.SetStatus(codes.Error, resp.Error.Message)
			span.SetAttributes(errorCodeKey.Int(code))
		}
		d.metrics.record(ctx, req.Method, code, elapsed)

		level := slog.LevelDebug
		if code == jsonrpc.InternalErrorCode {
			level = slog.LevelWarn
		}
		d.logger.Log(ctx, level, "handled request",
			slog.String("method", req.Method),
			slog.String("id", req.ID.String()),
			slog.Bool("notification", req.IsNotification()),
			slog.Duration("duration", elapsed),
			slog.Int("code", code),
		)
	}()

	h, ok := d.methods[req.Method]
	if !ok {
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.NewMethodNotFoundError(req.Method))
	}

	result, err := d.invoke(ctx, h, req)
	if err != nil {
		return jsonrpc.NewErrorResponse(req.ID, toRPCError(err))
	}
	return jsonrpc.NewResponse(req.ID, result)
}

// invoke runs h and turns a panic into an internal error.
func (d *Dispatcher) invoke(ctx context.Context, h handlerFunc, req *jsonrpc.Request) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "handler panicked",
				slog.String("method", req.Method),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			result, err = nil, fmt.Errorf("%w: %v", a2a.ErrInternal, r)
		}
	}()

	p, err := decodeParams(req)
	if err != nil {
		return nil, err
	}
	return h(ctx, p)
}

func (d *Dispatcher) encode(ctx context.Context, v any) []byte {
	data, err := jsonrpc.Encode(v)
	if err == nil {
		return data
	}

	d.logger.ErrorContext(ctx, "failed to encode response", slog.Any("error", err))
	data, err = jsonrpc.Encode(jsonrpc.NewErrorResponse(jsonrpc.ID{}, jsonrpc.NewInternalError("Internal error: failed to encode response")))
	if err != nil {
		panic(err)
	}
	return data
}
