// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-a2a/a2a-exchange/auth"
)

// Well-known paths of the HTTP binding.
const (
	DefaultEndpoint = "/"
	AgentCardPath   = "/.well-known/agent.json"
	MetricsPath     = "/metrics"
	HealthPath      = "/healthz"
)

// DefaultMaxBodyBytes caps the size of a request body.
const DefaultMaxBodyBytes = 1 << 20

// HTTPOption represents an option for configuring the [HTTPHandler].
type HTTPOption func(*HTTPHandler)

// WithEndpoint sets the path JSON-RPC requests are posted to.
func WithEndpoint(endpoint string) HTTPOption {
	return func(h *HTTPHandler) {
		h.endpoint = endpoint
	}
}

// WithVerifier requires a valid bearer token on the JSON-RPC endpoint.
func WithVerifier(v *auth.Verifier) HTTPOption {
	return func(h *HTTPHandler) {
		h.verifier = v
	}
}

// WithRegistry sets the Prometheus registry metrics are registered with and served from.
func WithRegistry(reg *prometheus.Registry) HTTPOption {
	return func(h *HTTPHandler) {
		h.registry = reg
	}
}

// WithMaxBodyBytes sets the maximum accepted request body size.
func WithMaxBodyBytes(n int64) HTTPOption {
	return func(h *HTTPHandler) {
		h.maxBodyBytes = n
	}
}

// WithHTTPLogger sets the [*slog.Logger] for the [HTTPHandler].
func WithHTTPLogger(logger *slog.Logger) HTTPOption {
	return func(h *HTTPHandler) {
		h.logger = logger
	}
}

// HTTPHandler exposes a [Dispatcher] over HTTP.
type HTTPHandler struct {
	dispatcher   *Dispatcher
	endpoint     string
	verifier     *auth.Verifier
	registry     *prometheus.Registry
	maxBodyBytes int64
	logger       *slog.Logger

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	mux *http.ServeMux
}

var _ http.Handler = (*HTTPHandler)(nil)

// NewHTTPHandler creates an HTTPHandler serving d.
func NewHTTPHandler(d *Dispatcher, opts ...HTTPOption) *HTTPHandler {
	h := &HTTPHandler{
		dispatcher:   d,
		endpoint:     DefaultEndpoint,
		maxBodyBytes: DefaultMaxBodyBytes,
		logger:       d.logger,
	}
	for _, o := range opts {
		o(h)
	}
	if h.registry == nil {
		h.registry = prometheus.NewRegistry()
	}

	factory := promauto.With(h.registry)
	h.requests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "a2a",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "status"},
	)
	h.duration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "a2a",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	var rpc http.Handler = http.HandlerFunc(h.serveRPC)
	if h.verifier != nil {
		rpc = h.verifier.Middleware(rpc)
	}

	h.mux = http.NewServeMux()
	h.mux.Handle("POST "+routePattern(h.endpoint), h.instrument("rpc", rpc))
	h.mux.Handle("GET "+AgentCardPath, h.instrument("agent_card", http.HandlerFunc(h.serveAgentCard)))
	h.mux.Handle("GET "+HealthPath, h.instrument("health", http.HandlerFunc(serveHealth)))
	h.mux.Handle("GET "+MetricsPath, promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))

	return h
}

// routePattern makes a trailing-slash endpoint match only itself.
func routePattern(endpoint string) string {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if strings.HasSuffix(endpoint, "/") {
		return endpoint + "{$}"
	}
	return endpoint
}

// ServeHTTP implements [http.Handler].
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *HTTPHandler) serveRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to read request body", slog.Any("error", err))
		http.Error(w, "request body too large or unreadable", http.StatusRequestEntityTooLarge)
		return
	}

	resp := h.dispatcher.Handle(r.Context(), body)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(resp)))
	w.WriteHeader(http.StatusOK)
	w.Write(resp)
}

func (h *HTTPHandler) serveAgentCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.MarshalWrite(w, h.dispatcher.AgentCard(), json.Deterministic(true)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write agent card", slog.Any("error", err))
	}
}

func serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *HTTPHandler) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		h.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
