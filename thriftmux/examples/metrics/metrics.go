// Package metrics is a worked example of a Decorator: it wraps the
// dispatch handler with a call counter and a latency histogram, both
// labeled by service:method, and registers them against a
// prometheus.Registerer so they show up alongside whatever else an
// embedding process exposes on /metrics.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/flashcatcloud/thriftmux/thriftmux"
)

// Decorator builds a thriftmux.Decorator that records one call-count
// and one latency observation per invocation, and registers its
// collectors against reg.
func Decorator(reg prometheus.Registerer) thriftmux.Decorator {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "thriftmux",
		Name:      "calls_total",
		Help:      "Total number of calls dispatched, labeled by outcome.",
	}, []string{"service", "method", "outcome"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "thriftmux",
		Name:      "call_duration_seconds",
		Help:      "Call latency from dispatch handler entry to return.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "method"})

	reg.MustRegister(calls, latency)

	return func(inner thriftmux.Handler) thriftmux.Handler {
		return &decoratedHandler{inner: inner, calls: calls, latency: latency}
	}
}

type decoratedHandler struct {
	inner   thriftmux.Handler
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

func (h *decoratedHandler) Invoke(ctx context.Context, call *thriftmux.Call) (interface{}, error) {
	start := time.Now()
	result, err := h.inner.Invoke(ctx, call)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	h.calls.WithLabelValues(call.ServiceName, call.MethodName, outcome).Inc()
	h.latency.WithLabelValues(call.ServiceName, call.MethodName).Observe(time.Since(start).Seconds())

	return result, err
}

func (h *decoratedHandler) Unwrap() thriftmux.Handler { return h.inner }
