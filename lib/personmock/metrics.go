// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personmock

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the server's collectors. Each Server registers on its
// own registry so several servers can run in one test binary.
type metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	injectedFaults  prometheus.Counter
	records         prometheus.Gauge
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "persons",
			Subsystem: "mock",
			Name:      "requests_total",
			Help:      "Requests handled, by route pattern and status code.",
		}, []string{"route", "code"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "persons",
			Subsystem: "mock",
			Name:      "request_duration_seconds",
			Help:      "Request handling time, including injected latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		injectedFaults: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "persons",
			Subsystem: "mock",
			Name:      "injected_faults_total",
			Help:      "Requests answered with a forced error status.",
		}),
		records: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "persons",
			Subsystem: "mock",
			Name:      "records",
			Help:      "Records currently stored.",
		}),
	}
}
