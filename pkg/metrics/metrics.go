// Package metrics holds the Prometheus collectors exported on /metrics.
// Every helper is a no-op until Init has run, so packages can record
// unconditionally and tests need no registry.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "agrosmart_"

	ResultSuccess  = "success"
	ResultError    = "error"
	ResultRejected = "rejected"
)

var (
	registerOnce sync.Once

	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
	registrationTotal *prometheus.CounterVec
	uploadTotal       *prometheus.CounterVec
	exportTotal       *prometheus.CounterVec
)

// Init registers the collectors with the default registry.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
		registrationTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "registrations_total",
				Help: "Farmer registrations by result",
			},
			[]string{"result"},
		)
		uploadTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "uploads_total",
				Help: "Photo uploads by result",
			},
			[]string{"result"},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Farmer exports by format",
			},
			[]string{"format"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			registrationTotal,
			uploadTotal,
			exportTotal,
		)
	})
}

// ObserveHTTP records one finished request. route is the registered path
// pattern, not the raw URL, to keep label cardinality bounded.
func ObserveHTTP(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

func IncRegistration(result string) {
	if result == "" {
		result = ResultSuccess
	}
	if registrationTotal != nil {
		registrationTotal.WithLabelValues(result).Inc()
	}
}

func IncUpload(result string) {
	if result == "" {
		result = ResultSuccess
	}
	if uploadTotal != nil {
		uploadTotal.WithLabelValues(result).Inc()
	}
}

func IncExport(format string) {
	if format == "" {
		format = "unknown"
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format).Inc()
	}
}
