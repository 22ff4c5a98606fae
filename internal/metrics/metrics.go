// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus counters and histograms for registry
// checks and verdicts. A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "citecheck"

// CheckDurationBuckets spans fast cache-warm answers up to the 10s call
// timeout.
var CheckDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10}

// Recorder owns a private Prometheus registry and the citecheck metrics.
type Recorder struct {
	registry       *prometheus.Registry
	registryChecks *prometheus.CounterVec
	checkDuration  *prometheus.HistogramVec
	verdicts       *prometheus.CounterVec
}

// New registers the citecheck metrics plus the Go and process collectors
// on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: reg,
		registryChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_checks_total",
			Help:      "Registry lookups by registry and outcome.",
		}, []string{"registry", "outcome"}),
		checkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "registry_check_duration_seconds",
			Help:      "Registry lookup latency.",
			Buckets:   CheckDurationBuckets,
		}, []string{"registry"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdicts_total",
			Help:      "Reference verdicts by label.",
		}, []string{"verdict"}),
	}
	reg.MustRegister(r.registryChecks, r.checkDuration, r.verdicts)
	return r
}

// ObserveCheck records one registry lookup.
func (r *Recorder) ObserveCheck(registry, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.registryChecks.WithLabelValues(registry, outcome).Inc()
	r.checkDuration.WithLabelValues(registry).Observe(d.Seconds())
}

// ObserveVerdict records one reference verdict.
func (r *Recorder) ObserveVerdict(verdict string) {
	if r == nil {
		return
	}
	r.verdicts.WithLabelValues(verdict).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}
