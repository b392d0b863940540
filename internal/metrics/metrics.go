// Package metrics exposes check counters in Prometheus form. The CLI
// writes them to a text file for node_exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jshint"

// Check outcomes.
const (
	OutcomeClean    = "clean"
	OutcomeFindings = "findings"
	OutcomeError    = "error"
)

// Metrics is a set of collectors on a private registry. A nil *Metrics
// records nothing.
type Metrics struct {
	reg *prometheus.Registry

	checks      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	diagnostics *prometheus.CounterVec
	malformed   *prometheus.CounterVec
	cache       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		checks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Checks run, by analyzer and outcome.",
		}, []string{"linter", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "check_duration_seconds",
			Help:      "Wall time of one check including sandbox setup.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"linter"}),
		diagnostics: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Diagnostics reported.",
		}, []string{"linter"}),
		malformed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_records_total",
			Help:      "Analyzer records dropped as malformed.",
		}, []string{"linter"}),
		cache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Disk cache lookups, by result.",
		}, []string{"result"}),
	}
}

// ObserveCheck records one finished check.
func (m *Metrics) ObserveCheck(linter, outcome string, d time.Duration, diagnostics, malformed int) {
	if m == nil {
		return
	}
	m.checks.WithLabelValues(linter, outcome).Inc()
	m.duration.WithLabelValues(linter).Observe(d.Seconds())
	if diagnostics > 0 {
		m.diagnostics.WithLabelValues(linter).Add(float64(diagnostics))
	}
	if malformed > 0 {
		m.malformed.WithLabelValues(linter).Add(float64(malformed))
	}
}

// CacheLookup counts a disk cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cache.WithLabelValues("hit").Inc()
		return
	}
	m.cache.WithLabelValues("miss").Inc()
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// WriteFile atomically writes the text exposition format to path.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.reg)
}
