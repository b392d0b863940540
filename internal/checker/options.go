package checker

import (
	"time"

	"jshint/internal/engine"
	"jshint/internal/metrics"
	"jshint/internal/report"
	"jshint/internal/sandbox"
	"jshint/internal/trace"
)

// Option configures a Checker.
type Option func(*Checker)

// WithLoader replaces the bundled analyzer scripts.
func WithLoader(l engine.Loader) Option {
	return func(c *Checker) {
		if l != nil {
			c.loader = l
		}
	}
}

// WithTimeout bounds each Check; 0 disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.timeout = d }
}

func WithLimits(l sandbox.Limits) Option {
	return func(c *Checker) { c.limits = l }
}

// WithMalformedPolicy sets how records without a usable line, character
// or reason are treated. The default skips them.
func WithMalformedPolicy(p report.Policy) Option {
	return func(c *Checker) { c.policy = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Checker) { c.metrics = m }
}

// WithTracer pins a tracer. Without it the tracer comes from the Check
// context.
func WithTracer(t trace.Tracer) Option {
	return func(c *Checker) { c.tracer = t }
}
