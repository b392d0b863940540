// Package checker is the public face of jshint: a reusable, configurable
// check of JavaScript source text.
//
//	c, err := checker.New(map[string]any{"asi": true}, "jshint")
//	rep, err := c.Check(ctx, src)
//	if rep != nil {
//		fmt.Println(rep)
//	}
//
// A clean check returns a nil report. Every check runs in a fresh sandbox,
// so checks are independent and may run concurrently.
package checker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"jshint/internal/engine"
	"jshint/internal/metrics"
	"jshint/internal/options"
	"jshint/internal/report"
	"jshint/internal/sandbox"
	"jshint/internal/trace"
)

// Checker holds configuration and the analyzer script between checks.
type Checker struct {
	mu      sync.RWMutex
	variant engine.Variant
	store   *options.Store
	script  *engine.Script // nil until loaded; reset by SetVariant

	loader  engine.Loader
	timeout time.Duration
	limits  sandbox.Limits
	policy  report.Policy
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// New builds a checker. variant selects the analyzer; when empty the
// "linter" key of overrides decides, and JSHint is the fallback. The
// analyzer script is loaded here, so an unknown variant or a missing
// script fails with engine.ErrEngineNotFound.
func New(overrides map[string]any, variant string, opts ...Option) (*Checker, error) {
	linter, rest := options.SplitLinter(overrides)
	if variant == "" {
		variant = linter
	}
	v, err := engine.ParseVariant(variant)
	if err != nil {
		return nil, fmt.Errorf("checker: %w", err)
	}
	c := &Checker{
		variant: v,
		store:   options.NewStore(v.Profile(), rest),
		loader:  engine.Bundled(),
	}
	for _, opt := range opts {
		opt(c)
	}
	s, err := c.loader.Load(v.String())
	if err != nil {
		return nil, fmt.Errorf("checker: %w", err)
	}
	c.script = &s
	return c, nil
}

// Check analyzes text and returns its report, or nil when the analyzer
// found nothing. Failures inside the analyzer are sandbox.ErrEngineExecution.
//
// The analyzer sees text as a JavaScript string: invalid UTF-8 sequences
// reach it as U+FFFD, so evidence quoted by the analyzer carries U+FFFD
// where the input had those bytes. Evidence the analyzer leaves out is
// taken from text as is.
func (c *Checker) Check(ctx context.Context, text string) (*report.Report, error) {
	tr := c.tracer
	if tr == nil {
		tr = trace.FromContext(ctx)
	}
	start := time.Now()

	c.mu.RLock()
	v := c.variant
	bindings := c.store.Bindings()
	c.mu.RUnlock()

	span := trace.Begin(tr, trace.ScopeFile, "check", trace.ParentSpan(ctx)).
		WithExtra("linter", v.String())

	rep, malformed, err := c.run(ctx, tr, span.ID(), v, bindings, text)

	outcome := metrics.OutcomeClean
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
		span.WithExtra("error", err.Error())
	case rep != nil:
		outcome = metrics.OutcomeFindings
	}
	span.WithExtra("diagnostics", strconv.Itoa(rep.Len())).End(outcome)
	c.metrics.ObserveCheck(v.String(), outcome, time.Since(start), rep.Len(), malformed)
	return rep, err
}

func (c *Checker) run(ctx context.Context, tr trace.Tracer, parent uint64, v engine.Variant, bindings []options.Binding, text string) (*report.Report, int, error) {
	ls := trace.Begin(tr, trace.ScopePhase, "load-engine", parent)
	script, err := c.loadScript(v)
	ls.End(script.Digest)
	if err != nil {
		return nil, 0, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ss := trace.Begin(tr, trace.ScopePhase, "sandbox", parent)
	records, err := sandbox.Run(ctx, sandbox.Request{
		Script:   script,
		Input:    text,
		Bindings: bindings,
		Limits:   c.limits,
	})
	ss.WithExtra("records", strconv.Itoa(len(records))).End("")
	if err != nil {
		return nil, 0, err
	}

	cs := trace.Begin(tr, trace.ScopePhase, "collect", parent)
	col := report.Collector{Policy: c.policy, Tracer: tr, Parent: parent}
	diags, err := col.Collect(records, text)
	cs.WithExtra("skipped", strconv.Itoa(col.Skipped)).End("")
	if err != nil {
		return nil, col.Skipped, err
	}
	return report.Format(diags), col.Skipped, nil
}

// loadScript returns the cached script of v, loading it on first use.
func (c *Checker) loadScript(v engine.Variant) (engine.Script, error) {
	c.mu.RLock()
	if c.script != nil && c.script.Variant == v {
		s := *c.script
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	s, err := c.loader.Load(v.String())
	if err != nil {
		return engine.Script{}, err
	}
	c.mu.Lock()
	if c.variant == v {
		c.script = &s
	}
	c.mu.Unlock()
	return s, nil
}

// Variant reports the active analyzer.
func (c *Checker) Variant() engine.Variant {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.variant
}

// SetVariant switches the analyzer. Options set explicitly are kept; the
// defaults follow the new variant's table.
func (c *Checker) SetVariant(name string) error {
	v, err := engine.ParseVariant(name)
	if err != nil {
		return fmt.Errorf("checker: %w", err)
	}
	s, err := c.loader.Load(v.String())
	if err != nil {
		return fmt.Errorf("checker: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.variant = v
	c.store.SetProfile(v.Profile())
	c.script = &s
	return nil
}

// Get returns the current value of an option. "linter" yields the variant.
func (c *Checker) Get(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if name == options.LinterKey {
		return c.variant.String(), true
	}
	return c.store.Get(name)
}

// Set changes one option for subsequent checks. Setting "linter"
// switches the variant.
func (c *Checker) Set(name string, value any) error {
	if name == options.LinterKey {
		return c.SetVariant(fmt.Sprint(value))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Set(name, value)
	return nil
}

// Options returns a copy of the typed configuration.
func (c *Checker) Options() options.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Snapshot()
}

// Bindings returns the resolved option list handed to the analyzer.
func (c *Checker) Bindings() []options.Binding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Bindings()
}

// Digest identifies the loaded analyzer script.
func (c *Checker) Digest() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.script == nil {
		return ""
	}
	return c.script.Digest
}
