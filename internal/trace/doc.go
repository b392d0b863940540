// Package trace is the structured event log of jshint.
//
// Checks emit span and point events through a Tracer. A tracer filters by
// Level and Scope, then either writes events immediately (stream), keeps
// the most recent ones in memory (ring) for dumping after a crash, or both.
//
//	jshint check --trace=- --trace-level=detail src/
//
// Scopes, from coarse to fine:
//
//   - ScopeDriver: one CLI command or watch cycle
//   - ScopeFile: one checked input
//   - ScopePhase: load-engine, sandbox, collect
//   - ScopeRecord: individual analyzer records (skipped or malformed)
//
// A tracer travels with the context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "check", 0)
//	defer span.End("")
package trace
