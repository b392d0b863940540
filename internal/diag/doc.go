// Package diag defines the diagnostic record produced by a check.
//
// A Diagnostic is one analyzer finding translated into host terms: a
// zero-based line and character, the analyzer's reason text, the source
// line it quoted (evidence) and, for JSHint, a rule code such as "W033".
// Severity is derived from the code.
//
// Bag accumulates diagnostics of several files for the CLI. Reporter is the
// sink interface used by the driver; BagReporter stores into a Bag. Every
// finding the analyzer emits is kept, repeats included.
//
// Package diag does no formatting; renderers live in internal/diagfmt and
// the legacy two-line report lives in internal/report.
package diag
