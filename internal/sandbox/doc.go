// Package sandbox runs an analyzer script in an isolated goja runtime.
//
// Every check gets its own Context; runtimes are never pooled, so analyzer
// globals (option state, the errors array) cannot leak between checks. Only
// compiled programs are shared, through a process-wide LRU keyed by script
// digest.
//
// The input text is bound as __jshint_input(), each option value as
// __jshint_opt_<i>, and the findings come back through __jshint_report.
// The glue that ties them together never interpolates input or option
// values; option names appear only as JSON-quoted object keys.
package sandbox
