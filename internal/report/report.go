// Package report turns analyzer records into the line-oriented report
// returned by a check.
package report

import (
	"fmt"
	"strings"

	"jshint/internal/diag"
)

// Report is the ordered findings of one check. A clean check has no
// report at all: Format returns nil.
type Report struct {
	Diagnostics []diag.Diagnostic
}

// Format wraps diags, or returns nil when there are none.
func Format(diags []diag.Diagnostic) *Report {
	if len(diags) == 0 {
		return nil
	}
	return &Report{Diagnostics: diags}
}

// Len is 0 for a nil report.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Diagnostics)
}

// String renders two lines per finding:
//
//	Error at line 1 character 10: Missing semicolon.
//	  var x = 5
//
// Positions are one-based; evidence is printed as the analyzer gave it.
func (r *Report) String() string {
	if r == nil {
		return ""
	}
	lines := make([]string, 0, 2*len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		lines = append(lines,
			fmt.Sprintf("Error at line %d character %d: %s", d.Line+1, d.Character+1, d.Reason),
			"  "+d.Evidence,
		)
	}
	return strings.Join(lines, "\n")
}
