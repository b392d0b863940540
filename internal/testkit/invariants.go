// Package testkit holds checks shared by tests of the lint pipeline.
package testkit

import (
	"fmt"
	"strings"

	"jshint/internal/diag"
	"jshint/internal/report"
	"jshint/internal/source"
)

// CheckReportInvariants verifies what every report of input must satisfy:
//  1. a non-nil report has at least one diagnostic
//  2. every diagnostic has a reason and non-negative position
//  3. the line is inside input, except for a trailing summary record
//  4. severity matches the code
//  5. evidence, when present, is the reported source line
func CheckReportInvariants(rep *report.Report, input string) error {
	if rep == nil {
		return nil
	}
	if len(rep.Diagnostics) == 0 {
		return fmt.Errorf("non-nil report without diagnostics")
	}
	lines := strings.Count(input, "\n") + 1
	for i, d := range rep.Diagnostics {
		if d.Reason == "" {
			return fmt.Errorf("diagnostic %d: empty reason", i)
		}
		if d.Line < 0 || d.Character < 0 {
			return fmt.Errorf("diagnostic %d: negative position %d:%d", i, d.Line, d.Character)
		}
		if d.Line >= lines && !isSummary(d) {
			return fmt.Errorf("diagnostic %d: line %d beyond input (%d lines)", i, d.Line+1, lines)
		}
		if want := diag.SeverityForCode(d.Code); d.Severity != want {
			return fmt.Errorf("diagnostic %d: severity %s for code %q, want %s", i, d.Severity, d.Code, want)
		}
		if d.Line < lines && d.Evidence != "" && !isSummary(d) {
			if got := source.Line(input, d.Line); d.Evidence != got && !strings.Contains(got, strings.TrimSpace(d.Evidence)) {
				return fmt.Errorf("diagnostic %d: evidence %q does not match line %q", i, d.Evidence, got)
			}
		}
	}
	return nil
}

// isSummary matches the "Too many errors" record analyzers append when
// they stop early.
func isSummary(d diag.Diagnostic) bool {
	return strings.HasPrefix(d.Reason, "Too many errors.")
}
