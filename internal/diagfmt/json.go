package diagfmt

import (
	"encoding/json"
	"io"

	"jshint/internal/diag"
)

// DiagnosticJSON - диагностика в JSON формате; позиции 1-based.
type DiagnosticJSON struct {
	File     string `json:"file,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	Reason   string `json:"reason"`
	Evidence string `json:"evidence"`
}

// DiagnosticsOutput - корневая структура JSON вывода.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// BuildDiagnosticsOutput converts the bag without writing it.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	if bag == nil {
		return out
	}
	items := bag.Items()
	out.Count = len(items)
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
		out.Truncated = true
	}
	for _, d := range items {
		sev, _ := d.Severity.MarshalText() // never fails
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			File:     d.File,
			Line:     d.Line + 1,
			Column:   d.Character + 1,
			Severity: string(sev),
			Code:     d.Code,
			Reason:   d.Reason,
			Evidence: d.Evidence,
		})
	}
	return out
}

// JSON writes the bag as one JSON document.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}
