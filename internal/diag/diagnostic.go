package diag

import "fmt"

// Diagnostic is one analyzer finding.
type Diagnostic struct {
	File      string   `json:"file,omitempty" msgpack:"file,omitempty"`
	Line      int      `json:"line" msgpack:"line"`           // zero-based
	Character int      `json:"character" msgpack:"character"` // zero-based
	Reason    string   `json:"reason" msgpack:"reason"`
	Evidence  string   `json:"evidence" msgpack:"evidence"`
	Code      string   `json:"code,omitempty" msgpack:"code,omitempty"`
	Severity  Severity `json:"severity" msgpack:"severity"`
}

// New builds a diagnostic with severity derived from code.
func New(line, character int, reason, evidence, code string) Diagnostic {
	return Diagnostic{
		Line:      line,
		Character: character,
		Reason:    reason,
		Evidence:  evidence,
		Code:      code,
		Severity:  SeverityForCode(code),
	}
}

// Position is the one-based "line:column" pair shown to users.
func (d Diagnostic) Position() string {
	return fmt.Sprintf("%d:%d", d.Line+1, d.Character+1)
}

// WithFile returns a copy attributed to path.
func (d Diagnostic) WithFile(path string) Diagnostic {
	d.File = path
	return d
}
