package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// MarshalText keeps JSON output readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "INFO":
		*s = SevInfo
	case "WARNING":
		*s = SevWarning
	case "ERROR":
		*s = SevError
	default:
		return fmt.Errorf("unknown severity %q", b)
	}
	return nil
}

// SeverityForCode maps JSHint codes by their prefix: E is an error, W a
// warning and I informational. JSLint reports no codes; its findings are
// all errors.
func SeverityForCode(code string) Severity {
	if code == "" {
		return SevError
	}
	switch code[0] {
	case 'W', 'w':
		return SevWarning
	case 'I', 'i':
		return SevInfo
	default:
		return SevError
	}
}
