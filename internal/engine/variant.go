package engine

import (
	"errors"
	"fmt"
	"strings"

	"jshint/internal/options"
)

// Variant identifies an analyzer flavour.
type Variant uint8

const (
	// JSLint is the strict analyzer.
	JSLint Variant = iota + 1
	// JSHint is the configurable fork; it is the default.
	JSHint
)

// Default is the variant used when none is requested.
const Default = JSHint

// ErrEngineNotFound reports an unknown variant or a missing script.
var ErrEngineNotFound = errors.New("analyzer engine not found")

// NotFoundError carries the requested name.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analyzer engine %q not found: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("analyzer engine %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrEngineNotFound }

func (e *NotFoundError) Unwrap() error { return e.Err }

// Variants lists every known variant in stable order.
func Variants() []Variant { return []Variant{JSLint, JSHint} }

// ParseVariant resolves a variant name case-insensitively.
// An empty name yields Default.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Default, nil
	case "jslint":
		return JSLint, nil
	case "jshint":
		return JSHint, nil
	default:
		return 0, &NotFoundError{Name: name}
	}
}

func (v Variant) String() string {
	switch v {
	case JSLint:
		return "jslint"
	case JSHint:
		return "jshint"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// Entry is the global name the analyzer script defines, e.g. JSHINT.
func (v Variant) Entry() string { return strings.ToUpper(v.String()) }

// Profile maps the variant onto its option table.
func (v Variant) Profile() options.Profile {
	if v == JSLint {
		return options.ProfileJSLint
	}
	return options.ProfileJSHint
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool { return v == JSLint || v == JSHint }
