// Package diagfmt renders diagnostics of a lint run for the terminal or
// for tools.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"jshint/internal/diag"
)

// Format selects a renderer.
type Format uint8

const (
	// FormatText is the classic two-line report, grouped by file.
	FormatText Format = iota
	// FormatShort prints one grep-friendly line per diagnostic.
	FormatShort
	FormatJSON
	// FormatPretty adds color and a caret under the reported column.
	FormatPretty
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatShort:
		return "short"
	case FormatJSON:
		return "json"
	case FormatPretty:
		return "pretty"
	}
	return "unknown"
}

// ParseFormat converts a --format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "short":
		return FormatShort, nil
	case "json":
		return FormatJSON, nil
	case "pretty":
		return FormatPretty, nil
	}
	return FormatText, fmt.Errorf("unknown format %q (expected: text|short|json|pretty)", s)
}

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color   bool
	TabSize int // columns per tab when placing the caret; default 4
	Width   int // evidence is cut to this many columns, 0 = unlimited
}

// JSONOpts configures JSON.
type JSONOpts struct {
	Indent bool
	Max    int // обрезка вывода, не Bag; 0 = всё
}

// Write renders bag in format f. Callers should Sort the bag first.
func Write(w io.Writer, f Format, bag *diag.Bag, color bool) error {
	switch f {
	case FormatShort:
		return Short(w, bag)
	case FormatJSON:
		return JSON(w, bag, JSONOpts{Indent: true})
	case FormatPretty:
		return Pretty(w, bag, PrettyOpts{Color: color})
	default:
		return Text(w, bag)
	}
}
