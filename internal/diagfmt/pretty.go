package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jshint/internal/diag"
)

// Pretty печатает для каждой диагностики:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <reason>
//	   12 | if (a) a = 2;
//	      |        ^
//
// Колонка каретки учитывает ширину символов и табы.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	if opts.TabSize <= 0 {
		opts.TabSize = 4
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		file := d.File
		if file == "" {
			file = "<input>"
		}
		head := p.sev(d.Severity)
		if d.Code != "" {
			head += " " + p.code.Sprint(d.Code)
		}
		if _, err := fmt.Fprintf(w, "%s: %s: %s\n", p.path.Sprintf("%s:%s", file, d.Position()), head, p.reason.Sprint(d.Reason)); err != nil {
			return err
		}
		if d.Evidence == "" {
			continue
		}
		gutter := fmt.Sprintf("%5d | ", d.Line+1)
		line, caretCol := expandLine(d.Evidence, d.Character, opts.TabSize)
		if opts.Width > 0 && runewidth.StringWidth(line) > opts.Width {
			line = runewidth.Truncate(line, opts.Width, "…")
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", p.gutter.Sprint(gutter), line); err != nil {
			return err
		}
		pad := strings.Repeat(" ", len(gutter)-2)
		if _, err := fmt.Fprintf(w, "%s%s%s\n", p.gutter.Sprint(pad+"| "), strings.Repeat(" ", caretCol), p.caret.Sprint("^")); err != nil {
			return err
		}
	}
	return nil
}

// expandLine replaces tabs with spaces and returns the display column of
// the character at index char (counted in runes).
func expandLine(s string, char, tabSize int) (string, int) {
	var sb strings.Builder
	col, caret := 0, -1
	i := 0
	for _, r := range s {
		if i == char {
			caret = col
		}
		if r == '\t' {
			n := tabSize - col%tabSize
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		} else {
			sb.WriteRune(r)
			col += runewidth.RuneWidth(r)
		}
		i++
	}
	if caret < 0 {
		// past the end, e.g. a missing semicolon
		caret = col + (char - i)
		if caret < col {
			caret = col
		}
	}
	return sb.String(), caret
}

type palette struct {
	path, code, reason, gutter, caret *color.Color
	err, warn, info                   *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		path:   mk(color.Bold),
		code:   mk(color.FgHiBlack),
		reason: mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan),
	}
}

func (p palette) sev(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return p.err.Sprint("error")
	case diag.SevWarning:
		return p.warn.Sprint("warning")
	default:
		return p.info.Sprint("info")
	}
}
