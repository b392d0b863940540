package diagfmt

import (
	"fmt"
	"io"

	"jshint/internal/diag"
	"jshint/internal/report"
)

// Text writes the legacy report of every file. With more than one file,
// or a named one, each group is preceded by the file name.
func Text(w io.Writer, bag *diag.Bag) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	items := bag.Items()
	files := bag.Files()
	headers := len(files) > 1 || files[0] != ""
	for i, file := range files {
		group := make([]diag.Diagnostic, 0, len(items))
		for _, d := range items {
			if d.File == file {
				group = append(group, d)
			}
		}
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if headers {
			if _, err := fmt.Fprintf(w, "%s:\n", file); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, report.Format(group).String()); err != nil {
			return err
		}
	}
	return nil
}

// Short writes "path:line:col: SEVERITY [code] reason" lines.
func Short(w io.Writer, bag *diag.Bag) error {
	if bag == nil {
		return nil
	}
	for _, d := range bag.Items() {
		file := d.File
		if file == "" {
			file = "<input>"
		}
		code := ""
		if d.Code != "" {
			code = d.Code + " "
		}
		if _, err := fmt.Fprintf(w, "%s:%s: %s %s%s\n", file, d.Position(), d.Severity, code, d.Reason); err != nil {
			return err
		}
	}
	return nil
}
