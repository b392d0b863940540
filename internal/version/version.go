// Package version holds build metadata for the jshint CLI.
// These variables can be overridden at build time via -ldflags.
package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Info is the machine-readable form of the build metadata.
type Info struct {
	Version   string   `json:"version"`
	GitCommit string   `json:"git_commit,omitempty"`
	BuildDate string   `json:"build_date,omitempty"`
	GoVersion string   `json:"go_version"`
	Linters   []string `json:"linters"`
}

// Get collects the current metadata. linters lists the bundled analyzers.
func Get(linters []string) Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Linters:   linters,
	}
}

// Colorize renders a "major.minor.patch[-suffix]" string with one color per
// component. Anything else is returned unchanged.
func Colorize(v string) string {
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	out := versionMajorColor.Sprint(parts[0]) + "." + versionMinorColor.Sprint(parts[1]) + "." + versionPatchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// WritePretty prints the human form.
func WritePretty(w io.Writer, info Info) error {
	if _, err := fmt.Fprintf(w, "jshint %s\n", Colorize(info.Version)); err != nil {
		return err
	}
	if info.GitCommit != "" {
		if _, err := fmt.Fprintf(w, "commit:  %s\n", info.GitCommit); err != nil {
			return err
		}
	}
	if info.BuildDate != "" {
		if _, err := fmt.Fprintf(w, "built:   %s\n", info.BuildDate); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "go:      %s\n", info.GoVersion); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "linters: %s\n", strings.Join(info.Linters, ", "))
	return err
}

// WriteJSON prints info as one JSON object.
func WriteJSON(w io.Writer, info Info) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}
