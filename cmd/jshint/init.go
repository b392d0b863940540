package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"jshint/internal/engine"
	"jshint/internal/options"
)

var (
	initLinter string
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a jshint.toml with the analyzer defaults",
	Long: `Write jshint.toml into dir (default: current directory). The file lists
every option of the chosen analyzer with its default value, ready to edit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initLinter, "linter", "", "analyzer (jslint|jshint, default jshint)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing jshint.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	v, err := engine.ParseVariant(initLinter)
	if err != nil {
		return err
	}
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}

	path := filepath.Join(dir, "jshint.toml")
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	data, err := defaultConfig(v)
	if err != nil {
		return err
	}
	// #nosec G306 -- config file is meant to be shared
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	}
	return nil
}

// defaultConfig renders the option table of v as TOML, linter first.
func defaultConfig(v engine.Variant) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# jshint configuration; see `jshint options --linter %s`\n", v)
	fmt.Fprintf(&buf, "%s = %q\n\n", options.LinterKey, v.String())

	defaults := make(map[string]bool)
	for _, spec := range options.Table(v.Profile()) {
		defaults[spec.Name] = spec.Default
	}
	if err := toml.NewEncoder(&buf).Encode(defaults); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	buf.WriteString("\n# globals the analyzer should accept\npredef = []\n")
	return buf.Bytes(), nil
}
