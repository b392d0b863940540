package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jshint/internal/engine"
	"jshint/internal/options"
)

// execute runs the CLI with args and returns stdout, stderr and the exit code.
func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	resetFlags()
	rootCmd.SetArgs(append([]string{}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	code := 0
	var exit *exitError
	switch {
	case errors.As(err, &exit):
		code = exit.code
	case err != nil:
		errOut.WriteString(err.Error())
		code = 2
	}
	return out.String(), errOut.String(), code
}

// resetFlags restores defaults: cobra keeps flag values between executions.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestCheckClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.js", "\"use strict\";\nvar x = 5;\n")
	out, _, code := execute(t, "check", "--ui", "off", "--color", "off", dir)
	assert.Equal(t, 0, code)
	assert.Equal(t, cleanMessage+"\n", out)
}

func TestCheckFindingsExitOne(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.js", "var x = 5")
	out, _, code := execute(t, "check", "--ui", "off", "--color", "off", "--format", "short", dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, ":1:10: WARNING W033 Missing semicolon.")
	assert.NotContains(t, out, cleanMessage)
}

func TestCheckSetOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".jshintrc", `{"strict": false}`)
	writeFile(t, dir, "a.js", "var x = 5\n")

	_, _, code := execute(t, "check", "--ui", "off", "--set", "asi=true", dir)
	assert.Equal(t, 0, code, "config disables strict and --set enables asi")

	_, _, code = execute(t, "check", "--ui", "off", dir)
	assert.Equal(t, 1, code)
}

func TestCheckEngineDirReplacesBundledAnalyzer(t *testing.T) {
	engines := t.TempDir()
	writeFile(t, engines, "jshint.js", `var JSHINT = function (src) {
	var e = {line: 0, character: 0, reason: "from engine dir", evidence: src, code: "W900"};
	JSHINT.errors = [e, e];
};`)
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "\"use strict\";\n")

	out, _, code := execute(t, "check", "--ui", "off", "--format", "short", "--engine-dir", engines, dir)
	assert.Equal(t, 1, code)
	assert.Equal(t, 2, strings.Count(out, ":1:1: WARNING W900 from engine dir"), out)

	_, errOut, code := execute(t, "check", "--ui", "off", "--engine-dir", t.TempDir(), dir)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "jshint")
}

func TestCheckUnknownLinter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "")
	_, errOut, code := execute(t, "check", "--ui", "off", "--linter", "eslint", dir)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "eslint")
}

func TestCheckJSONAlwaysPrints(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.js", "\"use strict\";\nvar x = 5;\n")
	out, _, code := execute(t, "check", "--ui", "off", "--format", "json", dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"count": 0`)
	assert.NotContains(t, out, cleanMessage)
}

func TestCheckMetricsOut(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.js", "var x = 5")
	metricsPath := filepath.Join(t.TempDir(), "lint.prom")
	_, _, code := execute(t, "check", "--ui", "off", "--metrics-out", metricsPath, dir)
	assert.Equal(t, 1, code)
	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `jshint_checks_total{linter="jshint",outcome="findings"} 1`)
}

func TestInitWritesDecodableDefaults(t *testing.T) {
	dir := t.TempDir()
	_, _, code := execute(t, "init", "--quiet", "--linter", "jslint", dir)
	require.Equal(t, 0, code)

	m, err := options.LoadFile(filepath.Join(dir, "jshint.toml"))
	require.NoError(t, err)
	assert.Equal(t, "jslint", m["linter"])
	assert.Equal(t, true, m["bitwise"])
	_, hasCurly := m["curly"]
	assert.False(t, hasCurly, "jslint table has no curly")

	_, errOut, code := execute(t, "init", dir)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "already exists")
}

func TestOptionsTable(t *testing.T) {
	out, _, code := execute(t, "options", "--linter", "jshint")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "curly")
	assert.Contains(t, out, "OPTION")

	table := renderOptionTable(engine.JSLint)
	assert.NotContains(t, table, "curly")
}

func TestVersionJSON(t *testing.T) {
	out, _, code := execute(t, "version", "--format", "json")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"linters": [`)
	assert.True(t, strings.Contains(out, `"jslint"`) && strings.Contains(out, `"jshint"`))
}

func TestConfigStart(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "a.js", "")
	assert.Equal(t, dir, configStart([]string{f}))
	assert.Equal(t, dir, configStart([]string{"-", dir}))
	assert.Equal(t, ".", configStart(nil))
}

func TestReadUIMode(t *testing.T) {
	m, err := readUIMode(" ON ")
	require.NoError(t, err)
	assert.Equal(t, uiModeOn, m)
	assert.False(t, shouldUseTUI(uiModeOff))
	_, err = readUIMode("sometimes")
	assert.Error(t, err)
}
