package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jshint/internal/checker"
	"jshint/internal/diagfmt"
	"jshint/internal/driver"
	"jshint/internal/engine"
	"jshint/internal/lintcache"
	"jshint/internal/metrics"
	"jshint/internal/options"
	"jshint/internal/project"
	"jshint/internal/report"
)

const cleanMessage = "JSLinty-fresh!"

// lintFlags are shared by check and watch.
type lintFlags struct {
	linter            string
	engineDir         string
	config            string
	set               []string
	format            string
	jobs              int
	timeout           time.Duration
	cache             bool
	metricsOut        string
	strictDiagnostics bool
	maxDiagnostics    int
}

func (f *lintFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.linter, "linter", "", "analyzer to run (jslint|jshint); overrides the config file")
	fl.StringVar(&f.engineDir, "engine-dir", "", "load <linter>.js from this directory instead of the bundled stand-in analyzers")
	fl.StringVar(&f.config, "config", "", "option file (.jshintrc, .toml, .yaml); default: nearest one found upwards")
	fl.StringArrayVar(&f.set, "set", nil, "override an option, name=value (repeatable)")
	fl.StringVar(&f.format, "format", "text", "output format (text|short|json|pretty)")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "max parallel checks (0=auto)")
	fl.DurationVar(&f.timeout, "timeout", 10*time.Second, "per-file analyzer time limit (0 disables)")
	fl.BoolVar(&f.cache, "cache", false, "reuse results of unchanged files from the disk cache")
	fl.StringVar(&f.metricsOut, "metrics-out", "", "write Prometheus metrics to this file when done")
	fl.BoolVar(&f.strictDiagnostics, "strict-diagnostics", false, "fail when the analyzer returns a malformed record")
	fl.IntVar(&f.maxDiagnostics, "max-diagnostics", 0, "stop collecting after this many diagnostics (0=all)")
}

// lintSession is everything a lint run needs, built once per command.
type lintSession struct {
	checker    *checker.Checker
	metrics    *metrics.Metrics
	format     diagfmt.Format
	configPath string
	driverOpts driver.Options
}

// newLintSession resolves configuration for the tree at startDir and
// builds the checker.
func newLintSession(f *lintFlags, startDir string) (*lintSession, error) {
	format, err := diagfmt.ParseFormat(f.format)
	if err != nil {
		return nil, err
	}
	cfg, err := project.LoadConfig(startDir, f.config)
	if err != nil {
		return nil, err
	}
	overrides := cfg.Options
	for _, kv := range f.set {
		name, value, err := options.ParseAssignment(kv)
		if err != nil {
			return nil, err
		}
		overrides[name] = value
	}

	s := &lintSession{format: format, configPath: cfg.Path}
	opts := []checker.Option{checker.WithTimeout(f.timeout)}
	if f.engineDir != "" {
		opts = append(opts, checker.WithLoader(engine.NewDirLoader(f.engineDir)))
	}
	if f.strictDiagnostics {
		opts = append(opts, checker.WithMalformedPolicy(report.FailMalformed))
	}
	if f.metricsOut != "" {
		s.metrics = metrics.New()
		opts = append(opts, checker.WithMetrics(s.metrics))
	}
	c, err := checker.New(overrides, f.linter, opts...)
	if err != nil {
		return nil, err
	}
	s.checker = c

	base, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	s.driverOpts = driver.Options{
		Jobs:           f.jobs,
		Linter:         c.Variant().String(),
		Metrics:        s.metrics,
		BaseDir:        base,
		MaxDiagnostics: f.maxDiagnostics,
	}
	if f.cache {
		cache, err := lintcache.Open("jshint")
		if err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
		s.driverOpts.Cache = cache
	}
	return s, nil
}

// configStart picks the directory config discovery starts from: the first
// path argument, or the working directory.
func configStart(paths []string) string {
	for _, p := range paths {
		if p == driver.StdinPath {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			break
		}
		if info.IsDir() {
			return p
		}
		return filepath.Dir(p)
	}
	return "."
}

func (s *lintSession) writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := s.metrics.WriteFile(path); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
