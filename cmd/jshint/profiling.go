package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jshint/internal/prof"
)

var profSession *prof.Session

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return err
	}
	if cfg.Mem, err = flags.GetString("memprofile"); err != nil {
		return err
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return err
	}
	if !cfg.Enabled() {
		return nil
	}
	s, err := prof.Start(cfg)
	if err != nil {
		return fmt.Errorf("profiling: %w", err)
	}
	profSession = s
	return nil
}

func stopProfiling(cmd *cobra.Command) {
	s := profSession
	profSession = nil
	if err := s.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
	}
}
