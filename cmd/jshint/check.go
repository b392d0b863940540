package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jshint/internal/diagfmt"
	"jshint/internal/driver"
	"jshint/internal/ui"
)

var (
	checkFlags lintFlags
	checkUI    string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...|-]",
	Short: "Lint JavaScript files",
	Long: `Lint the given files and directories (default: current directory).
Directories are searched recursively for .js, .mjs and .cjs files; "-" reads
from stdin. Exits with 1 when anything was found and 2 when a file could not
be checked.`,
	RunE: runCheck,
}

func init() {
	checkFlags.register(checkCmd)
	checkCmd.Flags().StringVar(&checkUI, "ui", "auto", "progress UI (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	mode, err := readUIMode(checkUI)
	if err != nil {
		return err
	}
	sess, err := newLintSession(&checkFlags, configStart(args))
	if err != nil {
		return err
	}
	// stdin и TUI не дружат
	useUI := shouldUseTUI(mode) && checkFlags.format != "json" && !readsStdin(args)

	var sum *driver.Summary
	if useUI {
		sum, err = runCheckWithUI(cmd.Context(), sess, args)
	} else {
		sum, err = driver.Run(cmd.Context(), sess.checker, args, sess.driverOpts)
	}
	if err != nil {
		return err
	}
	if err := sess.writeMetrics(checkFlags.metricsOut); err != nil {
		return err
	}
	return reportSummary(cmd, sess, sum)
}

func readsStdin(args []string) bool {
	for _, a := range args {
		if a == driver.StdinPath {
			return true
		}
	}
	return false
}

// reportSummary prints diagnostics, per-file failures and timings, and turns
// the outcome into the exit status.
func reportSummary(cmd *cobra.Command, sess *lintSession, sum *driver.Summary) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	colorOn, err := useColor(cmd)
	if err != nil {
		return err
	}
	if sum.Bag.Len() > 0 || sess.format == diagfmt.FormatJSON {
		if err := diagfmt.Write(out, sess.format, sum.Bag, colorOn); err != nil {
			return err
		}
	}
	for _, r := range sum.Results {
		if r.Err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", r.Path, r.Err)
		}
	}
	if t, _ := cmd.Root().PersistentFlags().GetBool("timings"); t {
		printTimings(errOut, sum)
	}

	switch {
	case sum.Failed() > 0:
		return &exitError{code: 2}
	case sum.Bag.Len() > 0:
		return &exitError{code: 1}
	}
	if !quiet(cmd) && sess.format != diagfmt.FormatJSON {
		fmt.Fprintln(out, cleanMessage)
	}
	return nil
}

func printTimings(w io.Writer, sum *driver.Summary) {
	fmt.Fprintln(w, "timings:")
	for _, p := range sum.Timer.Slowest(10) {
		note := ""
		if p.Note != "" {
			note = " (" + p.Note + ")"
		}
		fmt.Fprintf(w, "  %8.1f ms  %s%s\n", toMillis(p.Dur), strings.TrimPrefix(p.Name, "file:"), note)
	}
	fmt.Fprintln(w, sum.Timer.Summary())
}

type checkOutcome struct {
	sum *driver.Summary
	err error
}

func runCheckWithUI(ctx context.Context, sess *lintSession, args []string) (*driver.Summary, error) {
	files, err := driver.Discover(args)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = driver.DisplayName(f, sess.driverOpts.BaseDir)
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)
	go func() {
		opts := sess.driverOpts
		opts.Progress = driver.ChannelSink{Ch: events}
		sum, err := driver.Run(ctx, sess.checker, files, opts)
		outcomeCh <- checkOutcome{sum: sum, err: err}
		close(events)
	}()

	title := "linting with " + sess.checker.Variant().String()
	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, иначе воркеры встанут на полном канале
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.sum, uiErr
	}
	return outcome.sum, outcome.err
}
