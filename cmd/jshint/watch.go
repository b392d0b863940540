package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"jshint/internal/diagfmt"
	"jshint/internal/driver"
	"jshint/internal/watch"
)

var (
	watchFlags    lintFlags
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Lint a tree once, then re-lint JavaScript files as they change",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchFlags.register(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 150*time.Millisecond, "quiet period before a batch of changes is linted")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	sess, err := newLintSession(&watchFlags, dir)
	if err != nil {
		return err
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	colorOn, err := useColor(cmd)
	if err != nil {
		return err
	}

	w, err := watch.New(dir, watch.Options{
		Debounce: watchDebounce,
		Filter:   driver.IsJSFile,
		OnError: func(err error) {
			fmt.Fprintf(errOut, "watch: %v\n", err)
		},
	})
	if err != nil {
		return err
	}

	lint := func(ctx context.Context, paths []string) {
		sum, err := driver.Run(ctx, sess.checker, paths, sess.driverOpts)
		if err != nil {
			if ctx.Err() == nil {
				fmt.Fprintf(errOut, "jshint: %v\n", err)
			}
			return
		}
		if err := printSummary(out, errOut, sess, sum, colorOn); err != nil {
			fmt.Fprintf(errOut, "jshint: %v\n", err)
		}
		if err := sess.writeMetrics(watchFlags.metricsOut); err != nil {
			fmt.Fprintf(errOut, "jshint: %v\n", err)
		}
	}

	// первый полный прогон; пустой каталог не ошибка
	if _, err := driver.Discover([]string{dir}); err == nil {
		lint(cmd.Context(), []string{dir})
	}
	if !quiet(cmd) {
		fmt.Fprintf(errOut, "watching %s (ctrl-c to stop)\n", dir)
	}

	return w.Run(cmd.Context(), func(ctx context.Context, changes []watch.Change) {
		paths := make([]string, 0, len(changes))
		for _, c := range changes {
			if c.Op == watch.OpRemove || c.Op == watch.OpRename {
				continue
			}
			if _, err := os.Stat(c.Path); err != nil {
				continue
			}
			paths = append(paths, c.Path)
		}
		if len(paths) == 0 {
			return
		}
		lint(ctx, paths)
	})
}

// printSummary is reportSummary without the exit status: a watch session
// keeps going after findings.
func printSummary(out, errOut io.Writer, sess *lintSession, sum *driver.Summary, colorOn bool) error {
	if sum.Bag.Len() > 0 {
		if err := diagfmt.Write(out, sess.format, sum.Bag, colorOn); err != nil {
			return err
		}
	}
	for _, r := range sum.Results {
		if r.Err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", r.Path, r.Err)
		}
	}
	if sum.Clean() {
		fmt.Fprintln(out, cleanMessage)
	}
	return nil
}
