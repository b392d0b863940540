// Package driver lints many files with one checker.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"jshint/internal/diag"
	"jshint/internal/lintcache"
	"jshint/internal/metrics"
	"jshint/internal/observ"
	"jshint/internal/options"
	"jshint/internal/report"
	"jshint/internal/source"
	"jshint/internal/trace"
)

// Checker is what the driver needs from checker.Checker.
type Checker interface {
	Check(ctx context.Context, text string) (*report.Report, error)
	Bindings() []options.Binding
	Digest() string
}

// Options tune a Run.
type Options struct {
	Jobs           int                  // <= 0 means GOMAXPROCS
	Cache          *lintcache.DiskCache // nil disables caching
	Linter         string               // recorded in cache entries
	Metrics        *metrics.Metrics
	Progress       ProgressSink
	Stdin          io.Reader // used for "-"; defaults to os.Stdin
	BaseDir        string    // diagnostics show paths relative to it
	MaxDiagnostics int       // 0 = unlimited
}

// Result is the outcome of one file.
type Result struct {
	Path   string // as shown to the user
	File   *source.File
	Report *report.Report
	Cached bool
	Err    error
	Dur    time.Duration
}

// Summary collects a Run.
type Summary struct {
	Results []Result
	Files   *source.FileSet
	Bag     *diag.Bag
	Timer   *observ.Timer
}

// Failed counts files that could not be checked.
func (s *Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Clean reports whether every file was checked and nothing was found.
func (s *Summary) Clean() bool { return s.Failed() == 0 && s.Bag.Len() == 0 }

// Err joins per-file errors, prefixed by path.
func (s *Summary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Path, r.Err))
		}
	}
	return errors.Join(errs...)
}

// Run discovers files under paths and checks them in parallel. A failure
// in one file is recorded in its Result and does not stop the others; the
// returned error is for discovery problems and cancellation.
func Run(ctx context.Context, c Checker, paths []string, opts Options) (*Summary, error) {
	files, err := Discover(paths)
	if err != nil {
		return nil, err
	}
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "lint", trace.ParentSpan(ctx)).
		WithExtra("files", strconv.Itoa(len(files)))
	ctx = trace.WithSpan(ctx, span)

	sum := &Summary{
		Results: make([]Result, len(files)),
		Files:   source.NewFileSet(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   observ.NewTimer(),
	}
	for _, f := range files {
		emit(opts.Progress, Event{File: DisplayName(f, opts.BaseDir), Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// пути уже без повторов (Discover), находки анализатора не фильтруем
	reporter := &diag.BagReporter{Bag: sum.Bag}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res := lintFile(gctx, c, path, sum.Files, opts)
			sum.Results[i] = res
			sum.Timer.Record("file:"+res.Path, res.Dur, cacheNote(res))
			if res.Report != nil {
				for _, d := range res.Report.Diagnostics {
					reporter.Report(d.WithFile(res.Path))
				}
			}
			return nil
		})
	}
	err = g.Wait()
	sum.Bag.Sort()
	span.WithExtra("diagnostics", strconv.Itoa(sum.Bag.Len())).End("")
	return sum, err
}

func lintFile(ctx context.Context, c Checker, path string, fs *source.FileSet, opts Options) Result {
	start := time.Now()
	res := Result{Path: DisplayName(path, opts.BaseDir)}
	fail := func(stage Stage, err error) Result {
		res.Err = err
		res.Dur = time.Since(start)
		emit(opts.Progress, Event{File: res.Path, Stage: stage, Status: StatusError, Err: err, Elapsed: res.Dur})
		return res
	}

	emit(opts.Progress, Event{File: res.Path, Stage: StageRead, Status: StatusWorking})
	file, err := load(fs, path, opts.Stdin)
	if err != nil {
		return fail(StageRead, err)
	}
	res.File = file

	var key lintcache.Key
	if opts.Cache != nil {
		emit(opts.Progress, Event{File: res.Path, Stage: StageCache, Status: StatusWorking})
		key, err = lintcache.MakeKey(c.Digest(), c.Bindings(), file.Text)
		if err == nil {
			entry, ok, gerr := opts.Cache.Get(key)
			opts.Metrics.CacheLookup(ok)
			if gerr == nil && ok {
				res.Cached = true
				res.Report = report.Format(entry.Diagnostics)
				res.Dur = time.Since(start)
				emit(opts.Progress, Event{File: res.Path, Stage: StageCache, Status: StatusDone, Cached: true, Findings: res.Report.Len(), Elapsed: res.Dur})
				return res
			}
		}
	}

	emit(opts.Progress, Event{File: res.Path, Stage: StageCheck, Status: StatusWorking})
	rep, err := c.Check(ctx, file.Text)
	if err != nil {
		return fail(StageCheck, err)
	}
	res.Report = rep
	if opts.Cache != nil && key != (lintcache.Key{}) {
		entry := &lintcache.Entry{Linter: opts.Linter, Path: res.Path}
		if rep != nil {
			entry.Diagnostics = rep.Diagnostics
		}
		// кэш - оптимизация, ошибка записи не портит результат
		_ = opts.Cache.Put(key, entry)
	}
	res.Dur = time.Since(start)
	emit(opts.Progress, Event{File: res.Path, Stage: StageCheck, Status: StatusDone, Findings: rep.Len(), Elapsed: res.Dur})
	return res
}

func load(fs *source.FileSet, path string, stdin io.Reader) (*source.File, error) {
	if path != StdinPath {
		return fs.Load(path)
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	return fs.LoadReader("<stdin>", stdin)
}

func DisplayName(path, base string) string {
	if path == StdinPath {
		return "<stdin>"
	}
	return source.DisplayPath(path, base)
}

func cacheNote(r Result) string {
	switch {
	case r.Err != nil:
		return "error"
	case r.Cached:
		return "cached"
	}
	return ""
}
