package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"jshint/internal/checker"
	"jshint/internal/diag"
	"jshint/internal/lintcache"
	"jshint/internal/metrics"
	"jshint/internal/options"
	"jshint/internal/report"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	clean = "\"use strict\";\nvar x = 5;\n"
	dirty = "var x = 5"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func TestDiscover(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.js":                 clean,
		"a.js":                 clean,
		"lib/c.mjs":            clean,
		"node_modules/dep.js":  clean,
		".git/hook.js":         clean,
		"notes.txt":            "",
		"vendor/jquery.min.js": clean,
	})
	got, err := Discover([]string{root, filepath.Join(root, "a.js"), filepath.Join(root, "notes.txt"), "-"})
	require.NoError(t, err)
	want := []string{
		filepath.Join(root, "a.js"),
		filepath.Join(root, "b.js"),
		filepath.Join(root, "lib", "c.mjs"),
		filepath.Join(root, "notes.txt"),
		StdinPath,
	}
	assert.Equal(t, want, got)

	empty := filepath.Join(root, "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))
	_, err = Discover([]string{empty})
	assert.ErrorIs(t, err, ErrNoInputs)

	_, err = Discover([]string{filepath.Join(root, "missing.js")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCollectsPerFile(t *testing.T) {
	root := writeTree(t, map[string]string{"ok.js": clean, "bad.js": dirty})
	c, err := checker.New(nil, "jshint")
	require.NoError(t, err)

	sum, err := Run(context.Background(), c, []string{root}, Options{Jobs: 2, BaseDir: root})
	require.NoError(t, err)
	require.Len(t, sum.Results, 2)
	assert.Equal(t, "bad.js", sum.Results[0].Path)
	assert.Equal(t, "ok.js", sum.Results[1].Path)
	assert.Nil(t, sum.Results[1].Report)
	assert.False(t, sum.Clean())
	assert.Zero(t, sum.Failed())

	require.Equal(t, 2, sum.Bag.Len())
	for _, d := range sum.Bag.Items() {
		assert.Equal(t, "bad.js", d.File)
	}
	assert.Equal(t, "Missing semicolon.", sum.Bag.Items()[1].Reason)
	assert.Len(t, sum.Timer.Slowest(10), 2)
}

func TestRunStdin(t *testing.T) {
	c, err := checker.New(map[string]any{"strict": false}, "jslint")
	require.NoError(t, err)
	sum, err := Run(context.Background(), c, []string{StdinPath}, Options{Stdin: strings.NewReader("var x = 5;\n")})
	require.NoError(t, err)
	require.Len(t, sum.Results, 1)
	assert.Equal(t, "<stdin>", sum.Results[0].Path)
	assert.True(t, sum.Clean())
}

// fakeChecker reports one finding for any text containing "bad", the same
// finding twice for "twice" and fails on "boom".
type fakeChecker struct {
	calls atomic.Int32
}

func (f *fakeChecker) Check(_ context.Context, text string) (*report.Report, error) {
	f.calls.Add(1)
	switch {
	case strings.Contains(text, "boom"):
		return nil, errors.New("analyzer exploded")
	case strings.Contains(text, "twice"):
		d := diag.New(0, 0, "twice", text, "W002")
		return report.Format([]diag.Diagnostic{d, d}), nil
	case strings.Contains(text, "bad"):
		return report.Format([]diag.Diagnostic{diag.New(0, 0, "bad thing", text, "W001")}), nil
	}
	return nil, nil
}

func (f *fakeChecker) Bindings() []options.Binding {
	return []options.Binding{{Name: "asi", Value: false}}
}

func (f *fakeChecker) Digest() string { return "fake" }

func TestRunFailureIsPerFile(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "bad", "b.js": "boom", "c.js": "fine"})
	sum, err := Run(context.Background(), &fakeChecker{}, []string{root}, Options{BaseDir: root})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Failed())
	assert.Equal(t, 1, sum.Bag.Len())
	require.Error(t, sum.Err())
	assert.Contains(t, sum.Err().Error(), "b.js: analyzer exploded")
	assert.False(t, sum.Clean())
}

func TestRunKeepsRepeatedFindingsAndDropsRepeatedPaths(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "twice"})
	path := filepath.Join(root, "a.js")
	fc := &fakeChecker{}
	sum, err := Run(context.Background(), fc, []string{path, path}, Options{BaseDir: root})
	require.NoError(t, err)
	assert.EqualValues(t, 1, fc.calls.Load())
	require.Len(t, sum.Results, 1)
	assert.Equal(t, 2, sum.Bag.Len(), "both findings of the analyzer are kept")
	assert.Equal(t, sum.Results[0].Report.Len(), sum.Bag.Len())
}

func TestRunUsesCache(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "bad", "b.js": "fine"})
	cache, err := lintcache.OpenDir(t.TempDir())
	require.NoError(t, err)
	m := metrics.New()
	fc := &fakeChecker{}
	opts := Options{Cache: cache, Metrics: m, BaseDir: root, Linter: "jshint"}

	first, err := Run(context.Background(), fc, []string{root}, opts)
	require.NoError(t, err)
	assert.EqualValues(t, 2, fc.calls.Load())

	second, err := Run(context.Background(), fc, []string{root}, opts)
	require.NoError(t, err)
	assert.EqualValues(t, 2, fc.calls.Load(), "second run must be served from cache")
	for _, r := range second.Results {
		assert.True(t, r.Cached, r.Path)
	}
	assert.Equal(t, first.Bag.Items(), second.Bag.Items())

	n, err := testutil.GatherAndCount(m.Registry(), "jshint_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n) // hit and miss series
}

func TestRunProgressEvents(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "bad", "b.js": "boom"})
	ch := make(chan Event, 64)
	_, err := Run(context.Background(), &fakeChecker{}, []string{root}, Options{Progress: ChannelSink{Ch: ch}, BaseDir: root})
	require.NoError(t, err)
	close(ch)

	last := map[string]Event{}
	queued := 0
	for ev := range ch {
		if ev.Status == StatusQueued {
			queued++
		}
		last[ev.File] = ev
	}
	assert.Equal(t, 2, queued)
	assert.Equal(t, StatusDone, last["a.js"].Status)
	assert.Equal(t, 1, last["a.js"].Findings)
	assert.Equal(t, StatusError, last["b.js"].Status)
	assert.Equal(t, StageCheck, last["b.js"].Stage)
}

func TestRunCanceled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "fine"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, &fakeChecker{}, []string{root}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
