// Package watch reports batches of file changes under a directory tree.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of a change.
type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
	OpRename
)

func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	}
	return "unknown"
}

// Change is one file event after deduplication.
type Change struct {
	Path string
	Op   Op
	Time time.Time
}

// Handler receives a debounced batch, sorted by path. It runs on the
// watcher goroutine; events arriving meanwhile are buffered by fsnotify.
type Handler func(ctx context.Context, changes []Change)

// Options tune a Watcher.
type Options struct {
	Debounce time.Duration     // default 100ms
	Ignore   []string          // base names or globs of skipped entries
	Filter   func(string) bool // files passing it are reported; nil = all
	OnError  func(error)
}

// DefaultIgnore is used when Options.Ignore is nil.
var DefaultIgnore = []string{".git", ".hg", ".svn", "node_modules", "bower_components", ".idea", "*.swp", "*~", "*.tmp"}

// Watcher watches root recursively.
type Watcher struct {
	root string
	opts Options
	fw   *fsnotify.Watcher
}

// New subscribes to root and every directory below it. Events are
// delivered by Run; Close releases a watcher that is never run.
func New(root string, opts Options) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("watch: " + root + " is not a directory")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	if opts.Ignore == nil {
		opts.Ignore = DefaultIgnore
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{root: root, opts: opts, fw: fw}
	if err := w.addRecursive(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error { return w.fw.Close() }

// Run blocks until ctx is done, calling h for every batch. A pending
// batch is flushed before Run returns.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	defer w.fw.Close()

	pending := make(map[string]Change)
	var timer *time.Timer
	var timerC <-chan time.Time
	flush := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
		if len(pending) == 0 {
			return
		}
		batch := make([]Change, 0, len(pending))
		for _, c := range pending {
			batch = append(batch, c)
		}
		clear(pending)
		slices.SortFunc(batch, func(a, b Change) int { return strings.Compare(a.Path, b.Path) })
		h(ctx, batch)
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				flush()
				return nil
			}
			if w.ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					// новый каталог: подписываемся и на его содержимое
					if err := w.addRecursive(ev.Name); err != nil {
						w.report(err)
					}
					continue
				}
			}
			if w.opts.Filter != nil && !w.opts.Filter(ev.Name) {
				continue
			}
			pending[ev.Name] = Change{Path: ev.Name, Op: convertOp(ev.Op), Time: time.Now()}
			// окно сдвигается с каждым событием
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.opts.Debounce)
			}
		case <-timerC:
			timer, timerC = nil, nil
			flush()
		case err, ok := <-w.fw.Errors:
			if !ok {
				flush()
				return nil
			}
			w.report(err)
		}
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// каталог мог исчезнуть между событием и обходом
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignored(path) {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.opts.Ignore {
		if base == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) report(err error) {
	if w.opts.OnError != nil {
		w.opts.OnError(err)
	}
}

func convertOp(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	default:
		return OpWrite
	}
}
