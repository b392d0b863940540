package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// ErrNoInputs is returned when the given paths hold no JavaScript files.
var ErrNoInputs = errors.New("no .js files found")

var skipDirs = map[string]struct{}{
	"node_modules":     {},
	"bower_components": {},
	"vendor":           {},
}

// IsJSFile reports whether path looks like a lintable script.
func IsJSFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs":
		return true
	}
	return false
}

// Discover expands paths into a duplicate-free list of files in argument
// order. Directories are walked recursively and their files sorted; hidden
// and dependency directories are skipped. Files named explicitly are kept
// whatever their extension, and "-" is passed through for stdin.
func Discover(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	stdin := false
	for _, p := range paths {
		if p == StdinPath {
			stdin = true
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Clean(p))
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if IsJSFile(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
		// Сортируем для детерминированного порядка
		slices.Sort(found)
		for _, f := range found {
			add(f)
		}
	}
	if stdin {
		out = append(out, StdinPath)
	}
	if len(out) == 0 {
		return nil, ErrNoInputs
	}
	return out, nil
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	_, ok := skipDirs[name]
	return ok
}
