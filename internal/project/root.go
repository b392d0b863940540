// Package project locates the lint configuration that applies to a
// directory.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"jshint/internal/options"
)

// ConfigNames are tried in each directory, in this order.
var ConfigNames = []string{".jshintrc", "jshint.toml", ".jshint.yaml", ".jshint.yml"}

// FindConfig walks up from startDir to locate the nearest config file.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range ConfigNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil {
				if info.IsDir() {
					continue
				}
				return candidate, true, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory holding the nearest config, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(path), true, nil
}

// Config is a loaded option file.
type Config struct {
	Path    string // empty when nothing was found
	Options map[string]any
}

// LoadConfig reads explicit when given, otherwise the nearest config above
// startDir. No config at all is not an error.
func LoadConfig(startDir, explicit string) (Config, error) {
	path := explicit
	if path == "" {
		found, ok, err := FindConfig(startDir)
		if err != nil {
			return Config{}, err
		}
		if !ok {
			return Config{Options: map[string]any{}}, nil
		}
		path = found
	}
	m, err := options.LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Config{Path: path, Options: m}, nil
}
