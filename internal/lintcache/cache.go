// Package lintcache keeps reports of previous checks on disk, so unchanged
// files are not analyzed again.
package lintcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"jshint/internal/diag"
	"jshint/internal/options"
)

// Current schema version - increment when Entry format changes
const schemaVersion uint16 = 1

// Key - sha256 от скрипта, опций и текста.
type Key [32]byte

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// Entry is what the cache stores for one check.
type Entry struct {
	Schema      uint16
	Linter      string
	Path        string
	Diagnostics []diag.Diagnostic
	Created     time.Time
}

// Clean reports whether the cached check found nothing.
func (e *Entry) Clean() bool { return len(e.Diagnostics) == 0 }

// MakeKey derives the cache key of a check. Bindings are ordered, so equal
// configurations hash equally.
func MakeKey(scriptDigest string, bindings []options.Binding, text string) (Key, error) {
	h := sha256.New()
	_, _ = h.Write([]byte(scriptDigest))
	_, _ = h.Write([]byte{0})
	enc := msgpack.NewEncoder(h)
	enc.SetSortMapKeys(true)
	for _, b := range bindings {
		if err := enc.EncodeString(b.Name); err != nil {
			return Key{}, err
		}
		if err := enc.Encode(b.Value); err != nil {
			return Key{}, fmt.Errorf("option %s: %w", b.Name, err)
		}
	}
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(text))
	var k Key
	copy(k[:], h.Sum(nil))
	return k, nil
}

// DiskCache stores entries under a directory, one file per key.
// Thread-safe for concurrent access. A nil *DiskCache is a disabled cache.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open uses $XDG_CACHE_HOME/app, falling back to ~/.cache/app.
func Open(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir uses dir as is.
func OpenDir(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache location.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Key) string {
	// подкаталог по первому байту, чтобы не держать тысячи файлов рядом
	s := key.String()
	return filepath.Join(c.dir, "reports", s[:2], s+".mp")
}

// Put serializes and writes an entry to the disk cache.
func (c *DiskCache) Put(key Key, e *Entry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	stored := *e
	stored.Schema = schemaVersion
	if stored.Created.IsZero() {
		stored.Created = time.Now().UTC()
	}
	if err = msgpack.NewEncoder(f).Encode(&stored); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an entry. A missing entry or one written by another schema
// version is a miss.
func (c *DiskCache) Get(key Key) (*Entry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- path is derived from a hex key
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var e Entry
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return nil, false, fmt.Errorf("lintcache: %s: %w", key, err)
	}
	if e.Schema != schemaVersion {
		return nil, false, nil
	}
	return &e, true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
