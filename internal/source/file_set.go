package source

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"sync"

	"fortio.org/safecast"
)

// FileSet holds loaded inputs. Safe for concurrent use.
type FileSet struct {
	mu    sync.RWMutex
	files []*File
	index map[string]FileID // path -> latest id
}

func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add stores text under path and returns a new FileID, even when the path
// was added before.
func (fs *FileSet) Add(path, text string, flags FileFlags) *File {
	f := &File{
		Path:    normalizePath(path),
		Text:    text,
		LineIdx: buildLineIndex(text),
		Hash:    sha256.Sum256([]byte(text)),
		Flags:   flags,
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	f.ID = FileID(n)
	fs.files = append(fs.files, f)
	fs.index[f.Path] = f.ID
	return f
}

// Load reads path from disk and decodes it.
func (fs *FileSet) Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, flags, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fs.Add(path, text, flags), nil
}

// LoadReader adds a virtual file read from r (stdin).
func (fs *FileSet) LoadReader(name string, r io.Reader) (*File, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, flags, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return fs.Add(name, text, flags|FileVirtual), nil
}

// Get returns the file with id, or nil.
func (fs *FileSet) Get(id FileID) *File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if int(id) >= len(fs.files) {
		return nil
	}
	return fs.files[id]
}

// GetByPath returns the latest file loaded under path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	id, ok := fs.index[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return fs.files[id], true
}

func (fs *FileSet) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.files)
}

// Line returns zero-based line n using the precomputed index.
func (f *File) Line(n int) string {
	if n < 0 || n > len(f.LineIdx) {
		return ""
	}
	start := 0
	if n > 0 {
		start = int(f.LineIdx[n-1]) + 1
	}
	end := len(f.Text)
	if n < len(f.LineIdx) {
		end = int(f.LineIdx[n])
	}
	if start > end {
		return ""
	}
	line := f.Text[start:end]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line
}

// LineCount is the number of lines, counting a final unterminated one.
func (f *File) LineCount() int { return len(f.LineIdx) + 1 }
