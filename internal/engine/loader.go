package engine

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path"
)

//go:embed scripts/*.js
var bundledFS embed.FS

// Script is analyzer source text ready to be evaluated. Loading a script
// never executes it.
type Script struct {
	Variant Variant
	Name    string // file name the source was read from
	Entry   string
	Source  string
	Digest  string // sha256 hex of Source
}

// Loader resolves a variant name to its script.
type Loader interface {
	Load(name string) (Script, error)
}

// FSLoader reads <variant>.js from an fs.FS.
type FSLoader struct {
	FS  fs.FS
	Dir string
}

// Bundled returns a loader over the scripts shipped with the binary.
func Bundled() FSLoader {
	return FSLoader{FS: bundledFS, Dir: "scripts"}
}

// NewDirLoader loads <dir>/<variant>.js from disk, for running a newer
// analyzer without rebuilding.
func NewDirLoader(dir string) FSLoader {
	return FSLoader{FS: os.DirFS(dir), Dir: "."}
}

// Load implements Loader.
func (l FSLoader) Load(name string) (Script, error) {
	v, err := ParseVariant(name)
	if err != nil {
		return Script{}, err
	}
	if l.FS == nil {
		return Script{}, &NotFoundError{Name: name, Err: errors.New("no script source configured")}
	}
	file := path.Join(l.Dir, v.String()+".js")
	data, err := fs.ReadFile(l.FS, file)
	if err != nil {
		return Script{}, &NotFoundError{Name: name, Err: err}
	}
	return NewScript(v, file, string(data)), nil
}

// NewScript wraps source as the script of variant v.
func NewScript(v Variant, name, source string) Script {
	sum := sha256.Sum256([]byte(source))
	return Script{
		Variant: v,
		Name:    name,
		Entry:   v.Entry(),
		Source:  source,
		Digest:  hex.EncodeToString(sum[:]),
	}
}

// Source is a Loader that serves fixed text for every variant. Tests use it
// to plug in stub analyzers.
type Source map[Variant]string

// Load implements Loader.
func (s Source) Load(name string) (Script, error) {
	v, err := ParseVariant(name)
	if err != nil {
		return Script{}, err
	}
	text, ok := s[v]
	if !ok {
		return Script{}, &NotFoundError{Name: name}
	}
	return NewScript(v, v.String()+".js", text), nil
}
