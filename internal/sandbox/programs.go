package sandbox

import (
	"github.com/dop251/goja"
	lru "github.com/hashicorp/golang-lru/v2"

	"jshint/internal/engine"
)

// ProgramCacheSize bounds the number of compiled analyzer scripts kept in
// memory. Two bundled scripts plus a few directory overrides fit easily.
const ProgramCacheSize = 16

// Compiled programs are immutable and may run in several runtimes at once,
// so one cache serves the whole process.
var programs = func() *lru.Cache[string, *goja.Program] {
	c, err := lru.New[string, *goja.Program](ProgramCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}()

func compile(s engine.Script) (*goja.Program, error) {
	if p, ok := programs.Get(s.Digest); ok {
		return p, nil
	}
	p, err := goja.Compile(s.Name, s.Source, false)
	if err != nil {
		return nil, err
	}
	programs.Add(s.Digest, p)
	return p, nil
}

// CachedPrograms reports how many compiled scripts are cached.
func CachedPrograms() int { return programs.Len() }

// PurgePrograms empties the compiled-program cache.
func PurgePrograms() { programs.Purge() }
