package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw file bytes to text. A UTF-8 BOM is dropped and UTF-16
// input with a BOM is transcoded; everything else is taken as UTF-8.
func Decode(raw []byte) (string, FileFlags, error) {
	var flags FileFlags
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		flags |= FileHadBOM
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		flags |= FileHadBOM | FileTranscoded
	default:
		return string(raw), 0, nil
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", 0, fmt.Errorf("decode: %w", err)
	}
	return string(out), flags, nil
}

func buildLineIndex(text string) []uint32 {
	out := make([]uint32, 0, strings.Count(text, "\n"))
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			out = append(out, off)
		}
	}
	return out
}

// Line returns zero-based line n of text without its terminator, or "" when
// out of range. Lines end at '\n'; a trailing '\r' is dropped.
func Line(text string, n int) string {
	if n < 0 {
		return ""
	}
	for i := 0; i < n; i++ {
		j := strings.IndexByte(text, '\n')
		if j < 0 {
			return ""
		}
		text = text[j+1:]
	}
	if j := strings.IndexByte(text, '\n'); j >= 0 {
		text = text[:j]
	}
	return strings.TrimSuffix(text, "\r")
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// DisplayPath shortens path relative to base when it lies below base.
func DisplayPath(path, base string) string {
	if base == "" || !filepath.IsAbs(path) {
		return normalizePath(path)
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return normalizePath(path)
	}
	return normalizePath(rel)
}
