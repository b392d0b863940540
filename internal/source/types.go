package source

type (
	// FileID identifies a file within a FileSet.
	FileID uint32
	// FileFlags records what Load did to the raw bytes.
	FileFlags uint8
)

const (
	// FileVirtual - добавлен не с диска (stdin, тест).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileTranscoded // UTF-16 input converted to UTF-8
)

// File is one loaded input.
type File struct {
	ID      FileID
	Path    string
	Text    string
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}
