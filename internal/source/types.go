package source

// FileID indexes a File inside its FileSet.
type FileID uint32

// FileFlags records where content came from and what Load changed.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // stdin, -e, REPL, tests
	FileHadBOM                               // a UTF-8 BOM was stripped
	FileNormalizedCRLF                       // CRLF line endings became LF
)

// File is one expression source. Content is immutable once added.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offset of every '\n', ascending
	Hash    [32]byte // sha256 of Content; parse cache key
	Flags   FileFlags
}

// LineCol is a 1-based line and a 1-based byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
