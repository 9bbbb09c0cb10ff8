package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every expression source of one run and resolves spans to
// positions. Not safe for concurrent use; parallel parses each get their own.
type FileSet struct {
	files  []File
	latest map[string]FileID // нормализованный путь -> последняя версия
}

func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// Add stores content under path and returns its ID. Adding a path again
// creates a new version; GetLatest returns the newest one.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("source %s: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	path = normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.latest[path] = id
	return id
}

// AddVirtual adds in-memory content (stdin, -e, REPL buffer, tests).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Load reads path, strips a UTF-8 BOM and normalizes CRLF before adding it.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	content, hadBOM := removeBOM(raw)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// Get panics on an unknown id.
func (fileSet *FileSet) Get(id FileID) *File { return &fileSet.files[id] }

// Len is the number of stored file versions.
func (fileSet *FileSet) Len() int { return len(fileSet.files) }

func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.latest[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into start and end positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	idx := fileSet.files[span.File].LineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}

// Text returns the bytes covered by span, clamped to the file.
func (fileSet *FileSet) Text(span Span) string {
	content := fileSet.files[span.File].Content
	end := min(int(span.End), len(content))
	return string(content[min(int(span.Start), end):end])
}

// GetLine возвращает строку (1-based) без '\n'; для несуществующей строки пусто.
func (f *File) GetLine(line uint32) string {
	if line == 0 || int(line) > len(f.LineIdx)+1 {
		return ""
	}
	start, end := 0, len(f.Content)
	if line > 1 {
		start = int(f.LineIdx[line-2]) + 1
	}
	if int(line) <= len(f.LineIdx) {
		end = int(f.LineIdx[line-1])
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for output. mode is absolute, relative,
// basename or auto; auto keeps short and relative paths and shortens long
// absolute ones to their base name. Virtual names are returned as is.
func (f *File) FormatPath(mode, baseDir string) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
