package diagfmt

import (
	"fmt"
	"strings"

	"calc/internal/source"
)

// PathMode selects how file paths are displayed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // short and relative paths as is, long absolute ones shortened
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

// pathModeAliases are the short spellings ParsePathMode also accepts.
var pathModeAliases = map[string]PathMode{"": PathModeAuto, "abs": PathModeAbsolute, "rel": PathModeRelative, "base": PathModeBasename}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return pathModeNames[PathModeAuto]
}

// ParsePathMode accepts the names produced by PathMode.String and their short forms.
func ParsePathMode(s string) (PathMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m, ok := pathModeAliases[s]; ok {
		return m, nil
	}
	for m, name := range pathModeNames {
		if name == s {
			return PathMode(m), nil //nolint:gosec // small table index
		}
	}
	return PathModeAuto, fmt.Errorf("unknown path mode %q", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8 // строк контекста до и после
	PathMode    PathMode
	BaseDir     string // для PathModeRelative, пусто - cwd
	Width       uint8  // максимальная ширина строки, 0 - не ограничено
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode, baseDir string) string {
	return fs.Get(id).FormatPath(mode.String(), baseDir)
}

// formatSpan formats a span as "startLine:startCol-endLine:endCol", or as
// "span(start-end)" when there is no FileSet to resolve it.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
