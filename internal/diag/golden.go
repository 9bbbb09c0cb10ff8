package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"calc/internal/source"
)

// goldenLine is one row of the line format: "<sev> <CODE> <path>:<line>:<col> <message>".
type goldenLine struct {
	label   string
	code    string
	path    string
	pos     source.LineCol
	message string
}

func (l goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.path, l.pos.Line, l.pos.Col, l.message)
}

// FormatGoldenDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set), ordered by path and position. Spans pointing outside
// fs are skipped.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []goldenLine
	add := func(label string, code Code, sp source.Span, msg string) {
		if int(sp.File) >= fs.Len() {
			return
		}
		start, _ := fs.Resolve(sp)
		lines = append(lines, goldenLine{
			label:   label,
			code:    code.ID(),
			path:    strings.TrimPrefix(fs.Get(sp.File).Path, "./"),
			pos:     start,
			message: strings.Join(strings.Fields(msg), " "),
		})
	}
	for _, d := range diags {
		add(d.Severity.Label(), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b goldenLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
		)
	})
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

// FormatShortDiagnostics is the golden form without notes (`check --format short`).
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet) string {
	return FormatGoldenDiagnostics(diags, fs, false)
}
