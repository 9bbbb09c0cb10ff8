package diagfmt

import (
	"cmp"
	"encoding/json"
	"io"
	"slices"
	"strings"

	"calc/internal/diag"
	"calc/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	ID    string        `json:"id,omitempty"`
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате.
// Kind - имя категории ошибки (InvalidCharacter, ExpectedExpression, ...).
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Kind     string       `json:"kind"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     uint32           `json:"dropped,omitempty"`
}

// jsonConv turns diagnostics into their JSON records for one FileSet.
type jsonConv struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (c jsonConv) location(span source.Span) LocationJSON {
	loc := LocationJSON{
		File:      displayPath(c.fs, span.File, c.opts.PathMode, c.opts.BaseDir),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if c.opts.IncludePositions {
		start, end := c.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (c jsonConv) diagnostic(d diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Kind:     d.Code.Kind(),
		Message:  d.Message,
		Location: c.location(d.Primary),
	}
	if c.opts.IncludeNotes {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: c.location(n.Span)})
		}
	}
	if c.opts.IncludeFixes {
		// порядок фиксов стабилен между запусками: по заголовку, затем по ID
		fixes := slices.SortedStableFunc(slices.Values(d.Fixes), func(a, b diag.Fix) int {
			return cmp.Or(strings.Compare(a.Title, b.Title), strings.Compare(a.ID, b.ID))
		})
		for _, fx := range fixes {
			out.Fixes = append(out.Fixes, c.fix(fx))
		}
	}
	return out
}

func (c jsonConv) fix(fx diag.Fix) FixJSON {
	out := FixJSON{ID: fx.ID, Title: fx.Title}
	for _, e := range fx.Edits {
		ej := FixEditJSON{Location: c.location(e.Span), NewText: e.NewText, OldText: e.OldText}
		if c.opts.IncludePreviews {
			if p, err := buildEditPreview(c.fs, e); err == nil {
				ej.BeforeLines, ej.AfterLines = p.before, p.after
			}
		}
		out.Edits = append(out.Edits, ej)
	}
	return out
}

// BuildDiagnosticsOutput builds the JSON document without encoding it.
// opts.Max truncates the output, not the bag.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	conv := jsonConv{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items)), Dropped: bag.Dropped()}
	for _, d := range items {
		out.Diagnostics = append(out.Diagnostics, conv.diagnostic(d))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
