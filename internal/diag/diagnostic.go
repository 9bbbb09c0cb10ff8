package diag

import (
	"slices"

	"calc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces Span with NewText. OldText, when set, must match the
// current source for the edit to apply.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	ID    string
	Title string
	Edits []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// IsError reports whether d blocks a successful parse.
func (d Diagnostic) IsError() bool {
	return d.Severity >= SevError
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// NewError is New at SevError.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: SevError, Code: code, Primary: primary, Message: msg}
}

// WithNote returns a copy of d with one more note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(slices.Clip(d.Notes), Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns a copy of d with one more fix. The fix ID comes from the
// code, the primary span and the fix index, so it is stable across runs.
func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	id := FixID(d.Code, d.Primary, len(d.Fixes))
	d.Fixes = append(slices.Clip(d.Fixes), Fix{ID: id, Title: title, Edits: edits})
	return d
}
