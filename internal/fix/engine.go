package fix

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"calc/internal/diag"
	"calc/internal/source"
)

// ErrNoFixes is returned when nothing was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode selects which fixes are applied.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota // first fix in source order
	ApplyModeAll                   // every fix that does not clash with an earlier one
	ApplyModeID                    // the fix whose ID is ApplyOptions.TargetID
)

var applyModeNames = [...]string{ApplyModeOnce: "once", ApplyModeAll: "all", ApplyModeID: "id"}

func (m ApplyMode) String() string {
	if int(m) < len(applyModeNames) {
		return applyModeNames[m]
	}
	return fmt.Sprintf("ApplyMode(%d)", m)
}

type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// AppliedFix describes one accepted fix.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix is a fix that was not applied, with the reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

type FileChange struct {
	Path      string
	EditCount int
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

func (r *ApplyResult) skip(f diag.Fix, reason string) {
	r.Skipped = append(r.Skipped, SkippedFix{ID: f.ID, Title: f.Title, Reason: reason})
}

type candidate struct {
	diag diag.Diagnostic
	fix  diag.Fix
}

// ledger holds accepted edits per file in original coordinates. Text is
// rebuilt once at the end, so offsets never have to be shifted.
type ledger struct {
	fs     *source.FileSet
	reject func(*source.File) string
	edits  map[source.FileID][]diag.TextEdit
}

// Apply applies the selected fixes and writes the touched files back to disk.
// Fixes that target virtual files are skipped.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	res, led, err := run(fs, diagnostics, opts, func(f *source.File) string {
		if f.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}
		return ""
	})
	if err != nil {
		return res, err
	}
	for _, id := range slices.Sorted(maps.Keys(led.edits)) {
		file := fs.Get(id)
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(file.Path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file.Path, led.render(id), mode); err != nil {
			return res, fmt.Errorf("write %s: %w", file.Path, err)
		}
		res.FileChanges = append(res.FileChanges, FileChange{
			Path:      file.FormatPath("relative", ""),
			EditCount: len(led.edits[id]),
		})
	}
	slices.SortStableFunc(res.FileChanges, func(a, b FileChange) int { return cmp.Compare(a.Path, b.Path) })
	return res, nil
}

// ApplyToContent returns the content of one file with the fixes applied,
// leaving the disk and the FileSet alone. Virtual files are allowed; the
// REPL fixes its input buffer this way.
func ApplyToContent(fs *source.FileSet, file source.FileID, diagnostics []diag.Diagnostic, opts ApplyOptions) ([]byte, *ApplyResult, error) {
	res, led, err := run(fs, diagnostics, opts, func(f *source.File) string {
		if f.ID != file {
			return "fix edits another file"
		}
		return ""
	})
	if err != nil {
		if fs == nil {
			return nil, res, err
		}
		return slices.Clone(fs.Get(file).Content), res, err
	}
	return led.render(file), res, nil
}

func run(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions, reject func(*source.File) string) (*ApplyResult, *ledger, error) {
	res := &ApplyResult{Applied: []AppliedFix{}, Skipped: []SkippedFix{}, FileChanges: []FileChange{}}
	if fs == nil {
		return res, nil, errors.New("fix: FileSet is nil")
	}

	cands, skips := gatherCandidates(diagnostics)
	res.Skipped = append(res.Skipped, skips...)
	// по позиции основной диагностики; при равенстве порядок сбора сохраняется
	slices.SortStableFunc(cands, func(a, b candidate) int {
		switch {
		case a.diag.Primary.Less(b.diag.Primary):
			return -1
		case b.diag.Primary.Less(a.diag.Primary):
			return 1
		}
		return 0
	})

	switch opts.Mode {
	case ApplyModeOnce:
		cands = cands[:min(1, len(cands))]
	case ApplyModeID:
		i := slices.IndexFunc(cands, func(c candidate) bool { return c.fix.ID == opts.TargetID })
		if i < 0 {
			res.skip(diag.Fix{ID: opts.TargetID}, "fix id not found")
			return res, nil, ErrNoFixes
		}
		cands = cands[i : i+1]
	case ApplyModeAll:
	default:
		return res, nil, fmt.Errorf("fix: unknown mode %s", opts.Mode)
	}

	led := &ledger{fs: fs, reject: reject, edits: map[source.FileID][]diag.TextEdit{}}
	for _, c := range cands {
		if reason := led.accept(c.fix.Edits); reason != "" {
			res.skip(c.fix, reason)
			continue
		}
		res.Applied = append(res.Applied, AppliedFix{
			ID:          c.fix.ID,
			Title:       c.fix.Title,
			Code:        c.diag.Code,
			Message:     c.diag.Message,
			PrimaryPath: displayPath(fs, c.diag.Primary.File),
			EditCount:   len(c.fix.Edits),
		})
	}
	if len(res.Applied) == 0 {
		return res, led, ErrNoFixes
	}
	return res, led, nil
}

// gatherCandidates flattens the fixes of all diagnostics. Fixes without
// edits or with an ID already seen are skipped; a missing ID is derived
// from the diagnostic code and position.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		cands []candidate
		skips []SkippedFix
		seen  = map[string]bool{}
	)
	for _, d := range diagnostics {
		for i, f := range d.Fixes {
			if f.ID == "" {
				f.ID = diag.FixID(d.Code, d.Primary, i)
			}
			reason := ""
			switch {
			case len(f.Edits) == 0:
				reason = "fix has no edits"
			case seen[f.ID]:
				reason = "duplicate fix id"
			}
			if reason != "" {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: reason})
				continue
			}
			seen[f.ID] = true
			cands = append(cands, candidate{diag: d, fix: f})
		}
	}
	return cands, skips
}

// accept validates all edits of one fix and records them, or records
// nothing and returns why.
func (l *ledger) accept(edits []diag.TextEdit) string {
	for i, e := range edits {
		if int(e.Span.File) >= l.fs.Len() {
			return fmt.Sprintf("unknown file %d", e.Span.File)
		}
		file := l.fs.Get(e.Span.File)
		if reason := l.reject(file); reason != "" {
			return reason
		}
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(file.Content) {
			return "edit span out of range"
		}
		if e.OldText != "" && string(file.Content[e.Span.Start:e.Span.End]) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, other := range edits[:i] {
			if other.Span.File == e.Span.File && spansConflict(other, e) {
				return "fix has overlapping edits"
			}
		}
		for _, prev := range l.edits[e.Span.File] {
			if spansConflict(prev, e) {
				return "conflicts with previously applied edits in " + file.FormatPath("auto", "")
			}
		}
	}
	for _, e := range edits {
		l.edits[e.Span.File] = append(l.edits[e.Span.File], e)
	}
	return ""
}

// render applies the accepted edits of one file to its original content.
// Edits at the same offset keep acceptance order; an insertion goes before
// a replacement that starts where it is.
func (l *ledger) render(id source.FileID) []byte {
	src := l.fs.Get(id).Content
	edits := slices.Clone(l.edits[id])
	slices.SortStableFunc(edits, func(a, b diag.TextEdit) int {
		return cmp.Or(cmp.Compare(a.Span.Start, b.Span.Start), cmp.Compare(a.Span.End, b.Span.End))
	})
	var out bytes.Buffer
	at := uint32(0)
	for _, e := range edits {
		out.Write(src[at:e.Span.Start])
		out.WriteString(e.NewText)
		at = e.Span.End
	}
	out.Write(src[at:])
	return out.Bytes()
}

// spansConflict reports whether two edits overlap. Spans are half-open.
// Two insertions never conflict; an insertion conflicts with a replacement
// only when it falls strictly inside it.
func spansConflict(a, b diag.TextEdit) bool {
	as, ae, bs, be := a.Span.Start, a.Span.End, b.Span.Start, b.Span.End
	switch {
	case as == ae && bs == be:
		return false
	case as == ae:
		return bs < as && as < be
	case bs == be:
		return as < bs && bs < ae
	}
	return as < be && bs < ae
}

func displayPath(fs *source.FileSet, id source.FileID) string {
	if int(id) >= fs.Len() {
		return ""
	}
	return fs.Get(id).FormatPath("auto", "")
}
