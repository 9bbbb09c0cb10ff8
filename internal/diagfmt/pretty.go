package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"calc/internal/diag"
	"calc/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	location        *color.Color
	gutter          *color.Color
	caret           *color.Color
	note            *color.Color
	fix             *color.Color
	removed, added  *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:      mk(color.FgRed, color.Bold),
		warn:     mk(color.FgYellow, color.Bold),
		info:     mk(color.FgCyan, color.Bold),
		location: mk(color.Bold),
		gutter:   mk(color.FgBlue),
		caret:    mk(color.FgRed, color.Bold),
		note:     mk(color.FgCyan),
		fix:      mk(color.FgGreen),
		removed:  mk(color.FgRed),
		added:    mk(color.FgGreen),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts, p)
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostics not shown (limit %d)\n", dropped, bag.Cap())
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	path := displayPath(fs, d.Primary.File, opts.PathMode, opts.BaseDir)
	start, _ := fs.Resolve(d.Primary)

	fmt.Fprintf(w, "%s: %s: %s\n",
		p.location.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		p.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()),
		d.Message,
	)
	writeSnippet(w, fs, d.Primary, opts, p, p.caret)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			pos, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  %s %d:%d: %s\n", p.note.Sprint("note:"), pos.Line, pos.Col, note.Msg)
			if note.Span != d.Primary {
				writeSnippet(w, fs, note.Span, opts, p, p.note)
			}
		}
	}

	if opts.ShowFixes {
		for _, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s %s", p.fix.Sprint("fix:"), fx.Title)
			if fx.ID != "" {
				fmt.Fprintf(w, " [%s]", fx.ID)
			}
			fmt.Fprintln(w)
			if !opts.ShowPreview {
				continue
			}
			for _, edit := range fx.Edits {
				preview, err := buildEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, line := range preview.before {
					fmt.Fprintf(w, "    %s\n", p.removed.Sprint("- "+line))
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "    %s\n", p.added.Sprint("+ "+line))
				}
			}
		}
	}
}

// writeSnippet prints the line holding span.Start with a gutter and underlines the span.
// Columns are measured in display cells so wide runes stay aligned.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, p palette, mark *color.Color) {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)

	first := start.Line
	last := start.Line
	if ctx := uint32(max(opts.Context, 0)); ctx > 0 {
		first = max(1, start.Line-min(ctx, start.Line-1))
		last = start.Line + ctx
	}
	lastLine := uint32(len(file.LineIdx) + 1)
	last = min(last, lastLine)

	gutterWidth := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := file.GetLine(ln)
		if ln != start.Line && text == "" && ln == lastLine {
			continue
		}
		text = clip(expandTabs(text), opts.Width)
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}

		line := expandTabs(file.GetLine(ln))
		startCol := int(start.Col) - 1
		endCol := len(line)
		if end.Line == start.Line {
			endCol = int(end.Col) - 1
		}
		startCol = min(startCol, len(line))
		endCol = min(max(endCol, startCol), len(line))

		pad := runewidth.StringWidth(line[:startCol])
		underline := max(runewidth.StringWidth(line[startCol:endCol]), 1)
		marker := "^" + strings.Repeat("~", underline-1)
		fmt.Fprintf(w, "%s %s%s\n",
			p.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad),
			mark.Sprint(marker),
		)
	}
}

// expandTabs keeps byte offsets stable by replacing each tab with a single space.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "...")
}
