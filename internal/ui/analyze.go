package ui

import (
	"bytes"
	"context"
	"strings"

	"calc/internal/diag"
	"calc/internal/diagfmt"
	"calc/internal/driver"
	"calc/internal/fix"
	"calc/internal/format"
	"calc/internal/highlight"
	"calc/internal/parser"
)

const inputName = "<repl>"

// Analysis is everything the REPL shows for one buffer.
type Analysis struct {
	Input       string
	Highlighted string
	Canonical   string // empty when there is no tree
	Tree        string
	Diagnostics string
	Errors      int
	Fixable     int
	OK          bool
}

// Analyze parses text in best-effort mode and renders every view of it.
// Color controls only the diagnostics block; highlighting always goes through painter.
func Analyze(ctx context.Context, text string, painter highlight.Painter, color bool) (Analysis, error) {
	res, err := driver.ParseText(ctx, inputName, text, driver.Options{Recovery: parser.RecoveryBestEffort})
	if err != nil {
		return Analysis{Input: text}, err
	}
	items := res.Bag.Items()

	regions := highlight.ClassifyText(text)
	// ClassifyText lexes into its own file; align file ids before marking
	for i := range regions {
		regions[i].Span.File = res.File.ID
	}
	highlight.MarkErrors(regions, items)

	a := Analysis{
		Input:       text,
		Highlighted: highlight.Render([]byte(text), regions, painter),
		Errors:      errorCount(items),
		OK:          res.OK,
	}
	for _, d := range items {
		if len(d.Fixes) > 0 {
			a.Fixable++
		}
	}

	if !res.Failed() {
		a.Canonical = format.Expr(res.Exprs(), res.Root, format.Options{})
		var tree bytes.Buffer
		if err := diagfmt.FormatASTTree(&tree, res.Exprs(), res.Root); err != nil {
			return a, err
		}
		a.Tree = strings.TrimRight(tree.String(), "\n")
	}
	if len(items) > 0 {
		var buf bytes.Buffer
		diagfmt.Pretty(&buf, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     color,
			ShowNotes: true,
			ShowFixes: true,
		})
		a.Diagnostics = strings.TrimRight(buf.String(), "\n")
	}
	return a, nil
}

// ApplyFixes parses text and applies every non-conflicting fix suggestion.
// It returns fix.ErrNoFixes when nothing applies.
func ApplyFixes(ctx context.Context, text string) (string, *fix.ApplyResult, error) {
	res, err := driver.ParseText(ctx, inputName, text, driver.Options{Recovery: parser.RecoveryBestEffort})
	if err != nil {
		return text, nil, err
	}
	out, result, err := fix.ApplyToContent(res.FileSet, res.File.ID, res.Bag.Items(), fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if err != nil {
		return text, result, err
	}
	return string(out), result, nil
}

func errorCount(items []diag.Diagnostic) int {
	n := 0
	for _, d := range items {
		if d.IsError() {
			n++
		}
	}
	return n
}
