package diagfmt

import (
	"bytes"
	"fmt"
	"io"

	"calc/internal/ast"
)

// siblingGap is the number of blank columns between neighbouring subtrees.
const siblingGap = 3

// FormatASTTree draws the expression top-down, operators above their operands:
//
//	  +
//	/ | \
//	1   2
func FormatASTTree(w io.Writer, exprs *ast.Exprs, root ast.ExprID) error {
	n := ast.Snapshot(exprs, root)
	if n == nil {
		_, err := fmt.Fprintln(w, "<empty>")
		return err
	}
	for _, row := range drawSubtree(n).rows {
		if _, err := fmt.Fprintf(w, "%s\n", bytes.TrimRight(row, " ")); err != nil {
			return err
		}
	}
	return nil
}

// treeLabel stays short; the diagram grows with label width.
func treeLabel(n *ast.Node) string {
	switch n.Kind {
	case ast.ExprNumber.String(), ast.ExprFloat.String():
		return n.Value
	case ast.ExprBinary.String(), ast.ExprNeg.String():
		return n.Op
	case ast.ExprParen.String():
		if n.Unclosed {
			return "(unclosed"
		}
		return "()"
	case ast.ExprError.String():
		return "<error>"
	}
	return n.Kind
}

// canvas is a rendered subtree; anchor is the column its parent connects to.
type canvas struct {
	rows   [][]byte
	width  int
	anchor int
}

func blankRow(width int) []byte {
	return bytes.Repeat([]byte{' '}, width)
}

func drawSubtree(n *ast.Node) canvas {
	label := treeLabel(n)
	if len(n.Children) == 0 {
		return canvas{rows: [][]byte{[]byte(label)}, width: len(label), anchor: len(label) / 2}
	}

	kids := make([]canvas, len(n.Children))
	starts := make([]int, len(kids))
	height, span := 0, 0
	for i, c := range n.Children {
		if i > 0 {
			span += siblingGap
		}
		kids[i] = drawSubtree(c)
		starts[i] = span
		span += kids[i].width
		height = max(height, len(kids[i].rows))
	}

	// метка центрируется над крайними якорями детей; если не влезает слева, дети сдвигаются вправо
	first := starts[0] + kids[0].anchor
	last := starts[len(kids)-1] + kids[len(kids)-1].anchor
	labelAt := (first+last)/2 - len(label)/2
	indent := 0
	if labelAt < 0 {
		indent, labelAt = -labelAt, 0
	}
	anchor := labelAt + len(label)/2
	width := max(span+indent, labelAt+len(label))

	top := blankRow(width)
	copy(top[labelAt:], label)

	links := blankRow(width)
	links[anchor] = '|'
	for i, k := range kids {
		switch at := indent + starts[i] + k.anchor; {
		case at < anchor:
			links[at] = '/'
		case at > anchor:
			links[at] = '\\'
		}
	}

	rows := append(make([][]byte, 0, height+2), top, links)
	for r := range height {
		row := blankRow(width)
		for i, k := range kids {
			if r < len(k.rows) {
				copy(row[indent+starts[i]:], k.rows[r])
			}
		}
		rows = append(rows, row)
	}
	return canvas{rows: rows, width: width, anchor: anchor}
}
