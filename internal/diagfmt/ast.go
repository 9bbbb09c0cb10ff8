package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"calc/internal/ast"
	"calc/internal/source"
)

// ASTOutput is the document written by FormatASTJSON and FormatASTYAML.
type ASTOutput struct {
	File string    `json:"file" yaml:"file"`
	Root *ast.Node `json:"root" yaml:"root"`
}

func buildASTOutput(exprs *ast.Exprs, root ast.ExprID, fs *source.FileSet, file source.FileID) ASTOutput {
	out := ASTOutput{Root: ast.Snapshot(exprs, root)}
	if fs != nil {
		out.File = fs.Get(file).Path
	}
	return out
}

// nodeLabel is the one-line description shared by the pretty and tree views.
func nodeLabel(n *ast.Node) string {
	switch n.Kind {
	case ast.ExprNumber.String(), ast.ExprFloat.String():
		return fmt.Sprintf("%s %s", n.Kind, n.Value)
	case ast.ExprBinary.String(), ast.ExprNeg.String():
		return fmt.Sprintf("%s %s", n.Kind, n.Op)
	case ast.ExprParen.String():
		if n.Unclosed {
			return n.Kind + " (unclosed)"
		}
	}
	return n.Kind
}

// FormatASTPretty prints the tree as an outline, one node per line with its role and span.
func FormatASTPretty(w io.Writer, exprs *ast.Exprs, root ast.ExprID, fs *source.FileSet, file source.FileID) error {
	header := "Expr"
	if fs != nil {
		header = fs.Get(file).FormatPath("auto", "")
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	n := ast.Snapshot(exprs, root)
	if n == nil {
		_, err := fmt.Fprintln(w, "└─ <empty>")
		return err
	}
	return formatNodePretty(w, n, fs, file, "", true)
}

func formatNodePretty(w io.Writer, n *ast.Node, fs *source.FileSet, file source.FileID, prefix string, last bool) error {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	role := ""
	if n.Role != "" {
		role = n.Role + ": "
	}
	span := source.Span{File: file, Start: n.Start, End: n.End}
	if _, err := fmt.Fprintf(w, "%s%s%s%s (span: %s)\n", prefix, branch, role, nodeLabel(n), formatSpan(span, fs)); err != nil {
		return err
	}
	for i, c := range n.Children {
		if err := formatNodePretty(w, c, fs, file, prefix+next, i == len(n.Children)-1); err != nil {
			return err
		}
	}
	return nil
}

func FormatASTJSON(w io.Writer, exprs *ast.Exprs, root ast.ExprID, fs *source.FileSet, file source.FileID) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildASTOutput(exprs, root, fs, file))
}

func FormatASTYAML(w io.Writer, exprs *ast.Exprs, root ast.ExprID, fs *source.FileSet, file source.FileID) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(buildASTOutput(exprs, root, fs, file)); err != nil {
		return err
	}
	return encoder.Close()
}
