package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"calc/internal/ast"
	"calc/internal/source"
	"calc/internal/token"
)

// sampleTree builds "1 + 2 * 3" by hand.
func sampleTree() (*source.FileSet, source.FileID, *ast.Exprs, ast.ExprID) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("test.calc", []byte("1 + 2 * 3"))
	sp := func(s, e uint32) source.Span { return source.Span{File: file, Start: s, End: e} }

	e := ast.NewExprs(8)
	one := e.NewNumber(sp(0, 1), "1")
	two := e.NewNumber(sp(4, 5), "2")
	three := e.NewNumber(sp(8, 9), "3")
	mul := e.NewBinary(ast.ExprBinaryMul, sp(6, 7), two, three)
	root := e.NewBinary(ast.ExprBinaryAdd, sp(2, 3), one, mul)
	return fs, file, e, root
}

func TestFormatASTPretty(t *testing.T) {
	fs, file, e, root := sampleTree()
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, e, root, fs, file); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"test.calc",
		"└─ BinaryExpr + (span: 1:1-1:10)",
		"   ├─ left: NumberLiteral 1 (span: 1:1-1:2)",
		"   └─ right: BinaryExpr * (span: 1:5-1:10)",
		"      ├─ left: NumberLiteral 2 (span: 1:5-1:6)",
		"      └─ right: NumberLiteral 3 (span: 1:9-1:10)",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatASTPrettyEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, ast.NewExprs(0), ast.NoExprID, nil, 0); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Expr\n└─ <empty>\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestFormatASTTree(t *testing.T) {
	_, _, e, root := sampleTree()
	var buf bytes.Buffer
	if err := FormatASTTree(&buf, e, root); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"   +",
		"/  |  \\",
		"1     *",
		"    / | \\",
		"    2   3",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatASTJSONAndYAML(t *testing.T) {
	fs, file, e, root := sampleTree()

	var jsonBuf bytes.Buffer
	if err := FormatASTJSON(&jsonBuf, e, root, fs, file); err != nil {
		t.Fatal(err)
	}
	var fromJSON ASTOutput
	if err := json.Unmarshal(jsonBuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, jsonBuf.String())
	}

	var yamlBuf bytes.Buffer
	if err := FormatASTYAML(&yamlBuf, e, root, fs, file); err != nil {
		t.Fatal(err)
	}
	var fromYAML ASTOutput
	if err := yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, yamlBuf.String())
	}

	for name, out := range map[string]ASTOutput{"json": fromJSON, "yaml": fromYAML} {
		if out.File != "test.calc" {
			t.Errorf("%s: file = %q", name, out.File)
		}
		if out.Root == nil || out.Root.Op != "+" || len(out.Root.Children) != 2 {
			t.Fatalf("%s: root = %+v", name, out.Root)
		}
		right := out.Root.Children[1]
		if right.Role != "right" || right.Op != "*" || right.Start != 4 || right.End != 9 {
			t.Errorf("%s: right child = %+v", name, right)
		}

		rebuilt := ast.NewExprs(8)
		id, err := ast.Restore(rebuilt, file, out.Root)
		if err != nil {
			t.Fatalf("%s: restore: %v", name, err)
		}
		if !ast.Equal(e, root, rebuilt, id) {
			t.Errorf("%s: restored tree differs from original", name)
		}
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("test.calc", []byte("1+2"))
	sp := func(s, e uint32) source.Span { return source.Span{File: file, Start: s, End: e} }
	toks := []token.Token{
		{Kind: token.IntLit, Span: sp(0, 1), Text: "1"},
		{Kind: token.Plus, Span: sp(1, 2), Text: "+"},
		{Kind: token.IntLit, Span: sp(2, 3), Text: "2"},
		{Kind: token.EOF, Span: sp(3, 3)},
		{Kind: token.IntLit, Span: sp(3, 4), Text: "ignored"},
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(pretty.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected output to stop at EOF, got:\n%s", pretty.String())
	}
	if f := strings.Fields(lines[1]); len(f) != 4 || f[1] != "Plus" || f[2] != `"+"` || f[3] != "1:2-1:3" {
		t.Errorf("line 2 = %q", lines[1])
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 4 || out[3].Kind != "EOF" || out[0].Text != "1" {
		t.Errorf("tokens = %+v", out)
	}
}
