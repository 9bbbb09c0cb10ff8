package ast

import (
	"fmt"

	"calc/internal/source"
)

// Node is a self-contained copy of a subtree. It is what leaves the process:
// JSON and YAML output, the on-disk parse cache.
type Node struct {
	Kind     string  `json:"kind" yaml:"kind" msgpack:"k"`
	Role     string  `json:"role,omitempty" yaml:"role,omitempty" msgpack:"r,omitempty"`
	Value    string  `json:"value,omitempty" yaml:"value,omitempty" msgpack:"v,omitempty"`
	Op       string  `json:"op,omitempty" yaml:"op,omitempty" msgpack:"o,omitempty"`
	Start    uint32  `json:"start" yaml:"start" msgpack:"s"`
	End      uint32  `json:"end" yaml:"end" msgpack:"e"`
	OpStart  uint32  `json:"op_start,omitempty" yaml:"op_start,omitempty" msgpack:"os,omitempty"`
	OpEnd    uint32  `json:"op_end,omitempty" yaml:"op_end,omitempty" msgpack:"oe,omitempty"`
	Unclosed bool    `json:"unclosed,omitempty" yaml:"unclosed,omitempty" msgpack:"u,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty" msgpack:"c,omitempty"`
}

// Snapshot copies the tree rooted at id. It returns nil for NoExprID.
func Snapshot(e *Exprs, id ExprID) *Node {
	return snapshot(e, id, "")
}

func snapshot(e *Exprs, id ExprID, role Role) *Node {
	expr := e.Get(id)
	if expr == nil {
		return nil
	}
	n := &Node{
		Kind:  expr.Kind.String(),
		Role:  string(role),
		Start: expr.Span.Start,
		End:   expr.Span.End,
	}
	switch expr.Kind {
	case ExprNumber, ExprFloat:
		lit, _ := e.Literal(id)
		n.Value = lit.Value
	case ExprBinary:
		bin, _ := e.Binary(id)
		n.Op = bin.Op.String()
		n.OpStart, n.OpEnd = bin.OpSpan.Start, bin.OpSpan.End
	case ExprNeg:
		neg, _ := e.Neg(id)
		n.Op = "-"
		n.OpStart, n.OpEnd = neg.OpSpan.Start, neg.OpSpan.End
	case ExprParen:
		p, _ := e.Paren(id)
		n.Unclosed = !p.Closed
	}
	for _, c := range e.Children(id) {
		n.Children = append(n.Children, snapshot(e, c.ID, c.Role))
	}
	return n
}

// Restore rebuilds a snapshot into e, attributing spans to file.
func Restore(e *Exprs, file source.FileID, n *Node) (ExprID, error) {
	if n == nil {
		return NoExprID, nil
	}
	kind, ok := ParseExprKind(n.Kind)
	if !ok {
		return NoExprID, fmt.Errorf("unknown node kind %q", n.Kind)
	}
	span := source.Span{File: file, Start: n.Start, End: n.End}
	opSpan := source.Span{File: file, Start: n.OpStart, End: n.OpEnd}

	child := func(i int) (ExprID, error) {
		if i >= len(n.Children) || n.Children[i] == nil {
			return NoExprID, fmt.Errorf("%s at %d: missing child %d", n.Kind, n.Start, i)
		}
		return Restore(e, file, n.Children[i])
	}

	switch kind {
	case ExprNumber:
		return e.NewNumber(span, n.Value), nil
	case ExprFloat:
		return e.NewFloat(span, n.Value), nil
	case ExprError:
		return e.NewError(span), nil
	case ExprParen:
		inner, err := child(0)
		if err != nil {
			return NoExprID, err
		}
		return e.NewParen(span, inner, !n.Unclosed), nil
	case ExprNeg:
		operand, err := child(0)
		if err != nil {
			return NoExprID, err
		}
		return e.NewNeg(opSpan, operand), nil
	case ExprBinary:
		op, ok := ParseBinaryOp(n.Op)
		if !ok {
			return NoExprID, fmt.Errorf("binary at %d: unknown operator %q", n.Start, n.Op)
		}
		left, err := child(0)
		if err != nil {
			return NoExprID, err
		}
		right, err := child(1)
		if err != nil {
			return NoExprID, err
		}
		return e.NewBinary(op, opSpan, left, right), nil
	}
	return NoExprID, fmt.Errorf("unsupported node kind %q", n.Kind)
}
