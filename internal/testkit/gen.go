// Package testkit generates random expressions and checks structural
// properties of parsed trees. Used by tests, fuzz seeds and benchmarks.
package testkit

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"calc/internal/ast"
	"calc/internal/source"
)

// GenConfig shapes generated expressions.
type GenConfig struct {
	MaxDepth       uint
	MaxTerms       uint // operands per operator chain, at least 2
	AllowFloats    bool
	AllowParens    bool
	AllowNegatives bool
}

func DefaultGenConfig() GenConfig {
	return GenConfig{
		MaxDepth:       3,
		MaxTerms:       5,
		AllowFloats:    true,
		AllowParens:    true,
		AllowNegatives: true,
	}
}

// Generator is deterministic for a given seed.
type Generator struct {
	cfg GenConfig
	rng *rand.Rand
}

func NewGenerator(cfg GenConfig, seed uint64) *Generator {
	if cfg.MaxTerms < 2 {
		cfg.MaxTerms = 2
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Text returns one expression as source text. Operators are glued to their
// operands, so "1-" followed by "-5" yields "1--5".
func (g *Generator) Text() string {
	var sb strings.Builder
	g.text(&sb, g.cfg.MaxDepth)
	return sb.String()
}

func (g *Generator) text(sb *strings.Builder, depth uint) {
	if depth == 0 || g.chance(0.3) {
		sb.WriteString(g.number())
		return
	}
	if g.cfg.AllowParens && depth > 1 && g.chance(0.4) {
		sb.WriteByte('(')
		g.text(sb, depth-1)
		sb.WriteByte(')')
		return
	}
	terms := g.terms()
	g.text(sb, depth-1)
	for range terms - 1 {
		sb.WriteString(g.op().String())
		g.text(sb, depth-1)
	}
}

// Tree builds an expression directly into exprs (all spans zero) and wraps
// subtrees in ParenExpr wherever precedence or associativity requires it, so
// printing the tree and parsing the text yields an equal tree.
func (g *Generator) Tree(exprs *ast.Exprs) ast.ExprID {
	return g.tree(exprs, g.cfg.MaxDepth)
}

func (g *Generator) tree(exprs *ast.Exprs, depth uint) ast.ExprID {
	var zero source.Span
	if depth == 0 || g.chance(0.3) {
		return g.literal(exprs)
	}
	if g.cfg.AllowParens && depth > 1 && g.chance(0.4) {
		return exprs.NewParen(zero, g.tree(exprs, depth-1), true)
	}
	if g.cfg.AllowNegatives && g.chance(0.15) {
		return exprs.NewNeg(zero, asOperand(exprs, g.tree(exprs, depth-1)))
	}
	left := g.tree(exprs, depth-1)
	for range g.terms() - 1 {
		op := g.op()
		right := g.tree(exprs, depth-1)
		left = exprs.NewBinary(op, zero, wrapLeft(exprs, op, left), wrapRight(exprs, op, right))
	}
	return left
}

func (g *Generator) literal(exprs *ast.Exprs) ast.ExprID {
	var zero source.Span
	var id ast.ExprID
	if g.cfg.AllowFloats && g.chance(0.3) {
		id = exprs.NewFloat(zero, g.floatText())
	} else {
		id = exprs.NewNumber(zero, strconv.Itoa(g.rng.IntN(1000)))
	}
	if g.cfg.AllowNegatives && g.chance(0.3) {
		id = exprs.NewNeg(zero, id)
	}
	return id
}

func (g *Generator) number() string {
	var s string
	if g.cfg.AllowFloats && g.chance(0.3) {
		s = g.floatText()
	} else {
		s = strconv.Itoa(g.rng.IntN(1000))
	}
	if g.cfg.AllowNegatives && g.chance(0.3) {
		return "-" + s
	}
	return s
}

func (g *Generator) floatText() string {
	return fmt.Sprintf("%.2f", g.rng.Float64()*1000)
}

func (g *Generator) terms() uint {
	hi := min(g.cfg.MaxTerms, 5)
	return 2 + uint(g.rng.IntN(int(hi-1)))
}

func (g *Generator) op() ast.ExprBinaryOp {
	return ast.ExprBinaryOp(g.rng.IntN(4))
}

func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

func precedence(op ast.ExprBinaryOp) int {
	if op == ast.ExprBinaryMul || op == ast.ExprBinaryDiv {
		return 2
	}
	return 1
}

// binds reports the precedence of id as an operand; literals, parens and
// negation bind tighter than any operator.
func binds(exprs *ast.Exprs, id ast.ExprID) int {
	if data, ok := exprs.Binary(id); ok {
		return precedence(data.Op)
	}
	return 3
}

func paren(exprs *ast.Exprs, id ast.ExprID) ast.ExprID {
	return exprs.NewParen(source.Span{}, id, true)
}

// операции левоассоциативны: слева скобки нужны только для более слабого оператора
func wrapLeft(exprs *ast.Exprs, op ast.ExprBinaryOp, id ast.ExprID) ast.ExprID {
	if binds(exprs, id) < precedence(op) {
		return paren(exprs, id)
	}
	return id
}

func wrapRight(exprs *ast.Exprs, op ast.ExprBinaryOp, id ast.ExprID) ast.ExprID {
	if binds(exprs, id) <= precedence(op) {
		return paren(exprs, id)
	}
	return id
}

func asOperand(exprs *ast.Exprs, id ast.ExprID) ast.ExprID {
	if exprs.Get(id).Kind == ast.ExprBinary {
		return paren(exprs, id)
	}
	return id
}
