package parser

import (
	"calc/internal/ast"
	"calc/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет. Все операторы левоассоциативны.
const (
	precNone           = -1
	precAdditive       = 1 // + -
	precMultiplicative = 2 // * /
)

// binaryPrec возвращает приоритет оператора или precNone.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash:
		return precMultiplicative
	default:
		return precNone
	}
}

// tokenKindToBinaryOp преобразует токен в тип бинарного оператора
func tokenKindToBinaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Star:
		return ast.ExprBinaryMul
	default:
		return ast.ExprBinaryDiv
	}
}
