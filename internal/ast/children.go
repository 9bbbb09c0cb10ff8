package ast

// Role names the slot a child occupies in its parent.
type Role string

const (
	RoleLeft    Role = "left"
	RoleRight   Role = "right"
	RoleInner   Role = "inner"
	RoleOperand Role = "operand"
)

type Child struct {
	Role Role
	ID   ExprID
}

// Children returns the direct children of id in source order.
func (e *Exprs) Children(id ExprID) []Child {
	expr := e.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprBinary:
		data, _ := e.Binary(id)
		return []Child{{RoleLeft, data.Left}, {RoleRight, data.Right}}
	case ExprParen:
		data, _ := e.Paren(id)
		return []Child{{RoleInner, data.Inner}}
	case ExprNeg:
		data, _ := e.Neg(id)
		return []Child{{RoleOperand, data.Operand}}
	}
	return nil
}

// Walk visits id and its descendants depth-first, parent before children.
// Returning false from fn skips the subtree.
func (e *Exprs) Walk(id ExprID, fn func(id ExprID, expr *Expr) bool) {
	expr := e.Get(id)
	if expr == nil || !fn(id, expr) {
		return
	}
	for _, c := range e.Children(id) {
		e.Walk(c.ID, fn)
	}
}

// CountErrors returns the number of ExprError placeholders under id.
func (e *Exprs) CountErrors(id ExprID) int {
	n := 0
	e.Walk(id, func(_ ExprID, expr *Expr) bool {
		if expr.Kind == ExprError {
			n++
		}
		return true
	})
	return n
}
