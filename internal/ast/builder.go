package ast

// Hints pre-sizes the arenas; zero values are fine.
type Hints struct{ Exprs uint }

// Builder owns the arenas of one parse. Trees from different parses never
// share a Builder, which lets parallel parses run without locks.
type Builder struct {
	Exprs *Exprs
}

func NewBuilder(h Hints) *Builder {
	return &Builder{Exprs: NewExprs(h.Exprs)}
}
