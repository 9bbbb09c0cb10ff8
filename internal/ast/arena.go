package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores the nodes of one kind. Index 0 means "none", so the first
// allocated value gets index 1.
type Arena[T any] struct{ items []T }

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{items: make([]T, 0, capHint)}
}

// Allocate appends v and returns its 1-based index.
func (a *Arena[T]) Allocate(v T) uint32 {
	a.items = append(a.items, v)
	return a.Len()
}

// Get returns nil for 0 and for indices past the end.
func (a *Arena[T]) Get(i uint32) *T {
	if i == 0 || int(i) > len(a.items) {
		return nil
	}
	return &a.items[i-1]
}

// Slice exposes the backing storage in allocation order; read only.
func (a *Arena[T]) Slice() []T { return a.items }

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.items))
	if err != nil {
		panic(fmt.Errorf("ast arena: %w", err))
	}
	return n
}
