package diag

import (
	"cmp"
	"math"
	"slices"
)

// Bag collects diagnostics up to a limit and counts what did not fit.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped uint32
}

// clampLimit maps an int limit onto uint16; negatives mean "keep nothing".
func clampLimit(n int) uint16 {
	return uint16(min(max(n, 0), math.MaxUint16)) //nolint:gosec // clamped
}

// NewBag keeps at most limit diagnostics.
func NewBag(limit int) *Bag {
	n := clampLimit(limit)
	return &Bag{items: make([]Diagnostic, 0, min(int(n), 16)), max: n}
}

// Add кладёт диагностику; false, если лимит исчерпан и она посчитана в dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }

// Dropped is the number of diagnostics rejected by the limit.
func (b *Bag) Dropped() uint32 { return b.dropped }

func (b *Bag) Len() int { return len(b.items) }

// HasErrors is true when an error was kept or anything was dropped.
func (b *Bag) HasErrors() bool {
	return b.dropped > 0 || slices.ContainsFunc(b.items, Diagnostic.IsError)
}

// Items returns the internal slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends other, raising the limit so nothing from other is dropped.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.max = max(b.max, clampLimit(len(b.items)+len(other.items)))
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
}

// Sort orders by primary span, then severity (worst first), then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		switch {
		case x.Primary.Less(y.Primary):
			return -1
		case y.Primary.Less(x.Primary):
			return 1
		}
		return cmp.Or(cmp.Compare(y.Severity, x.Severity), cmp.Compare(x.Code, y.Code))
	})
}

// Dedup keeps the first diagnostic for each code and primary span.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]bool, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := dedupKey{code: d.Code, span: d.Primary}
		if seen[k] {
			return true
		}
		seen[k] = true
		return false
	})
}

// Normalize sorts and deduplicates; every output format sees this order.
func (b *Bag) Normalize() {
	b.Sort()
	b.Dedup()
}
