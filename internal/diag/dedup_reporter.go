package diag

import "calc/internal/source"

// DedupReporter forwards the first report for each (code, primary span)
// pair and swallows the rest. Recovery can revisit the same token, so the
// parser routes everything through one.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

type dedupKey struct {
	code Code
	span source.Span
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[dedupKey]struct{}{}}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	k := dedupKey{code: d.Code, span: d.Primary}
	if _, dup := r.seen[k]; dup {
		return
	}
	r.seen[k] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}

// Seen is the number of distinct diagnostics forwarded so far.
func (r *DedupReporter) Seen() int {
	if r == nil {
		return 0
	}
	return len(r.seen)
}
