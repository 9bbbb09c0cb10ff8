package fix

import (
	"calc/internal/diag"
	"calc/internal/source"
)

// Insert creates an edit that inserts text at the position at (at.Start == at.End).
func Insert(at source.Span, text string) diag.TextEdit {
	return diag.TextEdit{Span: at, NewText: text}
}

// InsertBefore inserts text right before span.
func InsertBefore(span source.Span, text string) diag.TextEdit {
	return Insert(span.ZeroAt(), text)
}

// InsertAfter inserts text right after span.
func InsertAfter(span source.Span, text string) diag.TextEdit {
	return Insert(span.ZeroEnd(), text)
}

// Delete removes text covered by span. expect guards against stale spans.
func Delete(span source.Span, expect string) diag.TextEdit {
	return diag.TextEdit{Span: span, OldText: expect}
}

// Replace replaces text covered by span with newText.
func Replace(span source.Span, newText, expect string) diag.TextEdit {
	return diag.TextEdit{Span: span, NewText: newText, OldText: expect}
}
