package diag

import (
	"fmt"

	"calc/internal/source"
)

// FixID builds a stable identifier: "<code>-<start>-<end>[.n]".
func FixID(code Code, primary source.Span, n int) string {
	id := fmt.Sprintf("%s-%d-%d", code.ID(), primary.Start, primary.End)
	if n > 0 {
		id = fmt.Sprintf("%s.%d", id, n)
	}
	return id
}
