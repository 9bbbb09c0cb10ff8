// Package diag defines the diagnostic model shared by the lexer, the parser
// and the tooling around them.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (LEX1001,
//     SYN2003, IO4001). Code.Kind maps lexer and parser codes to the error
//     families exposed to embedders: InvalidCharacter, ExpectedExpression,
//     UnexpectedTrailingInput, UnclosedParen, NestingTooDeep.
//   - Primary – the span the problem is reported at. Problems detected at the
//     end of input use an empty span positioned at the end of the text.
//   - Notes – optional secondary spans ("opened here").
//   - Fixes – optional text edits; internal/fix applies them.
//
// # Emitting
//
// Producers talk to a Reporter. BagReporter stores into a Bag, DedupReporter
// drops a second report with the same code and primary span. Bag.Normalize
// sorts by position and removes duplicates; every output format consumes a
// normalized bag.
//
// Package diag does no formatting beyond the golden/short line format and no
// IO; rendering lives in internal/diagfmt.
package diag
