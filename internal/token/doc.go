// Package token defines the lexical token kinds of the calculator grammar.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Number literals never carry a sign; '-' is always a separate Minus token.
//   - A FloatLit always has at least one digit on both sides of '.'.
package token
