// Package format prints expression trees in canonical form and checks that
// printing is lossless.
//
// Канонический вид: один пробел вокруг бинарных операторов, скобки только там,
// где они были в исходнике, унарный минус прижат к операнду ("-x", "--5").
// Не делает: вычислений, расстановки скобок по приоритетам, IO.
// Зависимости: internal/ast, internal/parser (для Source и CheckRoundTrip).
package format
