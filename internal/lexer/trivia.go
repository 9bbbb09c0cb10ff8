package lexer

// skipTrivia пропускает пробельные символы между токенами.
// Комментариев в языке нет, поэтому trivia не сохраняется.
func (lx *Lexer) skipTrivia() {
	lx.cursor.SkipWhile(isSpace)
}
