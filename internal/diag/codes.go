package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo         Code = 1000
	LexUnknownChar  Code = 1001 // InvalidCharacter
	LexBadNumber    Code = 1002
	LexTokenTooLong Code = 1003

	// Синтаксические
	SynInfo                    Code = 2000
	SynExpectExpression        Code = 2001
	SynUnexpectedTrailingInput Code = 2002
	SynUnclosedParen           Code = 2003
	SynNestingTooDeep          Code = 2004

	// IO
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                "Unknown error",
		LexInfo:                    "Lexical information",
		LexUnknownChar:             "Invalid character",
		LexBadNumber:               "Malformed number literal",
		LexTokenTooLong:            "Token too long",
		SynInfo:                    "Syntax information",
		SynExpectExpression:        "Expected expression",
		SynUnexpectedTrailingInput: "Unexpected trailing input",
		SynUnclosedParen:           "Unclosed parenthesis",
		SynNestingTooDeep:          "Nesting too deep",
		IOLoadFileError:            "Failed to load file",
		IOCacheError:               "Parse cache error",
	}

	// error kind names as exposed to embedders (LexError / SyntaxError variants)
	codeKind = map[Code]string{
		LexUnknownChar:             "InvalidCharacter",
		LexBadNumber:               "InvalidCharacter",
		LexTokenTooLong:            "InvalidCharacter",
		SynExpectExpression:        "ExpectedExpression",
		SynUnexpectedTrailingInput: "UnexpectedTrailingInput",
		SynUnclosedParen:           "UnclosedParen",
		SynNestingTooDeep:          "NestingTooDeep",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// Kind returns the error family name, or "" for codes outside lexing and parsing.
func (c Code) Kind() string {
	return codeKind[c]
}

// IsLexical reports whether c belongs to the lexer range.
func (c Code) IsLexical() bool {
	return c >= 1000 && c < 2000
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
