package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid covers an unrecognized character (or a malformed literal tail).
	Invalid Kind = iota
	// EOF marks the end of the input.
	EOF

	// IntLit is a run of decimal digits.
	IntLit
	// FloatLit is digits '.' digits.
	FloatLit

	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	LParen // (
	RParen // )

	kindCount
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	IntLit:   "IntLit",
	FloatLit: "FloatLit",
	Plus:     "Plus",
	Minus:    "Minus",
	Star:     "Star",
	Slash:    "Slash",
	LParen:   "LParen",
	RParen:   "RParen",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Symbol returns the source spelling of punctuation kinds, or a descriptive word otherwise.
func (k Kind) Symbol() string {
	switch k {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case LParen:
		return "("
	case RParen:
		return ")"
	case IntLit, FloatLit:
		return "number"
	case EOF:
		return "end of input"
	default:
		return "invalid token"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return Invalid, false
}
