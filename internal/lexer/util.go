package lexer

// классы байтов; всё, что не попало ни в один, уходит в scanInvalid
const (
	classOther byte = iota
	classDigit
	classSpace
	classOp
	classDot
)

var byteClass = func() (t [256]byte) {
	for c := '0'; c <= '9'; c++ {
		t[c] = classDigit
	}
	for _, c := range " \t\n\r\v\f" {
		t[c] = classSpace
	}
	for _, c := range "+-*/()" {
		t[c] = classOp
	}
	t['.'] = classDot
	return t
}()

func isDec(b byte) bool    { return byteClass[b] == classDigit }
func isSpace(b byte) bool  { return byteClass[b] == classSpace }
func isOpByte(b byte) bool { return byteClass[b] == classOp }
