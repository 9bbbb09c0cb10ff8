package format

// Writer accumulates formatted output.
type Writer struct {
	buf []byte
	opt Options
}

// NewWriter creates a new formatting writer.
func NewWriter(sizeHint int, opt Options) *Writer {
	return &Writer{
		buf: make([]byte, 0, sizeHint),
		opt: opt,
	}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) String() string {
	return string(w.buf)
}

func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// Operator writes op with the configured spacing.
func (w *Writer) Operator(op string) {
	if w.opt.Compact {
		w.WriteString(op)
		return
	}
	w.buf = append(w.buf, ' ')
	w.buf = append(w.buf, op...)
	w.buf = append(w.buf, ' ')
}
