package format

// Writer accumulates formatted lines.
type Writer struct {
	buf     []byte
	newline string
	lines   int
}

// NewWriter creates a writer that separates lines with newline.
func NewWriter(size int, newline string) *Writer {
	if newline == "" {
		newline = "\n"
	}
	return &Writer{buf: make([]byte, 0, size), newline: newline}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// String returns the accumulated output.
func (w *Writer) String() string {
	return string(w.buf)
}

// Line starts a new line, emitting the separator for all but the first.
func (w *Writer) Line() {
	if w.lines > 0 {
		w.buf = append(w.buf, w.newline...)
	}
	w.lines++
}

// WriteString appends s to the current line.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// Space writes a single space unless the line is empty or already ends with one.
func (w *Writer) Space() {
	if len(w.buf) == 0 {
		return
	}
	switch w.buf[len(w.buf)-1] {
	case ' ', '\n':
		return
	}
	w.buf = append(w.buf, ' ')
}
