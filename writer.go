package xfile

import (
	"errors"
	"fmt"
	"io"
)

// Writer frames a payload stream. Callers write the header, any number of
// payload chunks, then the footer.
type Writer struct {
	out io.Writer
	set SignatureSet
}

func NewWriter(out io.Writer, s SignatureSet) *Writer {
	return &Writer{
		out: out,
		set: s,
	}
}

func (w *Writer) write(b []byte) error {
	n, err := w.out.Write(b)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	return err
}

func (w *Writer) WriteSignature(s Signature) error {
	return w.write(s[:])
}

func (w *Writer) WriteHeader() error {
	return w.WriteSignature(w.set.Header())
}

// WriteFooter writes the footer signature. It does nothing in header-only
// mode.
func (w *Writer) WriteFooter() error {
	if f, ok := w.set.Footer(); ok {
		return w.WriteSignature(f)
	}
	return nil
}

// WriteFrom copies exactly size bytes of payload from in.
func (w *Writer) WriteFrom(in io.Reader, size int64) error {
	if size < 0 {
		return fmt.Errorf("xfile: negative payload size %d", size)
	}
	n, err := io.CopyN(w.out, in, size)
	if n < size && (err == nil || errors.Is(err, io.EOF)) {
		err = io.ErrShortWrite
	}
	return err
}

func (w *Writer) Write(b []byte) (int, error) {
	return w.out.Write(b)
}

func (w *Writer) WriteAll(payload []byte) error {
	err := w.WriteHeader()
	if err == nil {
		err = w.write(payload)
	}
	if err == nil {
		err = w.WriteFooter()
	}
	return err
}
