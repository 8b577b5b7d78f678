package xfile

import (
	"errors"
	"fmt"
	"io"
)

var (
	errTooShort       = fmt.Errorf("%w: file too short", ErrFormatMismatch)
	errHeaderMismatch = fmt.Errorf("%w: header signature mismatch", ErrFormatMismatch)
	errFooterMismatch = fmt.Errorf("%w: footer signature mismatch", ErrFormatMismatch)
	errIsDirectory    = fmt.Errorf("%w: is a directory", ErrFormatMismatch)
)

// Reader gives access to the payload of a validated container. It never
// hands out header or footer bytes.
type Reader struct {
	in   io.ReaderAt
	size int64
	set  SignatureSet
}

// NewReader validates the size bytes of in against s.
func NewReader(in io.ReaderAt, size int64, s SignatureSet) (*Reader, error) {
	r := &Reader{
		in:   in,
		size: size,
		set:  s,
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reader) read(b []byte, off int64) error {
	n, err := r.in.ReadAt(b, off)
	if n == len(b) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

func (r *Reader) ReadSignature(off int64) (Signature, error) {
	var s Signature
	err := r.read(s[:], off)
	return s, err
}

func (r *Reader) validate() error {
	if r.size < r.set.Overhead() {
		return errTooShort
	}
	h, err := r.ReadSignature(0)
	if err != nil {
		return err
	}
	if h != r.set.Header() {
		return errHeaderMismatch
	}
	if want, ok := r.set.Footer(); ok {
		f, err := r.ReadSignature(r.size - SignatureSize)
		if err != nil {
			return err
		}
		if f != want {
			return errFooterMismatch
		}
	}
	return nil
}

func (r *Reader) PayloadSize() int64 {
	return r.size - r.set.Overhead()
}

func (r *Reader) Payload() *io.SectionReader {
	return io.NewSectionReader(r.in, SignatureSize, r.PayloadSize())
}

func (r *Reader) ReadPayload() ([]byte, error) {
	b := make([]byte, r.PayloadSize())
	if len(b) == 0 {
		return b, nil
	}
	if err := r.read(b, SignatureSize); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate reports why the size bytes of r are not a container framed by s,
// or nil if they are.
func Validate(s SignatureSet, r io.ReaderAt, size int64) error {
	_, err := NewReader(r, size, s)
	return err
}

func IsContainerStream(s SignatureSet, r io.ReaderAt, size int64) bool {
	return Validate(s, r, size) == nil
}
