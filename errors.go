package xfile

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation needs an existing container
	// and the path does not exist.
	ErrNotFound = errors.New("xfile: file not found")

	// ErrFormatMismatch is returned when the file is too short or its
	// signatures do not match. Treat it as "not our file".
	ErrFormatMismatch = errors.New("xfile: not a container")

	// ErrInvalidSignatureLength is returned when a signature is not exactly
	// SignatureSize bytes.
	ErrInvalidSignatureLength = errors.New("xfile: invalid signature length")

	// ErrDecode is returned when a payload is not valid text in the requested
	// encoding.
	ErrDecode = errors.New("xfile: decode error")

	// ErrEncode is returned when text cannot be represented in the requested
	// encoding.
	ErrEncode = errors.New("xfile: encode error")

	// ErrIO wraps failures of the underlying filesystem.
	ErrIO = errors.New("xfile: i/o failure")
)

func ioError(op, path string, err error) error {
	if errors.Is(err, ErrIO) {
		return fmt.Errorf("%s %q: %w", op, path, err)
	}
	return fmt.Errorf("%s %q: %w: %w", op, path, ErrIO, err)
}

func pathError(op, path string, err error) error {
	return fmt.Errorf("%s %q: %w", op, path, err)
}
