package xfile

import (
	"io"

	"github.com/spf13/afero"
)

// Container validates, reads, writes and appends container files framed by
// Signatures. It holds no state of its own; all state lives in the files.
type Container struct {
	Signatures SignatureSet
	Fs         afero.Fs
}

type Option func(*Container)

// WithFs routes all file access through fsys instead of the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(c *Container) {
		c.Fs = fsys
	}
}

func New(s SignatureSet, opts ...Option) Container {
	c := Container{Signatures: s}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Container) file(path string) File {
	return File{Name: path, Fs: c.Fs}
}

func (c Container) reader(path string, in afero.File) (*Reader, error) {
	info, err := in.Stat()
	if err != nil {
		return nil, ioError("stat", path, err)
	}
	if info.IsDir() {
		return nil, pathError("validate", path, errIsDirectory)
	}
	r, err := NewReader(in, info.Size(), c.Signatures)
	if err != nil {
		return nil, pathError("validate", path, err)
	}
	return r, nil
}

// Check returns nil if path is a container, or an error matching
// ErrNotFound, ErrFormatMismatch or ErrIO.
func (c Container) Check(path string) (err error) {
	in, err := c.file(path).Read()
	if err != nil {
		return err
	}
	defer closeFile(in, &err)
	_, err = c.reader(path, in)
	return err
}

// IsContainer reports whether path exists and is framed by c.Signatures.
// Every failure, including I/O errors, is reported as false.
func (c Container) IsContainer(path string) bool {
	return c.Check(path) == nil
}

// ReadAll returns the payload of the container at path.
func (c Container) ReadAll(path string) (payload []byte, err error) {
	in, err := c.file(path).Read()
	if err != nil {
		return nil, err
	}
	defer closeFile(in, &err)
	r, err := c.reader(path, in)
	if err != nil {
		return nil, err
	}
	payload, err = r.ReadPayload()
	if err != nil {
		return nil, pathError("read", path, err)
	}
	return payload, nil
}

// WriteAll replaces whatever is at path with a container holding payload.
func (c Container) WriteAll(path string, payload []byte) (err error) {
	out, err := c.file(path).Write()
	if err != nil {
		return err
	}
	defer closeFile(out, &err)
	if err := NewWriter(out, c.Signatures).WriteAll(payload); err != nil {
		return ioError("write", path, err)
	}
	return nil
}

// Append adds payload to the end of the existing container at path. In
// footer mode the payload and the footer go out in one positioned write
// starting at the old footer offset, so the footer is the last
// SignatureSize bytes once Append returns. A crash mid-write can still leave
// the file without a footer.
func (c Container) Append(path string, payload []byte) (err error) {
	file := c.file(path)
	// some filesystems refuse to open a directory for writing
	info, err := file.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return pathError("validate", path, errIsDirectory)
	}
	f, err := file.Update()
	if err != nil {
		return err
	}
	defer closeFile(f, &err)
	r, err := c.reader(path, f)
	if err != nil {
		return err
	}

	buf, off := payload, r.size
	if footer, ok := c.Signatures.Footer(); ok {
		off -= SignatureSize
		buf = make([]byte, 0, len(payload)+SignatureSize)
		buf = append(append(buf, payload...), footer[:]...)
	}
	if len(buf) == 0 {
		return nil
	}
	n, err := f.WriteAt(buf, off)
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return ioError("append", path, err)
	}
	return nil
}

func IsContainer(s SignatureSet, path string) bool {
	return New(s).IsContainer(path)
}

func Check(s SignatureSet, path string) error {
	return New(s).Check(path)
}

func ReadAll(s SignatureSet, path string) ([]byte, error) {
	return New(s).ReadAll(path)
}

func WriteAll(s SignatureSet, path string, payload []byte) error {
	return New(s).WriteAll(path, payload)
}

func Append(s SignatureSet, path string, payload []byte) error {
	return New(s).Append(path, payload)
}
