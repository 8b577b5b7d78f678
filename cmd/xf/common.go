package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/egor9814/xfile"
)

func isStdIOFile(name string) bool {
	return name == "-" || name == ""
}

// openFileForRead returns the input and its size, or -1 for stdin.
func openFileForRead(name string, stdin io.Reader) (io.Reader, io.Closer, int64, error) {
	if isStdIOFile(name) {
		return stdin, nil, -1, nil
	}
	f, err := xfile.File{Name: name}.Read()
	if err != nil {
		return nil, nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, 0, err
	}
	return f, f, info.Size(), nil
}

func openFileForWrite(name string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if isStdIOFile(name) {
		return stdout, nil, nil
	}
	f, err := xfile.File{Name: name}.Write()
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

// openContainer returns random access to a container. stdin is buffered in
// memory since validation needs the final bytes.
func openContainer(name string, stdin io.Reader) (io.ReaderAt, io.Closer, int64, error) {
	if isStdIOFile(name) {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, 0, err
		}
		return bytes.NewReader(b), nil, int64(len(b)), nil
	}
	f, err := xfile.File{Name: name}.Read()
	if err != nil {
		return nil, nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, 0, err
	}
	return f, f, info.Size(), nil
}

func handleClosing(c io.Closer, name string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.With("file", name, "err", err.Error()).Warn("cannot close file")
	}
}

// copyBuffer is io.CopyBuffer without WriterTo and ReaderFrom, reporting
// progress to progress when it is not nil. A negative size copies until EOF.
func copyBuffer(dst io.Writer, src io.Reader, size int64, buf []byte, progress io.Writer) (written int64, err error) {
	if size >= 0 {
		src = io.LimitReader(src, size)
	}
	for {
		nr, er := src.Read(buf)
		if nr > 0 {
			nw, ew := dst.Write(buf[0:nr])
			if nw < 0 || nr < nw {
				nw = 0
				if ew == nil {
					ew = errors.New("invalid write result")
				}
			}
			written += int64(nw)
			if progress != nil {
				if size >= 0 {
					fmt.Fprintf(progress, "\r%d/%d bytes", written, size)
				} else {
					fmt.Fprintf(progress, "\r%d bytes", written)
				}
			}
			if ew != nil {
				err = ew
				break
			}
			if nr != nw {
				err = io.ErrShortWrite
				break
			}
		}
		if er != nil {
			if er != io.EOF {
				err = er
			}
			break
		}
	}
	if progress != nil {
		fmt.Fprintf(progress, "\r")
	}
	if err == nil && size >= 0 && written < size {
		err = io.ErrUnexpectedEOF
	}
	return written, err
}
