package xfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// File is a path on a filesystem. A nil Fs means the OS filesystem.
type File struct {
	Name string
	Fs   afero.Fs
}

func (f File) fs() afero.Fs {
	if f.Fs == nil {
		return afero.NewOsFs()
	}
	return f.Fs
}

// Stat returns ErrNotFound when the path does not exist.
func (f File) Stat() (fs.FileInfo, error) {
	info, err := f.fs().Stat(f.Name)
	if err != nil {
		return nil, f.openError("stat", err)
	}
	return info, nil
}

func (f File) Read() (afero.File, error) {
	file, err := f.fs().Open(f.Name)
	if err != nil {
		return nil, f.openError("open", err)
	}
	return file, nil
}

// Write truncates or creates the file, creating missing parent directories.
func (f File) Write() (afero.File, error) {
	fsys := f.fs()
	dir := filepath.Dir(f.Name)
	if info, err := fsys.Stat(dir); err != nil {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return nil, ioError("mkdir", dir, err)
		}
	} else if !info.IsDir() {
		return nil, ioError("create", f.Name, fmt.Errorf("expected dir at %q", dir))
	}
	file, err := fsys.OpenFile(f.Name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, ioError("create", f.Name, err)
	}
	return file, nil
}

// Update opens an existing file for reading and writing.
func (f File) Update() (afero.File, error) {
	file, err := f.fs().OpenFile(f.Name, os.O_RDWR, 0)
	if err != nil {
		return nil, f.openError("open", err)
	}
	return file, nil
}

func (f File) openError(op string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, f.Name)
	}
	return ioError(op, f.Name, err)
}

func closeFile(file afero.File, err *error) {
	if cerr := file.Close(); cerr != nil && *err == nil {
		*err = ioError("close", file.Name(), cerr)
	}
}
