// FILE: docsync/internal/fileio/file.go

// Package fileio reads and writes the backing files of mapped objects.
// Every call opens, fully reads or writes, and closes its file.
package fileio

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const (
	// DirMode is used for parent directories created on first write
	DirMode os.FileMode = 0755
	// FileMode is applied to every written file
	FileMode os.FileMode = 0644
)

// Stamp identifies one revision of a file on disk.
type Stamp struct {
	ModTime time.Time
	Size    int64
}

// IsZero reports whether the stamp was never taken.
func (s Stamp) IsZero() bool {
	return s.ModTime.IsZero() && s.Size == 0
}

// Equal compares modification time and size.
func (s Stamp) Equal(o Stamp) bool {
	return s.ModTime.Equal(o.ModTime) && s.Size == o.Size
}

func stampOf(info os.FileInfo) Stamp {
	return Stamp{ModTime: info.ModTime(), Size: info.Size()}
}

// Stat returns the stamp of path. A missing file is reported with
// exists=false and a nil error.
func Stat(path string) (stamp Stamp, exists bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Stamp{}, false, nil
		}
		return Stamp{}, false, errors.Wrapf(err, "failed to stat '%s'", path)
	}
	if info.IsDir() {
		return Stamp{}, false, errors.Errorf("'%s' is a directory", path)
	}
	return stampOf(info), true, nil
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	_, exists, err := Stat(path)
	return err == nil && exists
}

// Read returns the whole content of path with the stamp observed while
// the file was open. The returned error wraps os.ErrNotExist for missing files.
func Read(path string) ([]byte, Stamp, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Stamp{}, errors.Wrapf(err, "failed to open '%s'", path)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, Stamp{}, errors.Wrapf(err, "failed to stat '%s'", path)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, Stamp{}, errors.Wrapf(err, "failed to read '%s'", path)
	}

	return data, stampOf(info), nil
}

// WriteAtomic replaces path with data through a temporary file in the same
// directory, creating missing parent directories first.
func WriteAtomic(path string, data []byte) (Stamp, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return Stamp{}, errors.Wrapf(err, "failed to create directory '%s'", dir)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return Stamp{}, errors.Wrapf(err, "failed to create temporary file in '%s'", dir)
	}

	tempPath := tempFile.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return Stamp{}, errors.Wrapf(err, "failed to write temporary file '%s'", tempPath)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return Stamp{}, errors.Wrapf(err, "failed to sync temporary file '%s'", tempPath)
	}

	if err := tempFile.Close(); err != nil {
		return Stamp{}, errors.Wrapf(err, "failed to close temporary file '%s'", tempPath)
	}

	if err := os.Chmod(tempPath, FileMode); err != nil {
		return Stamp{}, errors.Wrapf(err, "failed to set permissions on '%s'", tempPath)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return Stamp{}, errors.Wrapf(err, "failed to rename '%s' to '%s'", tempPath, path)
	}
	renamed = true

	stamp, _, err := Stat(path)
	return stamp, err
}
