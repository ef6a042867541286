package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CreateExclusive creates path for writing and fails if it already exists.
func CreateExclusive(path string, mode os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
}

// WriteExclusive writes data to a new file at path. An existing file is never
// overwritten; a partially written file is removed.
func WriteExclusive(path string, data []byte, mode os.FileMode) error {
	return WriteExclusiveFunc(path, mode, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteExclusiveFunc creates path exclusively and hands the file to write.
// When write or close fails the new file is removed.
func WriteExclusiveFunc(path string, mode os.FileMode, write func(io.Writer) error) error {
	out, err := CreateExclusive(path, mode)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

// EnsureDir creates dir (and parents) when missing and verifies it is a directory.
func EnsureDir(dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", filepath.Clean(dir))
	}
	return nil
}
