// Package storage holds the file operations shared by the settings file and
// the cache directory. Writers never expose a partially written file.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/cesargomez89/mediacache/internal/constants"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, constants.DirPermissions)
}

// TempPath returns a unique sibling of path for staging a write.
func TempPath(path string) string {
	return path + "." + uuid.NewString() + constants.TempFileExt
}

func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
	}
	return nil
}

// RemoveFile deletes path. A file that is already gone is not an error.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !IsNotExist(err) {
		return err
	}
	return nil
}

// WriteFileAtomic replaces path with data through a temp file in the same
// directory, creating the directory if needed.
func WriteFileAtomic(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp := TempPath(path)
	if err := os.WriteFile(tmp, data, constants.FilePermissions); err != nil {
		_ = RemoveFile(tmp)
		return err
	}
	if err := MoveFile(tmp, path); err != nil {
		_ = RemoveFile(tmp)
		return err
	}
	return nil
}

func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
