// Package fileutil provides small filesystem helpers shared by the strategy
// chain and the metadata writer.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory containing path if it does not exist.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// FileSize returns the byte size of path, or 0 when the file cannot be
// stat'ed.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// NonEmptyFile reports whether path exists and holds at least one byte.
func NonEmptyFile(path string) bool {
	return FileSize(path) > 0
}
