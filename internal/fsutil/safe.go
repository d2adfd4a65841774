package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir ensures that a directory exists. Creates it if it doesn't exist.
// Creates parent directories as needed (like mkdir -p).
func EnsureDir(path string, perm os.FileMode) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("path exists but is not a directory: %s", path)
		}
		return nil
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return nil
}

// FileSize returns the size of the file at path without reading it.
// Unlike a plain stat it refuses directories, which cannot back a payload.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("path is a directory: %s", path)
	}
	return info.Size(), nil
}

// RemoveIfExists removes a single file.
// It doesn't return an error if the path doesn't exist.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove: %w", err)
	}
	return nil
}

// AbsPath returns the absolute path, resolving any relative components
// against the current working directory.
func AbsPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// SplitName splits a file name into its base (without extension) and its
// extension (without the leading dot). Dotfiles like ".env" have no extension.
func SplitName(name string) (base, ext string) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", ""
	}
	e := filepath.Ext(name)
	if e == name || e == "" {
		return name, ""
	}
	return name[:len(name)-len(e)], e[1:]
}
