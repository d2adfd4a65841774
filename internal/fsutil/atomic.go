// Package fsutil provides file system helpers for temporary object storage:
// owned temp files, destination writes and path normalization.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"

	"github.com/aigotowork/tempobj/internal/blob"
)

// AtomicWriteFrom streams r into path atomically, applies perm and returns
// the digest and size of what was written.
//
// Steps:
// 1. Create a uniquely named hidden temp file next to path (O_EXCL)
// 2. Stream r into it in chunkSize blocks, digesting on the way
// 3. Chmod to perm (the umask must not narrow the requested mode)
// 4. Sync and close
// 5. Rename to {path}
// 6. Sync parent directory
//
// An existing file at path is replaced; no other file in the directory is
// touched, so path may also be the file r reads from. When mkdirs is true,
// missing parent directories are created with mode 0755.
func AtomicWriteFrom(path string, r io.Reader, perm os.FileMode, mkdirs bool, chunkSize int) (digest.Digest, int64, error) {
	dir := filepath.Dir(path)
	if mkdirs {
		if err := EnsureDir(dir, 0755); err != nil {
			return "", 0, fmt.Errorf("failed to create parent directory: %w", err)
		}
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := f.Name()

	w := blob.NewWriter(f, chunkSize)
	if err := w.WriteFrom(r); err != nil {
		_ = w.Abort()
		return "", 0, fmt.Errorf("failed to write to temp file after %d bytes: %w", w.Written(), err)
	}

	if err := f.Chmod(perm); err != nil {
		_ = w.Abort()
		return "", 0, fmt.Errorf("failed to set file mode: %w", err)
	}

	d, size, err := w.Close()
	if err != nil {
		os.Remove(tmpPath)
		return "", 0, err
	}

	if err := SafeRename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", 0, fmt.Errorf("failed to rename temp file: %w", err)
	}

	// Best effort: the file is already in place.
	_ = syncDir(dir)

	return d, size, nil
}

// SafeRename renames a file safely.
// On Unix systems, os.Rename is atomic if src and dst are on the same filesystem.
func SafeRename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// syncDir syncs a directory to disk.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Sync()
}
