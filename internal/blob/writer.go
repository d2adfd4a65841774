// Package blob writes and reads the files behind temp objects: a digesting
// chunked writer, a reopenable read handle and digest helpers.
package blob

import (
	"fmt"
	"io"
	"os"

	"github.com/opencontainers/go-digest"
)

// DefaultChunkSize is used when a Writer is created with a non-positive chunk size.
const DefaultChunkSize = 64 * 1024

// Writer is a chunked writer that writes data to a file and computes its
// content digest simultaneously.
type Writer struct {
	file      *os.File
	digester  digest.Digester
	written   int64
	chunkSize int
}

// NewWriter wraps an open file. The writer takes ownership of f: Close or
// Abort always close it.
//
// Parameters:
//   - f: destination file, opened for writing
//   - chunkSize: buffer size used by WriteFrom (typically 64KB)
func NewWriter(f *os.File, chunkSize int) *Writer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Writer{
		file:      f,
		digester:  digest.Canonical.Digester(),
		chunkSize: chunkSize,
	}
}

// Write writes data to the file and updates the digest.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.file.Write(p)
	if err != nil {
		return n, fmt.Errorf("failed to write to file: %w", err)
	}

	w.digester.Hash().Write(p[:n])
	w.written += int64(n)

	return n, nil
}

// WriteFrom reads from a reader and writes to the file in chunks.
func (w *Writer) WriteFrom(r io.Reader) error {
	buf := make([]byte, w.chunkSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return fmt.Errorf("failed to read from source: %w", err)
		}
	}

	return nil
}

// Close syncs and closes the file and returns the digest and size of
// everything written.
func (w *Writer) Close() (digest.Digest, int64, error) {
	if err := w.file.Sync(); err != nil {
		w.file.Close()
		return "", 0, fmt.Errorf("failed to sync file: %w", err)
	}

	if err := w.file.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to close file: %w", err)
	}

	return w.digester.Digest(), w.written, nil
}

// Abort closes the writer and removes the file.
// Used when an error occurs and we need to clean up.
func (w *Writer) Abort() error {
	path := w.file.Name()
	w.file.Close()
	return os.Remove(path)
}

// Path returns the path of the file being written.
func (w *Writer) Path() string {
	return w.file.Name()
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int64 {
	return w.written
}
