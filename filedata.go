package tempobj

import (
	"io"
	"os"
)

// FileData is a reopenable read handle returned by TempObject.TempFile.
//
// The handle starts closed. The first Read opens the file; Close closes it
// and rewinds, so the next Read starts again from the beginning. This makes
// it safe to hand the same FileData to several consumers in turn.
//
// Example usage:
//
//	fd, err := obj.TempFile()
//	if err != nil {
//	    return err
//	}
//	io.Copy(dst1, fd)
//	fd.Close()
//	io.Copy(dst2, fd) // full data again
//	fd.Close()
type FileData interface {
	// ReadCloser provides streaming read access
	io.ReadCloser

	// Open returns a new independent file positioned at the start.
	Open() (*os.File, error)

	// Name returns the name hint (e.g., "resume.pdf"), possibly empty
	Name() string

	// Size returns the file size in bytes
	Size() int64

	// Path returns the absolute path to the file
	Path() string
}
