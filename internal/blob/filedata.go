package blob

import (
	"fmt"
	"os"
)

// FileData is a reopenable read handle on a file.
// It provides lazy loading - the file is only opened when Read() is called,
// and Close() rewinds it: the next Read() opens the file again from the start.
type FileData struct {
	path string
	name string
	size int64
	file *os.File
}

// NewFileData creates a new FileData handle.
// The file is not opened until Read() is called.
func NewFileData(path, name string, size int64) *FileData {
	return &FileData{
		path: path,
		name: name,
		size: size,
	}
}

// Read implements io.Reader.
// It lazily opens the file on the first Read() call after creation or Close().
func (f *FileData) Read(p []byte) (int, error) {
	if f.file == nil {
		file, err := os.Open(f.path)
		if err != nil {
			return 0, fmt.Errorf("failed to open file: %w", err)
		}
		f.file = file
	}

	return f.file.Read(p)
}

// Close implements io.Closer.
// It closes the underlying file if it was opened. Closing an unopened
// handle is a no-op.
func (f *FileData) Close() error {
	if f.file != nil {
		err := f.file.Close()
		f.file = nil
		return err
	}
	return nil
}

// Open returns a new independent *os.File positioned at the start.
// The caller owns the returned file.
func (f *FileData) Open() (*os.File, error) {
	return os.Open(f.path)
}

// Name returns the name hint of the data, which may be empty.
func (f *FileData) Name() string {
	return f.name
}

// Size returns the file size in bytes at the time the handle was created.
func (f *FileData) Size() int64 {
	return f.size
}

// Path returns the absolute path to the file.
func (f *FileData) Path() string {
	return f.path
}
