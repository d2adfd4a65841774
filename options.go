package tempobj

import "os"

// Option is a function that configures a TempObject or a Namespace.
type Option func(*options)

// options holds configuration options for creating temp objects.
type options struct {
	config Config
	logger Logger
	name   *string
}

// WithConfig replaces the whole configuration. Zero fields fall back to
// the defaults.
func WithConfig(config Config) Option {
	return func(o *options) {
		o.config = config
	}
}

// WithBlockSize sets the chunk size used by Chunks and Each.
//
// Example:
//
//	obj, _ := tempobj.New(path, tempobj.WithBlockSize(64*1024))
func WithBlockSize(n int) Option {
	return func(o *options) {
		o.config.BlockSize = n
	}
}

// WithTempDir sets the directory owned temp files are created in.
func WithTempDir(dir string) Option {
	return func(o *options) {
		o.config.TempDir = dir
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NewNoopLogger()
		}
		o.logger = logger
	}
}

// WithName overrides the name hint derived from the source.
//
// Example:
//
//	obj, _ := tempobj.New(upload, tempobj.WithName("avatar.jpg"))
func WithName(name string) Option {
	return func(o *options) {
		o.name = &name
	}
}

// WriteOption is a function that configures a WriteToFile operation.
type WriteOption func(*writeOptions)

// writeOptions holds options for WriteToFile.
type writeOptions struct {
	mode   os.FileMode
	mkdirs bool
}

// WithMode sets the permission mode of the destination file.
func WithMode(mode os.FileMode) WriteOption {
	return func(o *writeOptions) {
		o.mode = mode
	}
}

// WithoutMkdirs makes WriteToFile fail instead of creating missing parent
// directories.
func WithoutMkdirs() WriteOption {
	return func(o *writeOptions) {
		o.mkdirs = false
	}
}
