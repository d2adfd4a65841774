package tempobj

import "errors"

// Common errors returned by tempobj operations.
var (
	// ErrInvalidSource is returned by New when the source is not bytes,
	// a file, a path or another TempObject.
	ErrInvalidSource = errors.New("invalid temp object source")

	// ErrClosed is returned by every data accessor after Close.
	ErrClosed = errors.New("temp object is closed")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNamespaceExists is returned when defining a namespace twice.
	ErrNamespaceExists = errors.New("namespace already exists")
)
