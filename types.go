package tempobj

import "strings"

// Representation is the set of forms a TempObject currently holds its
// payload in. The zero value means nothing is materialized.
type Representation uint8

const (
	// HasBytes marks an in-memory buffer.
	HasBytes Representation = 1 << iota

	// HasPath marks a file on disk, either caller-supplied or an owned temp file.
	HasPath
)

// Has reports whether all representations in x are present in r.
func (r Representation) Has(x Representation) bool {
	return r&x == x
}

func (r Representation) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	if r.Has(HasBytes) {
		parts = append(parts, "bytes")
	}
	if r.Has(HasPath) {
		parts = append(parts, "path")
	}
	return strings.Join(parts, "|")
}

// Path is a filesystem path used as a source. Plain strings are also
// accepted as paths by New; Path exists to make the intent explicit.
type Path string

// NamedSource is implemented by sources that know the original name of
// their data (for example an upload that was spooled to disk under a
// generated name).
type NamedSource interface {
	OriginalName() string
}

// PathedSource is implemented by file-like sources that expose the path
// of the file they read from.
type PathedSource interface {
	Path() string
}

// Field represents a structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// sourceKind records which shape the source had at construction.
type sourceKind uint8

const (
	sourceBytes sourceKind = iota + 1
	sourceFile
	sourcePath
	sourceObject
)

func (k sourceKind) String() string {
	switch k {
	case sourceBytes:
		return "bytes"
	case sourceFile:
		return "file"
	case sourcePath:
		return "path"
	case sourceObject:
		return "object"
	default:
		return "unknown"
	}
}
