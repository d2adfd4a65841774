package tempobj

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/aigotowork/tempobj/internal/fsutil"
)

// init resolves src into the object's initial representation.
func (t *TempObject) init(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		t.kind = sourceBytes
		t.data = bytes.Clone(s)
		if t.data == nil {
			t.data = []byte{}
		}
		t.rep = HasBytes
		return nil

	case *TempObject:
		if s == nil {
			return fmt.Errorf("%w: nil *TempObject", ErrInvalidSource)
		}
		return t.copyFrom(s)

	case string:
		return t.initPath(s, sourcePath)

	case Path:
		return t.initPath(string(s), sourcePath)

	case *os.File:
		if s == nil {
			return fmt.Errorf("%w: nil *os.File", ErrInvalidSource)
		}
		return t.initPath(s.Name(), sourceFile)

	case PathedSource:
		if isNilPointer(s) {
			return fmt.Errorf("%w: nil %T", ErrInvalidSource, s)
		}
		if err := t.initPath(s.Path(), sourceFile); err != nil {
			return err
		}
		if named, ok := s.(NamedSource); ok && named.OriginalName() != "" {
			t.name = named.OriginalName()
		}
		return nil

	default:
		return fmt.Errorf("%w: %T", ErrInvalidSource, src)
	}
}

func (t *TempObject) initPath(path string, kind sourceKind) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidSource)
	}
	abs, err := fsutil.AbsPath(path)
	if err != nil {
		return err
	}

	t.kind = kind
	t.path = abs
	t.rep = HasPath
	t.name = filepath.Base(abs)
	return nil
}

// copyFrom takes over the representations src already has. Bytes are
// copied. A caller-supplied path is shared, but a temp file owned by src
// is not: it disappears when src is closed, and an owned temp file only
// ever exists next to cached bytes, which the copy already carries.
func (t *TempObject) copyFrom(src *TempObject) error {
	if src.closed {
		return ErrClosed
	}

	t.kind = sourceObject
	t.name = src.name
	t.digest = src.digest

	if src.rep.Has(HasBytes) {
		t.data = bytes.Clone(src.data)
		if t.data == nil {
			t.data = []byte{}
		}
		t.rep |= HasBytes
	}
	if src.rep.Has(HasPath) && src.tempPath == "" {
		t.path = src.path
		t.rep |= HasPath
	}
	return nil
}

// isNilPointer reports whether v holds a typed nil pointer, which satisfies
// an interface but cannot have methods called on it.
func isNilPointer(v interface{}) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
