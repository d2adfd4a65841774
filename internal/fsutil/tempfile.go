package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	createTempAttempts = 10

	// maxExtLen bounds the extension carried over from a name hint.
	maxExtLen = 16
)

var consecutiveUnderscores = regexp.MustCompile(`_+`)

// CreateTemp creates a new private file in dir named {prefix}{uuid}{.ext}.
// An empty dir means os.TempDir(); a relative dir is resolved against the
// working directory. The file is opened read-write with mode
// 0600 and O_EXCL, so a returned file is never shared with another caller.
//
// Keeping the extension lets tools that sniff file types by name work on
// the temp file. ext comes from untrusted name hints and is passed through
// SanitizeExt first.
func CreateTemp(dir, prefix, ext string) (*os.File, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	dir, err := AbsPath(dir)
	if err != nil {
		return nil, err
	}
	if ext = SanitizeExt(ext); ext != "" {
		ext = "." + ext
	}

	for i := 0; i < createTempAttempts; i++ {
		path := filepath.Join(dir, prefix+uuid.NewString()+ext)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
	}

	return nil, fmt.Errorf("failed to create temp file in %s: too many collisions", dir)
}

// SanitizeExt cleans a file extension taken from a name hint so it is safe
// in a file name on any platform. The leading dot is dropped, characters
// invalid in file names are replaced with underscores (runs compressed to
// one) and the result is cut to 16 bytes.
//
// Example:
//   - ".png" -> "png"
//   - "a:b*c" -> "a_b_c"
//   - "??" -> ""
func SanitizeExt(ext string) string {
	ext = strings.TrimPrefix(ext, ".")

	result := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', '.', ' ':
			return '_'
		}
		if r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, ext)

	result = consecutiveUnderscores.ReplaceAllString(result, "_")
	result = strings.Trim(result, "_")

	if len(result) > maxExtLen {
		result = strings.ToValidUTF8(result[:maxExtLen], "")
	}
	return result
}
