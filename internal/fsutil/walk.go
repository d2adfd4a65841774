package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExpandInputs turns a list of command-line inputs into a list of files.
// Regular files and the stdin marker "-" are kept as given. Directories are
// walked recursively and replaced by the regular files they contain whose
// base name matches pattern (empty pattern matches everything). Hidden
// entries below a directory are skipped unless includeHidden is set.
func ExpandInputs(inputs []string, pattern string, includeHidden bool) ([]string, error) {
	if pattern != "" {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
	}

	var out []string
	for _, in := range inputs {
		if in == "-" {
			out = append(out, in)
			continue
		}

		info, err := os.Stat(in)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, in)
			continue
		}

		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != in && !includeHidden && IsHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if pattern != "" {
				matched, _ := filepath.Match(pattern, d.Name())
				if !matched {
					return nil
				}
			}
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// IsHidden checks if a file or directory is hidden.
// On Unix systems, files starting with "." are hidden.
func IsHidden(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
