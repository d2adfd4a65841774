package fsutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestExpandInputs(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		"a.jpg",
		"b.txt",
		"sub/c.jpg",
		".hidden/d.jpg",
		"sub/.e.jpg",
	}
	for _, f := range files {
		p := filepath.Join(tmpDir, f)
		os.MkdirAll(filepath.Dir(p), 0755)
		os.WriteFile(p, []byte(f), 0644)
	}
	single := filepath.Join(tmpDir, "b.txt")

	t.Run("all visible", func(t *testing.T) {
		got, err := ExpandInputs([]string{tmpDir}, "", false)
		if err != nil {
			t.Fatalf("ExpandInputs failed: %v", err)
		}
		sort.Strings(got)
		want := []string{
			filepath.Join(tmpDir, "a.jpg"),
			filepath.Join(tmpDir, "b.txt"),
			filepath.Join(tmpDir, "sub", "c.jpg"),
		}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("pattern", func(t *testing.T) {
		got, err := ExpandInputs([]string{tmpDir}, "*.jpg", false)
		if err != nil {
			t.Fatalf("ExpandInputs failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("got %v, want 2 jpg files", got)
		}
	})

	t.Run("hidden", func(t *testing.T) {
		got, err := ExpandInputs([]string{tmpDir}, "*.jpg", true)
		if err != nil {
			t.Fatalf("ExpandInputs failed: %v", err)
		}
		if len(got) != 4 {
			t.Errorf("got %v, want 4 jpg files", got)
		}
	})

	t.Run("files and stdin pass through", func(t *testing.T) {
		got, err := ExpandInputs([]string{"-", single}, "*.jpg", false)
		if err != nil {
			t.Fatalf("ExpandInputs failed: %v", err)
		}
		if len(got) != 2 || got[0] != "-" || got[1] != single {
			t.Errorf("got %v", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := ExpandInputs([]string{filepath.Join(tmpDir, "nope")}, "", false); err == nil {
			t.Error("expected error for missing input")
		}
	})

	t.Run("bad pattern", func(t *testing.T) {
		if _, err := ExpandInputs([]string{tmpDir}, "[", false); err == nil {
			t.Error("expected error for invalid pattern")
		}
	})
}

func TestIsHidden(t *testing.T) {
	tests := map[string]bool{
		".git":          true,
		"/a/b/.env":     true,
		"file.txt":      false,
		".":             false,
		"..":            false,
		"/a/.b/visible": false,
	}
	for p, want := range tests {
		if got := IsHidden(p); got != want {
			t.Errorf("IsHidden(%q) = %v, want %v", p, got, want)
		}
	}
}
