package fsutil

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
)

// ========== AtomicWriteFrom Tests ==========

func TestAtomicWriteFrom(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	data := []byte("Hello, tempobj!")
	d, size, err := AtomicWriteFrom(testFile, bytes.NewReader(data), 0644, true, 4)
	if err != nil {
		t.Fatalf("AtomicWriteFrom failed: %v", err)
	}
	if d != digest.FromBytes(data) {
		t.Errorf("digest = %s, want %s", d, digest.FromBytes(data))
	}
	if size != int64(len(data)) {
		t.Errorf("size = %d, want %d", size, len(data))
	}

	content, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Fatalf("Content mismatch: got %q, want %q", content, data)
	}

	// Overwrite silently
	newData := []byte("Updated")
	if _, _, err := AtomicWriteFrom(testFile, bytes.NewReader(newData), 0644, true, 0); err != nil {
		t.Fatalf("AtomicWriteFrom (overwrite) failed: %v", err)
	}
	content, _ = os.ReadFile(testFile)
	if string(content) != string(newData) {
		t.Fatalf("Overwrite failed: got %q, want %q", content, newData)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %d entries in dir", len(entries))
	}
}

func TestAtomicWriteFromKeepsNeighbours(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "report")
	neighbour := testFile + ".tmp"

	if err := os.WriteFile(neighbour, []byte("caller data"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := AtomicWriteFrom(testFile, strings.NewReader("new"), 0644, false, 0); err != nil {
		t.Fatalf("AtomicWriteFrom failed: %v", err)
	}

	content, err := os.ReadFile(neighbour)
	if err != nil {
		t.Fatalf("neighbouring file was removed: %v", err)
	}
	if string(content) != "caller data" {
		t.Errorf("neighbouring file changed: %q", content)
	}
}

func TestAtomicWriteFromSourceNextToDestination(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "report.tmp")
	dst := filepath.Join(tmpDir, "report")

	if err := os.WriteFile(src, []byte("caller data"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(src)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, _, err := AtomicWriteFrom(dst, f, 0644, false, 0); err != nil {
		t.Fatalf("AtomicWriteFrom failed: %v", err)
	}

	for _, p := range []string{src, dst} {
		content, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("ReadFile(%s) failed: %v", p, err)
		}
		if string(content) != "caller data" {
			t.Errorf("%s = %q, want %q", p, content, "caller data")
		}
	}
}

func TestAtomicWriteFromSelf(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "self.txt")

	if err := os.WriteFile(testFile, []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(testFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, _, err := AtomicWriteFrom(testFile, f, 0644, false, 0); err != nil {
		t.Fatalf("AtomicWriteFrom failed: %v", err)
	}
	content, _ := os.ReadFile(testFile)
	if string(content) != "keep me" {
		t.Errorf("content = %q, want %q", content, "keep me")
	}
}

func TestAtomicWriteFromPermissions(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		perm os.FileMode
	}{
		{"read-only", 0444},
		{"read-write", 0644},
		{"group-write", 0664},
		{"full", 0755},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(tmpDir, "perm_"+tt.name+".txt")
			if _, _, err := AtomicWriteFrom(testFile, strings.NewReader("test"), tt.perm, false, 0); err != nil {
				t.Fatalf("AtomicWriteFrom failed: %v", err)
			}

			info, err := os.Stat(testFile)
			if err != nil {
				t.Fatalf("Failed to stat file: %v", err)
			}
			if got := info.Mode().Perm(); got != tt.perm {
				t.Errorf("Permissions = %o, want %o", got, tt.perm)
			}
		})
	}
}

func TestAtomicWriteFromParentDirCreation(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "a", "b", "c", "test.txt")

	if _, _, err := AtomicWriteFrom(testFile, strings.NewReader("nested"), 0644, true, 0); err != nil {
		t.Fatalf("AtomicWriteFrom failed: %v", err)
	}
	if !fileExists(testFile) {
		t.Fatal("File was not created in nested directory")
	}
}

func TestAtomicWriteFromNoMkdirs(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "missing", "test.txt")

	_, _, err := AtomicWriteFrom(testFile, strings.NewReader("x"), 0644, false, 0)
	if err == nil {
		t.Fatal("expected error when parent is missing and mkdirs is false")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist in chain, got %v", err)
	}
}

func TestAtomicWriteFromEmptyContent(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "empty.txt")

	if _, _, err := AtomicWriteFrom(testFile, bytes.NewReader(nil), 0644, false, 0); err != nil {
		t.Fatalf("AtomicWriteFrom failed: %v", err)
	}
	size, err := FileSize(testFile)
	if err != nil {
		t.Fatalf("FileSize failed: %v", err)
	}
	if size != 0 {
		t.Errorf("size = %d, want 0", size)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestAtomicWriteFromReaderError(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "broken.txt")

	_, _, err := AtomicWriteFrom(testFile, failingReader{}, 0644, false, 0)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected reader error, got %v", err)
	}

	entries, _ := os.ReadDir(tmpDir)
	if len(entries) != 0 {
		t.Errorf("failed write must not leave files behind, found %d", len(entries))
	}
}

func TestSafeRenameOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "dst.txt")

	os.WriteFile(src, []byte("new"), 0644)
	os.WriteFile(dst, []byte("old"), 0644)

	if err := SafeRename(src, dst); err != nil {
		t.Fatalf("SafeRename failed: %v", err)
	}
	content, _ := os.ReadFile(dst)
	if string(content) != "new" {
		t.Errorf("content = %q, want %q", content, "new")
	}
	if fileExists(src) {
		t.Error("source still exists after rename")
	}
}

func TestSyncDirNonExistent(t *testing.T) {
	if err := syncDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("syncDir should fail for a missing directory")
	}
}
