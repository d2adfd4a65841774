package blob

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "fixture.bin")
	if err := os.WriteFile(p, data, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return p
}

// TestFileDataMetadata tests the accessor methods
func TestFileDataMetadata(t *testing.T) {
	fd := NewFileData("/tmp/blobs/file name.bin", "file name.bin", 100)

	if fd.Path() != "/tmp/blobs/file name.bin" {
		t.Errorf("Path() = %q", fd.Path())
	}
	if fd.Name() != "file name.bin" {
		t.Errorf("Name() = %q", fd.Name())
	}
	if fd.Size() != 100 {
		t.Errorf("Size() = %d", fd.Size())
	}
}

// TestFileDataLazyOpen verifies that nothing is opened until Read
func TestFileDataLazyOpen(t *testing.T) {
	fd := NewFileData(filepath.Join(t.TempDir(), "missing"), "", 0)

	// Close on an unopened handle is a no-op.
	if err := fd.Close(); err != nil {
		t.Fatalf("Close on unopened handle failed: %v", err)
	}

	if _, err := fd.Read(make([]byte, 1)); err == nil {
		t.Fatal("Read of a missing file should fail")
	}
}

// TestFileDataReopen reads the handle twice; each pass starts at offset 0
func TestFileDataReopen(t *testing.T) {
	testData := []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	p := writeFixture(t, testData)

	fd := NewFileData(p, "fixture.bin", int64(len(testData)))

	for pass := 0; pass < 3; pass++ {
		got, err := io.ReadAll(fd)
		if err != nil {
			t.Fatalf("pass %d: ReadAll failed: %v", pass, err)
		}
		if !bytes.Equal(got, testData) {
			t.Fatalf("pass %d: got %q, want %q", pass, got, testData)
		}
		if err := fd.Close(); err != nil {
			t.Fatalf("pass %d: Close failed: %v", pass, err)
		}
	}
}

// TestFileDataReadPartial tests partial reads followed by a rewind
func TestFileDataReadPartial(t *testing.T) {
	testData := []byte("0123456789ABCDEFGHIJ")
	p := writeFixture(t, testData)

	fd := NewFileData(p, "", int64(len(testData)))
	defer fd.Close()

	buf := make([]byte, 10)
	n, err := fd.Read(buf)
	if err != nil || n != 10 || string(buf) != "0123456789" {
		t.Fatalf("first read = %q, %v", buf[:n], err)
	}

	n, err = fd.Read(buf)
	if err != nil || string(buf[:n]) != "ABCDEFGHIJ" {
		t.Fatalf("second read = %q, %v", buf[:n], err)
	}

	fd.Close()
	n, err = fd.Read(buf)
	if err != nil || string(buf[:n]) != "0123456789" {
		t.Fatalf("read after Close = %q, %v; want rewind", buf[:n], err)
	}
}

// TestFileDataOpen tests independent handles
func TestFileDataOpen(t *testing.T) {
	testData := []byte("independent")
	p := writeFixture(t, testData)
	fd := NewFileData(p, "", int64(len(testData)))

	f1, err := fd.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f1.Close()
	f2, err := fd.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f2.Close()

	io.ReadAll(f1)
	got, _ := io.ReadAll(f2)
	if !bytes.Equal(got, testData) {
		t.Errorf("second handle read %q, want %q", got, testData)
	}
}
