package tempobj

import (
	"bytes"
	"io"
	"os"

	"github.com/aigotowork/tempobj/internal/blob"
	"github.com/aigotowork/tempobj/internal/fsutil"
)

// ensureBytes reads the file into memory unless bytes are already cached.
func (t *TempObject) ensureBytes() error {
	if t.rep.Has(HasBytes) {
		return nil
	}

	data, err := os.ReadFile(t.path)
	if err != nil {
		return err
	}

	t.data = data
	t.rep |= HasBytes
	t.logger.Debug("materialized bytes from path",
		Field{"id", t.id},
		Field{"path", t.path},
		Field{"size", len(data)},
	)
	return nil
}

// ensurePath writes the cached bytes to an owned temp file unless a path
// is already known. On failure the partial temp file is removed and no
// path is cached.
func (t *TempObject) ensurePath() error {
	if t.rep.Has(HasPath) {
		return nil
	}

	f, err := fsutil.CreateTemp(t.config.TempDir, t.config.TempPrefix, t.Ext())
	if err != nil {
		return err
	}

	w := blob.NewWriter(f, t.config.BlockSize)
	path := w.Path()
	if err := w.WriteFrom(bytes.NewReader(t.data)); err != nil {
		written := w.Written()
		if abortErr := w.Abort(); abortErr != nil {
			t.logger.Warn("failed to remove partial temp file",
				Field{"id", t.id},
				Field{"path", path},
				Field{"written", written},
				Field{"error", abortErr},
			)
		}
		return err
	}

	d, size, err := w.Close()
	if err != nil {
		if rmErr := fsutil.RemoveIfExists(path); rmErr != nil {
			t.logger.Warn("failed to remove partial temp file",
				Field{"id", t.id},
				Field{"path", path},
				Field{"error", rmErr},
			)
		}
		return err
	}

	t.path = path
	t.tempPath = path
	t.rep |= HasPath
	if t.digest == "" {
		t.digest = d
	}
	t.logger.Debug("materialized temp file from bytes",
		Field{"id", t.id},
		Field{"path", path},
		Field{"size", size},
	)
	return nil
}

// open returns a reader over the payload without converting. preferPath
// picks the file when both representations are cached.
func (t *TempObject) open(preferPath bool) (io.ReadCloser, error) {
	hasPath := t.rep.Has(HasPath)
	if hasPath && (preferPath || !t.rep.Has(HasBytes)) {
		return os.Open(t.path)
	}
	return io.NopCloser(bytes.NewReader(t.data)), nil
}
