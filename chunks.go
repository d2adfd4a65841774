package tempobj

import (
	"errors"
	"io"
	"iter"
	"os"
)

// Chunks returns the payload as a sequence of chunks of Config.BlockSize
// bytes; only the last chunk may be shorter. An empty payload yields no
// chunks.
//
// Iteration never converts: cached bytes are sliced in place (those chunks
// share the cache and must not be modified), otherwise the file is
// streamed block by block without reading it whole. Every range over the
// sequence starts again from the beginning. Errors, including ErrClosed,
// are yielded as the second value and end the sequence.
func (t *TempObject) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if t.closed {
			yield(nil, ErrClosed)
			return
		}

		bs := t.config.BlockSize
		if t.rep.Has(HasBytes) {
			data := t.data
			for off := 0; off < len(data); off += bs {
				end := min(off+bs, len(data))
				if !yield(data[off:end:end], nil) {
					return
				}
			}
			return
		}

		f, err := os.Open(t.path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer f.Close()

		for {
			buf := make([]byte, bs)
			n, err := io.ReadFull(f, buf)
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// Each calls fn for every chunk of Chunks in order. It stops at the first
// error from the iteration or from fn and returns it.
func (t *TempObject) Each(fn func(chunk []byte) error) error {
	for chunk, err := range t.Chunks() {
		if err != nil {
			return err
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

// Reader returns a reader over the payload from the cheapest cached
// representation. It never converts. The caller must close it.
func (t *TempObject) Reader() (io.ReadCloser, error) {
	if t.closed {
		return nil, ErrClosed
	}
	return t.open(false)
}
