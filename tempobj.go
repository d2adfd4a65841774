package tempobj

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"

	"github.com/aigotowork/tempobj/internal/blob"
	"github.com/aigotowork/tempobj/internal/fsutil"
)

// TempObject holds one binary payload and materializes it as bytes or as
// a file on demand. Each representation is computed at most once and then
// cached until Close.
//
// A TempObject is not safe for concurrent use.
type TempObject struct {
	id   string
	kind sourceKind

	rep  Representation
	data []byte
	path string

	// tempPath is the temp file this object created and must remove on
	// Close. Empty when the path was supplied by the caller.
	tempPath string

	name   string
	digest digest.Digest

	config Config
	logger Logger
	closed bool
}

// New creates a TempObject from src, which must be one of:
//   - []byte: held in memory, nothing is written to disk
//   - *os.File or a PathedSource: the file's path is used
//   - string or Path: a filesystem path, made absolute against the
//     current working directory
//   - *TempObject: an independent copy of another live object
//
// Any other type fails with ErrInvalidSource.
//
// When src is a *TempObject the copy inherits its configuration and
// logger; options are applied on top.
func New(src interface{}, opts ...Option) (*TempObject, error) {
	o := &options{
		config: DefaultConfig(),
		logger: NewNoopLogger(),
	}
	if parent, ok := src.(*TempObject); ok && parent != nil {
		o.config = parent.config
		o.logger = parent.logger
	}
	for _, opt := range opts {
		opt(o)
	}

	return newWithOptions(src, o)
}

// FromBytes creates a bytes-backed TempObject. The slice is copied.
func FromBytes(data []byte, opts ...Option) (*TempObject, error) {
	if data == nil {
		data = []byte{}
	}
	return New(data, opts...)
}

// FromPath creates a TempObject reading from the file at path.
func FromPath(path string, opts ...Option) (*TempObject, error) {
	return New(Path(path), opts...)
}

// FromFile creates a TempObject reading from the file behind f.
// The object reads by path; f itself is neither read nor closed.
func FromFile(f *os.File, opts ...Option) (*TempObject, error) {
	return New(f, opts...)
}

// FromObject creates an independent copy of another TempObject.
func FromObject(src *TempObject, opts ...Option) (*TempObject, error) {
	return New(src, opts...)
}

func newWithOptions(src interface{}, o *options) (*TempObject, error) {
	config := mergeConfig(o.config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	// Pin a relative temp dir to the working directory of construction so
	// paths handed out stay absolute.
	if config.TempDir != "" {
		dir, err := fsutil.AbsPath(config.TempDir)
		if err != nil {
			return nil, err
		}
		config.TempDir = dir
	}

	obj := &TempObject{
		id:     uuid.NewString(),
		config: config,
		logger: o.logger,
	}
	if err := obj.init(src); err != nil {
		return nil, err
	}
	if o.name != nil {
		obj.name = *o.name
	}

	obj.logger.Debug("temp object created",
		Field{"id", obj.id},
		Field{"source", obj.kind.String()},
		Field{"name", obj.name},
	)
	return obj, nil
}

// Bytes returns the payload as a byte slice. A path-backed object reads
// its file the first time and caches the result.
//
// The returned slice is the cached buffer and must not be modified.
func (t *TempObject) Bytes() ([]byte, error) {
	if t.closed {
		return nil, ErrClosed
	}
	if err := t.ensureBytes(); err != nil {
		return nil, err
	}
	return t.data, nil
}

// Path returns an absolute path to a file holding the payload. A
// bytes-backed object writes an owned temp file the first time; later
// calls return the same path.
func (t *TempObject) Path() (string, error) {
	if t.closed {
		return "", ErrClosed
	}
	if err := t.ensurePath(); err != nil {
		return "", err
	}
	return t.path, nil
}

// File opens the payload's file for reading, positioned at the start.
// The caller must close the returned file.
func (t *TempObject) File() (*os.File, error) {
	path, err := t.Path()
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// UseFile opens the payload's file, passes it to fn and closes it when fn
// returns. fn's result is returned as is.
//
// Example:
//
//	header, err := tempobj.UseFile(obj, func(f *os.File) ([]byte, error) {
//	    buf := make([]byte, 4)
//	    _, err := io.ReadFull(f, buf)
//	    return buf, err
//	})
func UseFile[T any](t *TempObject, fn func(f *os.File) (T, error)) (T, error) {
	var zero T
	f, err := t.File()
	if err != nil {
		return zero, err
	}
	defer f.Close()

	return fn(f)
}

// TempFile returns a reopenable handle on the payload's file. See FileData.
func (t *TempObject) TempFile() (FileData, error) {
	path, err := t.Path()
	if err != nil {
		return nil, err
	}
	size, err := t.Size()
	if err != nil {
		return nil, err
	}
	return blob.NewFileData(path, t.name, size), nil
}

// Size returns the payload length in bytes without converting: the buffer
// length when bytes are cached, otherwise the size of the file on disk.
func (t *TempObject) Size() (int64, error) {
	if t.closed {
		return 0, ErrClosed
	}
	if t.rep.Has(HasBytes) {
		return int64(len(t.data)), nil
	}
	return fsutil.FileSize(t.path)
}

// WriteToFile copies the payload to dst, creating or replacing it, and
// returns dst opened for reading. The destination gets Config.FileMode
// (0644 by default) regardless of the umask. Missing parent directories
// are created unless WithoutMkdirs is given.
//
// The copy streams from the file when one is known, otherwise it writes
// the in-memory buffer, in Config.BlockSize pieces. The digest of what was
// written becomes the object's digest. Only dst itself is replaced; the
// data is staged in a uniquely named file next to it.
func (t *TempObject) WriteToFile(dst string, opts ...WriteOption) (*os.File, error) {
	if t.closed {
		return nil, ErrClosed
	}

	wo := writeOptions{
		mode:   t.config.FileMode,
		mkdirs: true,
	}
	for _, opt := range opts {
		opt(&wo)
	}

	absDst, err := fsutil.AbsPath(dst)
	if err != nil {
		return nil, err
	}

	r, err := t.open(true)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	d, size, err := fsutil.AtomicWriteFrom(absDst, r, wo.mode, wo.mkdirs, t.config.BlockSize)
	if err != nil {
		return nil, err
	}

	if t.digest != "" && t.digest != d {
		t.logger.Warn("source changed since its digest was taken",
			Field{"id", t.id},
			Field{"path", t.path},
			Field{"cached", t.digest},
			Field{"written", d},
		)
	}
	t.digest = d

	t.logger.Debug("temp object written to file",
		Field{"id", t.id},
		Field{"dst", absDst},
		Field{"mode", wo.mode},
		Field{"size", size},
	)
	return os.Open(absDst)
}

// Digest returns the sha256 digest of the payload. It is computed from
// whichever representation is present without converting, then cached.
func (t *TempObject) Digest() (digest.Digest, error) {
	if t.closed {
		return "", ErrClosed
	}
	if t.digest != "" {
		return t.digest, nil
	}

	if t.rep.Has(HasBytes) {
		t.digest = blob.DigestBytes(t.data)
		return t.digest, nil
	}

	f, err := os.Open(t.path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	d, err := blob.ComputeDigest(f)
	if err != nil {
		return "", err
	}
	t.digest = d
	return d, nil
}

// Close releases the object. A temp file created by the object is removed;
// caller-supplied files are left alone. Close is idempotent and every data
// accessor fails with ErrClosed afterwards.
func (t *TempObject) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	var err error
	if t.tempPath != "" {
		err = fsutil.RemoveIfExists(t.tempPath)
		if err != nil {
			t.logger.Warn("failed to remove temp file",
				Field{"id", t.id},
				Field{"path", t.tempPath},
				Field{"error", err},
			)
		} else {
			t.logger.Debug("temp file removed",
				Field{"id", t.id},
				Field{"path", t.tempPath},
			)
		}
		t.tempPath = ""
	}

	t.data = nil
	t.path = ""
	t.rep = 0
	return err
}

// Closed reports whether Close has been called.
func (t *TempObject) Closed() bool {
	return t.closed
}

// Materialized reports the representations currently cached. It is empty
// after Close.
func (t *TempObject) Materialized() Representation {
	return t.rep
}

// Name returns the name hint, or "" when the source had none.
func (t *TempObject) Name() string {
	return t.name
}

// Ext returns the extension of the name hint without the leading dot.
func (t *TempObject) Ext() string {
	_, ext := fsutil.SplitName(t.name)
	return ext
}

// Basename returns the name hint without its extension.
func (t *TempObject) Basename() string {
	base, _ := fsutil.SplitName(t.name)
	return base
}

// ID returns a random identifier unique to this object.
func (t *TempObject) ID() string {
	return t.id
}

// Config returns the configuration the object was created with.
func (t *TempObject) Config() Config {
	return t.config
}

func (t *TempObject) String() string {
	return fmt.Sprintf("TempObject{id=%s source=%s name=%q rep=%s closed=%t}",
		t.id, t.kind, t.name, t.rep, t.closed)
}
