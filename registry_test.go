package tempobj_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigotowork/tempobj"
)

func TestNamespace(t *testing.T) {
	ns, err := tempobj.NewNamespace("video", tempobj.WithBlockSize(65536))
	require.NoError(t, err)
	assert.Equal(t, "video", ns.Name())
	assert.Equal(t, 65536, ns.Config().BlockSize)

	obj, err := ns.New([]byte("frame"))
	require.NoError(t, err)
	defer obj.Close()
	assert.Equal(t, 65536, obj.Config().BlockSize)

	override, err := ns.New([]byte("frame"), tempobj.WithBlockSize(2))
	require.NoError(t, err)
	defer override.Close()
	assert.Equal(t, 2, override.Config().BlockSize)

	// The namespace decides, not the object being copied.
	small, err := tempobj.FromBytes([]byte("frame"), tempobj.WithBlockSize(3))
	require.NoError(t, err)
	defer small.Close()
	cp, err := ns.New(small)
	require.NoError(t, err)
	defer cp.Close()
	assert.Equal(t, 65536, cp.Config().BlockSize)

	_, err = tempobj.NewNamespace("bad", tempobj.WithBlockSize(-1))
	require.ErrorIs(t, err, tempobj.ErrInvalidConfig)
}

func TestRegistry(t *testing.T) {
	tmp := t.TempDir()
	r, err := tempobj.NewRegistry(tempobj.WithTempDir(tmp))
	require.NoError(t, err)
	assert.Equal(t, tmp, r.Defaults().TempDir)

	images, err := r.Define("images", tempobj.Config{BlockSize: 4096})
	require.NoError(t, err)
	assert.Equal(t, 4096, images.Config().BlockSize)
	assert.Equal(t, tmp, images.Config().TempDir, "unset fields come from the registry defaults")

	_, err = r.Define("images", tempobj.Config{})
	require.ErrorIs(t, err, tempobj.ErrNamespaceExists)

	_, err = r.Define("broken", tempobj.Config{TempPrefix: "a/b"})
	require.ErrorIs(t, err, tempobj.ErrInvalidConfig)

	assert.Same(t, images, r.Namespace("images"))

	adhoc := r.Namespace("adhoc")
	assert.Equal(t, r.Defaults(), adhoc.Config())
	assert.Same(t, adhoc, r.Namespace("adhoc"))

	assert.Equal(t, []string{"adhoc", "images"}, r.Names())
}

func TestRegistryConcurrentNamespace(t *testing.T) {
	r, err := tempobj.NewRegistry()
	require.NoError(t, err)

	const workers = 16
	got := make([]*tempobj.Namespace, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = r.Namespace("shared")
		}(i)
	}
	wg.Wait()

	for _, ns := range got {
		assert.Same(t, got[0], ns)
	}
	assert.Equal(t, []string{"shared"}, r.Names())
}
