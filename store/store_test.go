package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelsplace/voxland/store"
	"github.com/voxelsplace/voxland/voxel"
)

func openAll(t *testing.T) map[string]store.Store {
	t.Helper()
	dir := t.TempDir()
	out := map[string]store.Store{}
	for backend, path := range map[string]string{
		store.BackendDir:    filepath.Join(dir, "slots"),
		store.BackendBadger: filepath.Join(dir, "badger"),
		store.BackendSQLite: filepath.Join(dir, "sqlite", "worlds.db"),
	} {
		st, err := store.Open(backend, path)
		require.NoError(t, err, backend)
		t.Cleanup(func() { _ = st.Close() })
		out[backend] = st
	}
	return out
}

func TestStoreRoundTrip(t *testing.T) {
	for backend, st := range openAll(t) {
		t.Run(backend, func(t *testing.T) {
			require.NoError(t, st.Put("b.dat", []byte("second")))
			require.NoError(t, st.Put("a.dat", []byte("first")))

			got, err := st.Get("a.dat")
			require.NoError(t, err)
			assert.Equal(t, []byte("first"), got)

			require.NoError(t, st.Put("a.dat", []byte("overwritten")))
			got, err = st.Get("a.dat")
			require.NoError(t, err)
			assert.Equal(t, []byte("overwritten"), got)

			names, err := st.List()
			require.NoError(t, err)
			assert.Equal(t, []string{"a.dat", "b.dat"}, names)

			require.NoError(t, st.Delete("a.dat"))
			names, err = st.List()
			require.NoError(t, err)
			assert.Equal(t, []string{"b.dat"}, names)
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	for backend, st := range openAll(t) {
		t.Run(backend, func(t *testing.T) {
			_, err := st.Get("missing")
			assert.ErrorIs(t, err, voxel.ErrNotFound)
			assert.ErrorIs(t, st.Delete("missing"), voxel.ErrNotFound)

			names, err := st.List()
			require.NoError(t, err)
			assert.Empty(t, names)
		})
	}
}

func TestStoreInvalidName(t *testing.T) {
	for backend, st := range openAll(t) {
		t.Run(backend, func(t *testing.T) {
			for _, name := range []string{"", ".", "..", "../escape", `a\b`, "dir/file"} {
				assert.Error(t, st.Put(name, []byte("x")), "name %q", name)
				_, err := st.Get(name)
				assert.Error(t, err, "name %q", name)
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := store.Open("s3", t.TempDir())
	assert.Error(t, err)
}

func TestBadgerClosed(t *testing.T) {
	st, err := store.OpenBadger(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.NoError(t, st.Close())

	assert.ErrorIs(t, st.Put("a", []byte("x")), voxel.ErrIO)
	_, err = st.Get("a")
	assert.ErrorIs(t, err, voxel.ErrIO)
}

func TestDirStoreSkipsTempFiles(t *testing.T) {
	st, err := store.OpenDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, st.Put("my_map.dat", []byte("x")))
	assert.FileExists(t, st.Path("my_map.dat"))

	names, err := st.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"my_map.dat"}, names)
}
