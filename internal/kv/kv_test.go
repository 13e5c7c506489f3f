package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	stores := map[string]Store{}
	for _, backend := range []string{BackendFile, BackendBolt, BackendSQLite, BackendMemory} {
		path := filepath.Join(dir, backend)
		if backend != BackendFile {
			path = filepath.Join(dir, backend+".db")
		}
		s, err := Open(Options{Backend: backend, Path: path})
		require.NoError(t, err, backend)
		t.Cleanup(func() { _ = s.Close() })
		stores[backend] = s
	}
	return stores
}

func TestBackends_GetPut(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("todo-storage")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put("todo-storage", []byte(`{"a":1}`)))
			got, err := s.Get("todo-storage")
			require.NoError(t, err)
			assert.Equal(t, `{"a":1}`, string(got))

			require.NoError(t, s.Put("todo-storage", []byte(`{"a":2}`)))
			got, err = s.Get("todo-storage")
			require.NoError(t, err)
			assert.Equal(t, `{"a":2}`, string(got))

			_, err = s.Get("other")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.Error(t, s.Put("  ", []byte("x")))
		})
	}
}

func TestBackends_Reopen(t *testing.T) {
	dir := t.TempDir()
	for _, opts := range []Options{
		{Backend: BackendFile, Path: filepath.Join(dir, "files")},
		{Backend: BackendBolt, Path: filepath.Join(dir, "t.db")},
		{Backend: BackendSQLite, Path: filepath.Join(dir, "t.sqlite")},
	} {
		t.Run(opts.Backend, func(t *testing.T) {
			s, err := Open(opts)
			require.NoError(t, err)
			require.NoError(t, s.Put("todo-storage", []byte("persisted")))
			require.NoError(t, s.Close())

			s, err = Open(opts)
			require.NoError(t, err)
			defer func() { _ = s.Close() }()
			got, err := s.Get("todo-storage")
			require.NoError(t, err)
			assert.Equal(t, "persisted", string(got))
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	s := NewMemoryStore()
	in := []byte("abc")
	require.NoError(t, s.Put("k", in))
	in[0] = 'z'

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	got[0] = 'y'

	again, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put("todo-storage", []byte("[]")))
	assert.Equal(t, filepath.Join(dir, "todo-storage.json"), s.Path("todo-storage"))
	b, err := os.ReadFile(filepath.Join(dir, "todo-storage.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	assert.Equal(t, filepath.Join(dir, "a_b.json"), FilePath(dir, "a/b"))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Options{Backend: "redis"})
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, ".", DefaultPath(BackendFile))
	assert.Equal(t, "tada.db", DefaultPath(BackendBolt))
	assert.Equal(t, "tada.sqlite", DefaultPath(BackendSQLite))
}
