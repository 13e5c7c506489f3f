package kv

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	changed := make(chan struct{}, 16)
	w, err := Watch(s.Path("todo-storage"), nil, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	require.NoError(t, s.Put("other", []byte("ignored")))
	require.NoError(t, s.Put("todo-storage", []byte("seen")))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification for the watched file")
	}
}

func TestWatchCloseStopsGoroutine(t *testing.T) {
	w, err := Watch(filepath.Join(t.TempDir(), "todo-storage.json"), nil, func() {})
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestWatchRequiresCallback(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "x.json"), nil, nil)
	require.Error(t, err)
}
