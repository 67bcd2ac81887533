package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_ReloadsOnExternalWrite(t *testing.T) {
	path := StoragePath(t.TempDir(), "site")

	s, err := NewFileStore(path, "site")
	require.NoError(t, err)
	defer s.Close()
	ch := s.Subscribe()

	fw, err := NewFileWatcher(s, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	require.NoError(t, fw.Start())
	defer fw.Stop()

	writer, err := NewFileStore(path, "site")
	require.NoError(t, err)
	require.NoError(t, writer.Set("themeMode", "light"))

	select {
	case ev := <-ch:
		assert.Equal(t, ChangeEvent{Key: "themeMode", Value: "light", Found: true}, ev)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the external write")
	}

	v, found, err := s.Get("themeMode")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "light", v)
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	s, err := NewFileStore(StoragePath(t.TempDir(), "site"), "site")
	require.NoError(t, err)
	defer s.Close()

	fw, err := NewFileWatcher(s, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Stop())
	require.NoError(t, fw.Start())
	require.NoError(t, fw.Stop())
	require.NoError(t, fw.Stop())
}

func TestFileWatcher_CannotRestart(t *testing.T) {
	s, err := NewFileStore(StoragePath(t.TempDir(), "site"), "site")
	require.NoError(t, err)
	defer s.Close()

	fw, err := NewFileWatcher(s, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	require.NoError(t, fw.Stop())

	assert.ErrorIs(t, fw.Start(), errWatcherStopped)
}
