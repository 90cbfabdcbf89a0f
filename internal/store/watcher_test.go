package store

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	var fired atomic.Int32
	w, err := WatchFile(path, 20*time.Millisecond, func() {
		fired.Add(1)
	}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"1","name":"Ada","username":"ada","email":"a@b.c"}]`), 0o644))

	require.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	var fired atomic.Int32
	w, err := WatchFile(path, 20*time.Millisecond, func() {
		fired.Add(1)
	}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(0), fired.Load())
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	var fired atomic.Int32
	w, err := WatchFile(path, 50*time.Millisecond, func() {
		fired.Add(1)
	}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	// A burst of writes inside the quiet period coalesces to one report.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load())
}
