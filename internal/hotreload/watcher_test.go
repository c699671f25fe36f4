package hotreload

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, paths ...string) *Watcher {
	t.Helper()
	w, err := New(paths, 20*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		w.Close()
	})
	return w
}

func waitChange(t *testing.T, w *Watcher) []string {
	t.Helper()
	select {
	case changed := <-w.Changes():
		return changed
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
		return nil
	}
}

func TestWriteIsReported(t *testing.T) {
	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	cfg := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("a"), 0o644))

	w := startWatcher(t, cfg)

	// several writes inside the debounce window collapse into one notification
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(cfg, []byte("b"), 0o644))
	}
	assert.Equal(t, []string{cfg}, waitChange(t, w))
}

func TestAtomicSaveIsReported(t *testing.T) {
	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	vert := filepath.Join(dir, "tri.vert")
	require.NoError(t, os.WriteFile(vert, []byte("old"), 0o644))

	w := startWatcher(t, vert)

	tmp := filepath.Join(dir, ".tri.vert.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0o644))
	require.NoError(t, os.Rename(tmp, vert))

	assert.Contains(t, waitChange(t, w), vert)
}

func TestUnwatchedFilesAreIgnored(t *testing.T) {
	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	watched := filepath.Join(dir, "watched.frag")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(watched, []byte("x"), 0o644))

	w := startWatcher(t, watched)

	require.NoError(t, os.WriteFile(other, []byte("y"), 0o644))
	select {
	case changed := <-w.Changes():
		t.Fatalf("unexpected change %v", changed)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(watched, []byte("z"), 0o644))
	assert.Equal(t, []string{watched}, waitChange(t, w))
}

func TestNewFailsOnMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope", "viewer.toml")}, 0, nil)
	assert.Error(t, err)
}
