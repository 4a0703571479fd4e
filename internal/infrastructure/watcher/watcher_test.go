package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(_ context.Context, changed []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, changed)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func TestNew_NoPaths(t *testing.T) {
	_, err := New(nil, time.Millisecond)
	assert.Error(t, err)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope", "card.js")}, time.Millisecond)
	assert.Error(t, err)
}

func TestWatcher_DebouncesBurstIntoOneCall(t *testing.T) {
	dir := t.TempDir()
	artifact := filepath.Join(dir, "card.js")
	other := filepath.Join(dir, "unrelated.txt")
	require.NoError(t, os.WriteFile(artifact, []byte("v1"), 0o600))

	w, err := New([]string{artifact}, 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []string{artifact}, w.Files())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	rec := &recorder{}
	go func() { done <- w.Run(ctx, rec.record) }()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(artifact, []byte{byte('a' + i)}, 0o600))
	}

	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{artifact}, rec.snapshot()[0])

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	time.Sleep(300 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1, "unwatched files are ignored")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_Relevant(t *testing.T) {
	w := &Watcher{files: map[string]struct{}{"/p/card.js": {}}}

	assert.True(t, w.relevant(fsnotify.Event{Name: "/p/card.js", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/p/./card.js", Op: fsnotify.Create}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/p/card.js", Op: fsnotify.Rename}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/p/card.js", Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/p/other.js", Op: fsnotify.Write}))
}
