package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frag.glsl")
	require.NoError(t, os.WriteFile(path, []byte("void main() {}"), 0o644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()

	_, ok := w.Changed()
	assert.False(t, ok, "no change queued before any write")

	require.NoError(t, os.WriteFile(path, []byte("void main() { /* edit */ }"), 0o644))

	deadline := time.Now().Add(5 * time.Second)
	for {
		if p, ok := w.Changed(); ok {
			assert.Equal(t, path, p)
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("write never reported")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatcherMissingPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.glsl"))
	assert.Error(t, err)
}
