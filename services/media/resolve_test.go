package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/streamify/streamify/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMediaRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "music"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "music", "song.mp3"), []byte("audio bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "clip.mp4"), []byte("video bytes"), 0o644))

	// A file just outside the root that traversal must never reach.
	outside := filepath.Join(filepath.Dir(root), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))
	t.Cleanup(func() { os.Remove(outside) })

	return root
}

func TestResolve(t *testing.T) {
	root := setupMediaRoot(t)

	t.Run("resolves a nested file", func(t *testing.T) {
		full, err := Resolve(root, "music/song.mp3")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "music", "song.mp3"), full)
	})

	t.Run("accepts a leading slash", func(t *testing.T) {
		full, err := Resolve(root, "/clip.mp4")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "clip.mp4"), full)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Resolve(root, "music/missing.mp3")
		testutils.AssertErrorType(t, ErrNotFound, err)
	})

	t.Run("directory is not a file", func(t *testing.T) {
		_, err := Resolve(root, "music")
		testutils.AssertErrorType(t, ErrNotFound, err)
	})

	t.Run("traversal is indistinguishable from missing", func(t *testing.T) {
		for _, requested := range []string{
			"../secret.txt",
			"music/../../secret.txt",
			"..",
			"../../../../etc/passwd",
		} {
			_, err := Resolve(root, requested)
			testutils.AssertErrorType(t, ErrNotFound, err)
		}
	})

	t.Run("dot segments inside the root are fine", func(t *testing.T) {
		full, err := Resolve(root, "music/../clip.mp4")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "clip.mp4"), full)
	})
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType("thumb.png"))
	assert.Contains(t, ContentType("meta.json"), "application/json")
	assert.Equal(t, "application/octet-stream", ContentType("file.unknownext"))
	assert.Equal(t, "application/octet-stream", ContentType("noextension"))
}
