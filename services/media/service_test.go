package media

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, root string) *echo.Echo {
	cfg := testutils.GetTestConfig()
	cfg.Media.Root = root

	svc := NewService(cfg, nil)

	e := echo.New()
	e.GET("/media/*", svc.ServeFile)
	return e
}

func TestService_ServeFile(t *testing.T) {
	root := t.TempDir()
	payload := bytes.Repeat([]byte("0123456789"), 100)
	require.NoError(t, os.WriteFile(filepath.Join(root, "track.bin"), payload, 0o644))

	e := newTestServer(t, root)

	t.Run("full response without a range header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/track.bin", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, payload, rec.Body.Bytes())
		assert.Equal(t, "bytes", rec.Header().Get("Accept-Ranges"))
	})

	t.Run("partial response for a byte range", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/track.bin", nil)
		req.Header.Set("Range", "bytes=0-99")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusPartialContent, rec.Code)
		assert.Equal(t, payload[:100], rec.Body.Bytes())
		assert.Equal(t, "bytes 0-99/1000", rec.Header().Get("Content-Range"))
		assert.Equal(t, "100", rec.Header().Get("Content-Length"))
	})

	t.Run("open ended range reaches the end", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/track.bin", nil)
		req.Header.Set("Range", "bytes=900-")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusPartialContent, rec.Code)
		assert.Equal(t, payload[900:], rec.Body.Bytes())
		assert.Equal(t, "bytes 900-999/1000", rec.Header().Get("Content-Range"))
	})

	t.Run("unsatisfiable range", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/track.bin", nil)
		req.Header.Set("Range", "bytes=5000-6000")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, rec.Code)
	})

	t.Run("missing file is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/missing.bin", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("traversal is a 404, not a 403", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(root), "leak.txt")
		require.NoError(t, os.WriteFile(outside, []byte("leak"), 0o644))
		t.Cleanup(func() { os.Remove(outside) })

		req := httptest.NewRequest(http.MethodGet, "/media/../leak.txt", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
