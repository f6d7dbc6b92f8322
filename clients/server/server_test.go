package server

import (
	"encoding/json"
	"image"
	"image/png"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netfix-app/trailerkit/internal/logger"
	"github.com/netfix-app/trailerkit/pkg/canvas"
	"github.com/netfix-app/trailerkit/pkg/catalog"
)

func newTestServer(t *testing.T, dir string) *httptest.Server {
	t.Helper()
	opts := canvas.DefaultOptions()
	opts.Font = canvas.FontConfig{Name: "missing.ttf", Fallback: canvas.FallbackBitmap}
	opts.Rand = rand.New(rand.NewPCG(9, 9))
	r := canvas.NewRenderer(opts)
	t.Cleanup(func() { _ = r.Close() })

	ts := httptest.NewServer(NewHandler(Options{
		OutputDir: dir,
		Catalog:   catalog.Default(),
		Renderer:  r,
		Logger:    logger.NewTestLogger(t),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func getPNG(t *testing.T, url string) image.Image {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	return img
}

func TestPosterAndBannerEndpoints(t *testing.T) {
	ts := newTestServer(t, t.TempDir())

	assert.Equal(t, image.Rect(0, 0, 600, 900), getPNG(t, ts.URL+"/api/poster?index=3").Bounds())
	assert.Equal(t, image.Rect(0, 0, 600, 900), getPNG(t, ts.URL+"/api/poster?title=Test&genre=Drama&year=2020&rating=4.5").Bounds())
	assert.Equal(t, image.Rect(0, 0, 1280, 720), getPNG(t, ts.URL+"/api/banner?name=Western").Bounds())
}

func TestPosterEndpoint_BadRequests(t *testing.T) {
	ts := newTestServer(t, t.TempDir())
	for _, q := range []string{"", "?index=0", "?index=13", "?title=X&year=soon", "?title=X&rating=high"} {
		resp, err := http.Get(ts.URL + "/api/poster" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}

	resp, err := http.Get(ts.URL + "/api/banner")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogAndStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "netfix_trailer.html"), []byte("<html>clips</html>"), 0o644))
	ts := newTestServer(t, dir)

	resp, err := http.Get(ts.URL + "/api/catalog")
	require.NoError(t, err)
	var got catalog.Catalog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Len(t, got.Movies, 12)

	resp, err = http.Get(ts.URL + "/netfix_trailer.html")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
