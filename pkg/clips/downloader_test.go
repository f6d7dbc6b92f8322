package clips

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netfix-app/trailerkit/internal/logger"
	"github.com/netfix-app/trailerkit/internal/metrics"
	"github.com/netfix-app/trailerkit/pkg/catalog"
)

func newClipServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fake mp4 bytes"))
	})
	mux.HandleFunc("/missing/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestDownloader(t *testing.T, out string) (*Downloader, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	return NewDownloader(Options{
		OutputDir: out,
		Client:    &http.Client{Timeout: 5 * time.Second},
		Logger:    logger.NewTestLogger(t),
		Metrics:   m,
	}), m
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func TestRun_FailureDoesNotAbortOthers(t *testing.T) {
	srv := newClipServer(t)
	out := t.TempDir()
	d, m := newTestDownloader(t, out)

	sources := []catalog.ClipSource{
		{URL: srv.URL + "/missing/a.mp4", Category: "action", Name: "a.mp4"},
		{URL: "http://127.0.0.1:1/refused.mp4", Category: "action", Name: "b.mp4"},
		{URL: srv.URL + "/ok/c.mp4", Category: "comedy", Name: "c.mp4"},
	}
	rep, err := d.Run(context.Background(), sources, []string{"action", "comedy"})
	require.NoError(t, err)

	require.Len(t, rep.Results, 3)
	assert.False(t, rep.Results[0].OK())
	var se *StatusError
	assert.ErrorAs(t, rep.Results[0].Err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.False(t, rep.Results[1].OK())
	assert.True(t, rep.Results[2].OK())
	assert.EqualValues(t, len("fake mp4 bytes"), rep.Results[2].Bytes)
	assert.Equal(t, 1, rep.Downloaded())
	assert.Equal(t, 2, rep.Failed())

	data, err := os.ReadFile(filepath.Join(out, "clips", "comedy", "c.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "fake mp4 bytes", string(data))
	assert.Equal(t, []string{"c.mp4"}, dirNames(t, filepath.Join(out, "clips", "comedy")))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClipDownloads.WithLabelValues(metrics.ResultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ClipDownloads.WithLabelValues(metrics.ResultFailed)))
}

func TestRun_AllFailedCategoryGetsTwoPlaceholders(t *testing.T) {
	srv := newClipServer(t)
	out := t.TempDir()
	d, m := newTestDownloader(t, out)

	sources := []catalog.ClipSource{
		{URL: srv.URL + "/missing/1.mp4", Category: "drama", Name: "sunset.mp4"},
		{URL: srv.URL + "/missing/2.mp4", Category: "drama", Name: "rain.mp4"},
	}
	rep, err := d.Run(context.Background(), sources, []string{"drama"})
	require.NoError(t, err)

	dir := filepath.Join(out, "clips", "drama")
	assert.Equal(t, []string{"drama_sample1.txt", "drama_sample2.txt"}, dirNames(t, dir))
	assert.Len(t, rep.Placeholders, 2)

	first, err := os.ReadFile(filepath.Join(dir, "drama_sample1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "This is a placeholder for a drama video clip", string(first))
	second, err := os.ReadFile(filepath.Join(dir, "drama_sample2.txt"))
	require.NoError(t, err)
	assert.Equal(t, "This is another placeholder for a drama video clip", string(second))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PlaceholdersWritten.WithLabelValues("drama")))
}

func TestRun_UnsafeCategorySkipsOnlyItsOwnFolder(t *testing.T) {
	srv := newClipServer(t)
	out := t.TempDir()
	d, _ := newTestDownloader(t, out)

	cat := &catalog.Catalog{Clips: []catalog.ClipSource{
		{URL: srv.URL + "/ok/a.mp4", Category: "action", Name: "a.mp4"},
		{URL: srv.URL + "/ok/b.mp4", Category: "", Name: "b.mp4"},
		{URL: srv.URL + "/ok/c.mp4", Category: "..", Name: "c.mp4"},
	}}
	rep, err := d.Run(context.Background(), cat.Clips, cat.ClipCategories())
	require.NoError(t, err)

	require.Len(t, rep.Results, 3)
	assert.True(t, rep.Results[0].OK())
	assert.ErrorIs(t, rep.Results[1].Err, errBadSegment)
	assert.ErrorIs(t, rep.Results[2].Err, errBadSegment)
	assert.Empty(t, rep.Placeholders)

	data, err := os.ReadFile(filepath.Join(out, "clips", "action", "a.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "fake mp4 bytes", string(data))
	assert.Equal(t, []string{"action"}, dirNames(t, filepath.Join(out, "clips")))
}

func TestEnsurePlaceholders_SkipsUnsafeCategories(t *testing.T) {
	out := t.TempDir()
	d, _ := newTestDownloader(t, out)

	written, err := d.EnsurePlaceholders([]string{"", "../up", "drama"})
	require.NoError(t, err)
	assert.Len(t, written, 2)
	assert.Equal(t, []string{"drama"}, dirNames(t, filepath.Join(out, "clips")))
	_, err = os.Stat(filepath.Join(out, "up"))
	assert.True(t, os.IsNotExist(err))
}

func TestEnsurePlaceholders_Idempotent(t *testing.T) {
	out := t.TempDir()
	d, _ := newTestDownloader(t, out)

	written, err := d.EnsurePlaceholders([]string{"scifi"})
	require.NoError(t, err)
	assert.Len(t, written, 2)

	written, err = d.EnsurePlaceholders([]string{"scifi"})
	require.NoError(t, err)
	assert.Empty(t, written, "a folder holding placeholders is not empty")
	assert.Len(t, dirNames(t, filepath.Join(out, "clips", "scifi")), 2)
}

func TestDownload_RejectsUnsafeNames(t *testing.T) {
	srv := newClipServer(t)
	d, _ := newTestDownloader(t, t.TempDir())

	results, err := d.Download(context.Background(), []catalog.ClipSource{
		{URL: srv.URL + "/ok/x.mp4", Category: "action", Name: "../escape.mp4"},
		{URL: srv.URL + "/ok/x.mp4", Category: "..", Name: "x.mp4"},
	})
	require.NoError(t, err)
	for _, r := range results {
		assert.Error(t, r.Err)
	}
}

func TestDownload_HonoursDelayAndCancellation(t *testing.T) {
	srv := newClipServer(t)
	d := NewDownloader(Options{OutputDir: t.TempDir(), Delay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	results, err := d.Download(ctx, []catalog.ClipSource{
		{URL: srv.URL + "/ok/1.mp4", Category: "action", Name: "1.mp4"},
		{URL: srv.URL + "/ok/2.mp4", Category: "action", Name: "2.mp4"},
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.Len(t, results, 1, "second item waits for the delay")
	assert.True(t, results[0].OK())
}
