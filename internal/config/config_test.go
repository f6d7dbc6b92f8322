package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netfix-app/trailerkit/pkg/catalog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "netfix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "arial.ttf", cfg.Font.Name)
	assert.Equal(t, 95, cfg.Images.JPEGQuality)
	assert.Equal(t, 5, cfg.Images.PosterShapes)
	assert.Equal(t, 10, cfg.Images.BannerShapes)
	assert.Equal(t, time.Second, cfg.Clips.Delay)
	assert.Equal(t, 0, cfg.Clips.Retries)
	assert.Equal(t, catalog.Default(), &cfg.Catalog)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
output_dir: build
clips:
  delay: 0s
  retries: 2
catalog:
  movies:
    - title: Only One
      genre: Drama
      year: 2020
      rating: 3.5
  palette:
    Drama: "#010203"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "build", cfg.OutputDir)
	assert.Equal(t, time.Duration(0), cfg.Clips.Delay, "explicit zero delay is kept")
	assert.Equal(t, 2, cfg.Clips.Retries)
	require.Len(t, cfg.Catalog.Movies, 1)
	assert.Equal(t, catalog.MovieRecord{Title: "Only One", Genre: "Drama", Year: 2020, Rating: 3.5}, cfg.Catalog.Movies[0])
	assert.Len(t, cfg.Catalog.Categories, 10, "missing sections fall back to the stock catalog")

	hex, ok := cfg.Catalog.Palette.Lookup("Drama")
	require.True(t, ok)
	assert.Equal(t, "#010203", hex)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("NETFIX_OUTPUT_DIR", "/tmp/netfix-out")
	t.Setenv("NETFIX_IMAGES_JPEG_QUALITY", "70")

	cfg, err := Load(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/netfix-out", cfg.OutputDir)
	assert.Equal(t, 70, cfg.Images.JPEGQuality)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"quality":  "images:\n  jpeg_quality: 101\n",
		"fallback": "font:\n  fallback: comic\n",
		"retries":  "clips:\n  retries: -1\n",
		"reel":     "reel:\n  fps: 0\n",
		"format":   "log:\n  format: xml\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestWriteSample_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netfix.yaml")
	require.NoError(t, WriteSample(path))
	assert.Error(t, WriteSample(path), "existing file is not replaced")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultMovies(), cfg.Catalog.Movies)
	assert.Len(t, cfg.Catalog.Clips, 10)
	assert.Equal(t, time.Second, cfg.Clips.Delay)
}
