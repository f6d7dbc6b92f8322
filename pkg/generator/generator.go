// Package generator encodes rendered artwork to files.
//
// All output follows one pipeline: the caller renders an image.Image (or a
// sequence of them), then it is written as JPEG, PNG, or containerized as an
// MJPEG AVI reel. Files are replaced atomically.
package generator

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/netfix-app/trailerkit/internal/infra/fsx"
)

// DefaultJPEGQuality matches what the rest of the kit encodes at.
const DefaultJPEGQuality = 95

// ErrNoFrames is returned when there is nothing to encode.
var ErrNoFrames = errors.New("no frames to encode")

// Config holds parameters for media generation.
type Config struct {
	Frames  []image.Image // one for stills; the reel sequence for .avi
	Quality int           // JPEG quality 1–100 (default: 95)
	FPS     int           // AVI only (default: 5)
	Hold    int           // seconds each frame stays on screen, AVI only (default: 2)
}

// Still is shorthand for a single-frame Config.
func Still(img image.Image, quality int) Config {
	return Config{Frames: []image.Image{img}, Quality: quality}
}

// Generate creates an output file. The format is inferred from the extension:
//   - ".jpg", ".jpeg" → JPEG image (first frame)
//   - ".png"          → PNG image (first frame)
//   - ".avi"          → MJPEG AVI of all frames
func Generate(output string, cfg Config) error {
	ext := strings.ToLower(filepath.Ext(output))
	if err := checkFormat(ext); err != nil {
		return err
	}
	if len(cfg.Frames) == 0 {
		return ErrNoFrames
	}
	return fsx.WriteWith(output, func(w io.Writer) error {
		return GenerateToWriter(w, ext, cfg)
	})
}

// GenerateToWriter writes media to an io.Writer in the format named by ext.
func GenerateToWriter(w io.Writer, ext string, cfg Config) error {
	if len(cfg.Frames) == 0 {
		return ErrNoFrames
	}

	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		if err := imaging.Encode(w, cfg.Frames[0], imaging.JPEG, imaging.JPEGQuality(quality(cfg))); err != nil {
			return fmt.Errorf("encode JPEG: %w", err)
		}
		return nil
	case ".png":
		if err := imaging.Encode(w, cfg.Frames[0], imaging.PNG); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
		return nil
	case ".avi":
		return writeAVITo(w, cfg.Frames, aviOptions{
			fps:     positiveOr(cfg.FPS, 5),
			hold:    positiveOr(cfg.Hold, 2),
			quality: quality(cfg),
		})
	default:
		return checkFormat(ext)
	}
}

func checkFormat(ext string) error {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".avi":
		return nil
	}
	return fmt.Errorf("unsupported format %q: use .jpg, .png or .avi", ext)
}

func quality(cfg Config) int {
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		return DefaultJPEGQuality
	}
	return cfg.Quality
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
