// reel.go - Stitches generated artwork into a widescreen MJPEG trailer reel.
package assets

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/netfix-app/trailerkit/pkg/canvas"
	"github.com/netfix-app/trailerkit/pkg/generator"
)

// ReelPath is where BuildReel writes.
func (g *Generator) ReelPath() string { return filepath.Join(g.cfg.OutputDir, ReelName) }

// BuildReel reads the given images back from disk and writes trailer.avi:
// banners first, then posters letterboxed onto a black banner-sized frame.
func (g *Generator) BuildReel(ctx context.Context, images []GeneratedImage) (string, error) {
	started := time.Now()
	defer func() {
		g.metrics.StepDuration.WithLabelValues("reel").Observe(time.Since(started).Seconds())
	}()

	ordered := orderForReel(images)
	if len(ordered) == 0 {
		return "", generator.ErrNoFrames
	}

	size := canvas.Sizes[canvas.KindBanner]
	frames := make([]image.Image, 0, len(ordered))
	for _, gi := range ordered {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		src, err := imaging.Open(gi.Path)
		if err != nil {
			return "", fmt.Errorf("open %s: %w", gi.Path, err)
		}
		frames = append(frames, letterbox(src, size[0], size[1]))
	}

	out := g.ReelPath()
	cfg := generator.Config{
		Frames:  frames,
		Quality: g.cfg.JPEGQuality,
		FPS:     g.cfg.ReelFPS,
		Hold:    g.cfg.ReelHold,
	}
	if err := generator.Generate(out, cfg); err != nil {
		return "", fmt.Errorf("reel: %w", err)
	}
	g.metrics.AssetsGenerated.WithLabelValues("reel").Inc()
	g.log.Info("created trailer reel", map[string]interface{}{
		"file":   out,
		"frames": len(frames),
	})
	return out, nil
}

// ExistingImages lists posters and banners already on disk, so a reel can be
// built without regenerating. Files that don't follow the naming convention
// are ignored.
func (g *Generator) ExistingImages() ([]GeneratedImage, error) {
	posters, err := scanDir(g.PostersPath(), "movie_", canvas.KindPoster)
	if err != nil {
		return nil, err
	}
	banners, err := scanDir(g.CategoriesPath(), "category_", canvas.KindBanner)
	if err != nil {
		return nil, err
	}
	return append(banners, posters...), nil
}

func scanDir(dir, prefix string, kind canvas.Kind) ([]GeneratedImage, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	size := canvas.Sizes[kind]
	var out []GeneratedImage
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".jpg") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".jpg"))
		if err != nil || n < 1 {
			continue
		}
		out = append(out, GeneratedImage{
			Kind:   kind,
			Index:  n,
			Name:   name,
			Path:   filepath.Join(dir, name),
			Width:  size[0],
			Height: size[1],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// orderForReel keeps input order within a kind, banners before posters.
func orderForReel(images []GeneratedImage) []GeneratedImage {
	out := make([]GeneratedImage, 0, len(images))
	for _, gi := range images {
		if gi.Kind == canvas.KindBanner {
			out = append(out, gi)
		}
	}
	for _, gi := range images {
		if gi.Kind == canvas.KindPoster {
			out = append(out, gi)
		}
	}
	return out
}

func letterbox(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	bg := imaging.New(w, h, color.Black)
	fitted := imaging.Fit(src, w, h, imaging.Lanczos)
	return imaging.PasteCenter(bg, fitted)
}
