// Package assets runs one generation pass: a poster per movie and a banner per
// category, written under images/ by positional naming convention, plus an
// optional MJPEG trailer reel built from the results.
package assets

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/netfix-app/trailerkit/internal/infra/fsx"
	"github.com/netfix-app/trailerkit/internal/logger"
	"github.com/netfix-app/trailerkit/internal/metrics"
	"github.com/netfix-app/trailerkit/pkg/canvas"
	"github.com/netfix-app/trailerkit/pkg/catalog"
	"github.com/netfix-app/trailerkit/pkg/generator"
)

// Output layout relative to the output root.
const (
	PostersDir    = "images/posters"
	CategoriesDir = "images/categories"
	ReelName      = "trailer.avi"
)

// PosterName is the file name of the i-th (0-based) movie poster.
func PosterName(i int) string { return fmt.Sprintf("movie_%d.jpg", i+1) }

// BannerName is the file name of the i-th (0-based) category banner.
func BannerName(i int) string { return fmt.Sprintf("category_%d.jpg", i+1) }

// Config controls where and how assets are written.
type Config struct {
	OutputDir   string
	JPEGQuality int
	ReelFPS     int
	ReelHold    int // seconds per frame
}

// GeneratedImage is one file produced by a pass.
type GeneratedImage struct {
	Kind   canvas.Kind
	Index  int    // 1-based position in the input list
	Label  string // movie title or category name
	Name   string
	Path   string
	Width  int
	Height int
}

// Report summarises a pass.
type Report struct {
	Posters  []GeneratedImage
	Banners  []GeneratedImage
	Duration time.Duration
}

// All returns banners followed by posters.
func (r *Report) All() []GeneratedImage {
	out := make([]GeneratedImage, 0, len(r.Posters)+len(r.Banners))
	out = append(out, r.Banners...)
	return append(out, r.Posters...)
}

// Generator is the AssetGenerator: static records in, image files out.
type Generator struct {
	cfg      Config
	catalog  *catalog.Catalog
	renderer *canvas.Renderer
	log      logger.Logger
	metrics  *metrics.Metrics
}

// New wires a generator. A nil logger or metrics is replaced by a no-op one.
func New(cfg Config, cat *catalog.Catalog, r *canvas.Renderer, log logger.Logger, m *metrics.Metrics) *Generator {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Generator{cfg: cfg, catalog: cat, renderer: r, log: log, metrics: m}
}

// PostersPath is the absolute-or-relative posters directory.
func (g *Generator) PostersPath() string { return filepath.Join(g.cfg.OutputDir, PostersDir) }

// CategoriesPath is the banners directory.
func (g *Generator) CategoriesPath() string { return filepath.Join(g.cfg.OutputDir, CategoriesDir) }

// EnsureDirs creates the output directories; existing ones are left alone.
func (g *Generator) EnsureDirs() error {
	return fsx.EnsureDirs(g.PostersPath(), g.CategoriesPath())
}

// Run creates the directories and writes every poster and banner.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	started := time.Now()
	defer func() {
		g.metrics.StepDuration.WithLabelValues("images").Observe(time.Since(started).Seconds())
	}()

	if err := g.EnsureDirs(); err != nil {
		return nil, err
	}

	posters, err := g.GeneratePosters(ctx)
	if err != nil {
		return nil, err
	}
	banners, err := g.GenerateBanners(ctx)
	if err != nil {
		return nil, err
	}

	rep := &Report{Posters: posters, Banners: banners, Duration: time.Since(started)}
	g.log.Info("all images created", map[string]interface{}{
		"posters":  len(posters),
		"banners":  len(banners),
		"font":     g.renderer.Fonts().Source(),
		"duration": rep.Duration.String(),
	})
	return rep, nil
}

// GeneratePosters writes images/posters/movie_<n>.jpg for every movie.
func (g *Generator) GeneratePosters(ctx context.Context) ([]GeneratedImage, error) {
	out := make([]GeneratedImage, 0, len(g.catalog.Movies))
	for i, m := range g.catalog.Movies {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		img, layout := g.renderer.RenderPoster(m)
		gi, err := g.write(layout, img, g.PostersPath(), PosterName(i), i, m.Title)
		if err != nil {
			return out, fmt.Errorf("poster %q: %w", m.Title, err)
		}
		g.log.Info("created poster", map[string]interface{}{"file": gi.Name, "title": m.Title})
		out = append(out, gi)
	}
	return out, nil
}

// GenerateBanners writes images/categories/category_<n>.jpg for every category.
func (g *Generator) GenerateBanners(ctx context.Context) ([]GeneratedImage, error) {
	out := make([]GeneratedImage, 0, len(g.catalog.Categories))
	for i, c := range g.catalog.Categories {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		img, layout := g.renderer.RenderBanner(c.Name)
		gi, err := g.write(layout, img, g.CategoriesPath(), BannerName(i), i, c.Name)
		if err != nil {
			return out, fmt.Errorf("banner %q: %w", c.Name, err)
		}
		g.log.Info("created category banner", map[string]interface{}{
			"file":     gi.Name,
			"category": c.Name,
			"color":    generator.HexString(layout.Background),
		})
		out = append(out, gi)
	}
	return out, nil
}

func (g *Generator) write(layout canvas.Layout, img image.Image, dir, name string, i int, label string) (GeneratedImage, error) {
	path := filepath.Join(dir, name)
	if err := generator.Generate(path, generator.Still(img, g.cfg.JPEGQuality)); err != nil {
		return GeneratedImage{}, err
	}
	g.metrics.AssetsGenerated.WithLabelValues(string(layout.Kind)).Inc()
	g.log.Debug("encoded image", map[string]interface{}{
		"path":   path,
		"shapes": len(layout.Shapes),
		"texts":  len(layout.Texts),
	})
	return GeneratedImage{
		Kind:   layout.Kind,
		Index:  i + 1,
		Label:  label,
		Name:   name,
		Path:   path,
		Width:  layout.Width,
		Height: layout.Height,
	}, nil
}
