// renderer.go - Builds poster and banner layouts and draws them.
// Layers, bottom to top: background -> decorative shapes -> text (shadow first)
// -> watermark. Layout resolution and drawing are split so callers can inspect
// what was placed where.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/netfix-app/trailerkit/internal/logger"
	"github.com/netfix-app/trailerkit/pkg/catalog"
	"github.com/netfix-app/trailerkit/pkg/generator"
)

// Options configures a Renderer.
type Options struct {
	Font         FontConfig
	Palette      catalog.Palette
	PosterShapes int        // decorative rectangles per poster
	BannerShapes int        // decorative shapes per banner
	Rand         *rand.Rand // nil seeds from the clock
	Logger       logger.Logger
}

// DefaultOptions returns the stock template settings.
func DefaultOptions() Options {
	return Options{
		Font:         FontConfig{Name: "arial.ttf", Dirs: DefaultFontDirs, Fallback: FallbackEmbedded},
		Palette:      catalog.DefaultPalette(),
		PosterShapes: 5,
		BannerShapes: 10,
	}
}

// Renderer draws trailer artwork. It is not safe for concurrent use.
type Renderer struct {
	fonts   *FontManager
	palette catalog.Palette
	rng     *rand.Rand
	log     logger.Logger

	posterShapes int
	bannerShapes int
}

// NewRenderer resolves fonts once and returns a ready renderer.
func NewRenderer(opts Options) *Renderer {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Renderer{
		fonts:        NewFontManager(opts.Font, log),
		palette:      opts.Palette,
		rng:          rng,
		log:          log,
		posterShapes: max(opts.PosterShapes, 0),
		bannerShapes: max(opts.BannerShapes, 0),
	}
}

// Fonts exposes the font manager in use.
func (r *Renderer) Fonts() *FontManager { return r.fonts }

// Close releases font faces.
func (r *Renderer) Close() error { return r.fonts.Close() }

// PosterLayout resolves the poster template for m.
func (r *Renderer) PosterLayout(m catalog.MovieRecord) Layout {
	w, h := Sizes[KindPoster][0], Sizes[KindPoster][1]
	return Layout{
		Kind:       KindPoster,
		Width:      w,
		Height:     h,
		Background: RandomColor(r.rng, PosterBackgroundRange),
		Shapes:     posterShapes(r.rng, r.posterShapes, w, h),
		Texts: []TextSpec{
			{Text: m.Title, X: w / 2, Y: h - 200, Size: 48, Color: TextWhite, Shadow: 2},
			{Text: Caption(m), X: w / 2, Y: h - 120, Size: 24, Color: CaptionGrey},
			{Text: Watermark, X: w / 2, Y: 50, Size: 48, Color: BrandRed},
		},
	}
}

// BannerLayout resolves the banner template for a category.
func (r *Renderer) BannerLayout(name string) Layout {
	w, h := Sizes[KindBanner][0], Sizes[KindBanner][1]
	bg := r.BannerBackground(name)
	return Layout{
		Kind:       KindBanner,
		Width:      w,
		Height:     h,
		Background: bg,
		Shapes:     bannerShapes(r.rng, r.bannerShapes, w, h, bg),
		Texts: []TextSpec{
			{Text: name, X: w / 2, Y: h / 2, Size: 120, Color: TextWhite, Shadow: 4},
			{Text: Watermark, X: w - 100, Y: h - 50, Size: 36, Color: BrandRed},
		},
	}
}

// BannerBackground returns the palette colour for name, or a random
// mid-range colour when the category is not listed.
func (r *Renderer) BannerBackground(name string) color.RGBA {
	if hex, ok := r.palette.Lookup(name); ok {
		c, err := generator.ParseHexRGBA(hex)
		if err == nil {
			return c
		}
		r.log.Warn("invalid palette colour, using random", map[string]interface{}{
			"category": name,
			"color":    hex,
		})
	}
	return RandomColor(r.rng, FallbackBannerRange)
}

// Draw paints a resolved layout.
func (r *Renderer) Draw(l Layout) *image.RGBA {
	img := generator.NewSolidImage(l.Width, l.Height, l.Background)
	for _, s := range l.Shapes {
		drawShape(img, s)
	}
	for _, t := range l.Texts {
		drawText(img, r.fonts, t)
	}
	return img
}

// RenderPoster resolves and draws a poster.
func (r *Renderer) RenderPoster(m catalog.MovieRecord) (*image.RGBA, Layout) {
	l := r.PosterLayout(m)
	return r.Draw(l), l
}

// RenderBanner resolves and draws a category banner.
func (r *Renderer) RenderBanner(name string) (*image.RGBA, Layout) {
	l := r.BannerLayout(name)
	return r.Draw(l), l
}

// Caption formats the poster metadata line, e.g. "Sci-Fi • 2025 • 4.8★".
func Caption(m catalog.MovieRecord) string {
	return fmt.Sprintf("%s • %d • %s★", m.Genre, m.Year, FormatRating(m.Rating))
}

// FormatRating prints the shortest decimal form, keeping one decimal for
// whole numbers ("5.0", "4.75").
func FormatRating(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
