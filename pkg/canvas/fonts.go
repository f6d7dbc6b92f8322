// fonts.go - Font resolution with a named system font and a built-in fallback.
// Looks the named TTF up as a path and then in each search directory. When it
// cannot be read or parsed the embedded Go Regular font is used instead, or the
// fixed 7x13 bitmap face when the fallback is set to "bitmap".
package canvas

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/netfix-app/trailerkit/internal/logger"
)

// Fallback modes for FontConfig.Fallback.
const (
	FallbackEmbedded = "embedded"
	FallbackBitmap   = "bitmap"
)

// FontConfig specifies the font source.
type FontConfig struct {
	Name     string   // file name or path, e.g. "arial.ttf"
	Dirs     []string // extra directories searched for Name
	Fallback string   // "embedded" (default) or "bitmap"
}

// DefaultFontDirs lists the usual system font locations.
var DefaultFontDirs = []string{
	"/usr/share/fonts/truetype/msttcorefonts",
	"/usr/share/fonts/truetype",
	"/usr/share/fonts",
	"/Library/Fonts",
	"/System/Library/Fonts/Supplemental",
	`C:\Windows\Fonts`,
}

// FontManager hands out faces at arbitrary sizes. It never fails: a missing
// font degrades to the fallback and a face that cannot be built degrades to
// the bitmap face.
type FontManager struct {
	parsed *opentype.Font // nil means bitmap-only
	source string

	mu    sync.Mutex
	faces map[float64]font.Face
	log   logger.Logger
}

// NewFontManager resolves cfg once.
func NewFontManager(cfg FontConfig, log logger.Logger) *FontManager {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	fm := &FontManager{faces: make(map[float64]font.Face), log: log}

	if cfg.Name != "" {
		path, parsed, err := loadNamedFont(cfg.Name, cfg.Dirs)
		if err == nil {
			fm.parsed = parsed
			fm.source = path
			return fm
		}
		log.Warn("font unavailable, using fallback", map[string]interface{}{
			"font":     cfg.Name,
			"fallback": fallbackName(cfg.Fallback),
			"reason":   err.Error(),
		})
	}

	if cfg.Fallback == FallbackBitmap {
		fm.source = "basicfont.Face7x13"
		return fm
	}

	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		fm.source = "basicfont.Face7x13"
		return fm
	}
	fm.parsed = parsed
	fm.source = "goregular"
	return fm
}

// Source reports which font ended up in use (a path, "goregular" or the bitmap face).
func (fm *FontManager) Source() string { return fm.source }

// Face returns a face at size points (72 DPI, so points equal pixels).
func (fm *FontManager) Face(size float64) font.Face {
	if fm.parsed == nil {
		return basicfont.Face7x13
	}

	fm.mu.Lock()
	defer fm.mu.Unlock()

	if f, ok := fm.faces[size]; ok {
		return f
	}
	face, err := opentype.NewFace(fm.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		fm.log.Warn("font face creation failed, using bitmap face", map[string]interface{}{
			"size":  size,
			"error": err.Error(),
		})
		return basicfont.Face7x13
	}
	fm.faces[size] = face
	return face
}

// Close releases cached faces.
func (fm *FontManager) Close() error {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	for size, f := range fm.faces {
		_ = f.Close()
		delete(fm.faces, size)
	}
	return nil
}

func loadNamedFont(name string, dirs []string) (string, *opentype.Font, error) {
	candidates := []string{name}
	if !filepath.IsAbs(name) {
		for _, d := range dirs {
			candidates = append(candidates, filepath.Join(d, name))
		}
	}

	var lastErr error
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			lastErr = err
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			lastErr = fmt.Errorf("parse %s: %w", p, err)
			continue
		}
		return p, parsed, nil
	}
	return "", nil, fmt.Errorf("font %q not found in %d location(s): %w", name, len(candidates), lastErr)
}

func fallbackName(mode string) string {
	if mode == FallbackBitmap {
		return FallbackBitmap
	}
	return FallbackEmbedded
}
