// Package catalog holds the static input data the trailer kit draws from:
// movie records, category names, the banner palette and clip sources.
package catalog

import (
	"strings"
)

// MovieRecord is one poster's worth of metadata.
type MovieRecord struct {
	Title  string  `mapstructure:"title" yaml:"title"`
	Genre  string  `mapstructure:"genre" yaml:"genre"`
	Year   int     `mapstructure:"year" yaml:"year"`
	Rating float64 `mapstructure:"rating" yaml:"rating"`
}

// CategoryRecord names one category banner.
type CategoryRecord struct {
	Name string `mapstructure:"name" yaml:"name"`
}

// ClipSource is a single downloadable clip and where it lands on disk.
type ClipSource struct {
	URL      string `mapstructure:"url" yaml:"url"`
	Category string `mapstructure:"category" yaml:"category"` // directory under clips/
	Name     string `mapstructure:"name" yaml:"name"`         // file name, e.g. "nature.mp4"
}

// Palette maps category names to "#rrggbb" banner colours.
type Palette map[string]string

// Lookup returns the colour registered for name. An exact key wins; failing
// that the match ignores case and surrounding space, since viper lower-cases
// map keys read from netfix.yaml ("sci-fi" must still colour "Sci-Fi").
// Names with no entry report false and the banner falls back to a random
// colour.
func (p Palette) Lookup(name string) (string, bool) {
	if hex, ok := p[name]; ok {
		return hex, true
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for k, v := range p {
		if strings.ToLower(k) == want {
			return v, true
		}
	}
	return "", false
}

// Catalog is the full dataset for one generation pass.
type Catalog struct {
	Movies     []MovieRecord    `mapstructure:"movies" yaml:"movies"`
	Categories []CategoryRecord `mapstructure:"categories" yaml:"categories"`
	Palette    Palette          `mapstructure:"palette" yaml:"palette"`
	Clips      []ClipSource     `mapstructure:"clips" yaml:"clips"`
}

// ClipCategories returns the distinct clip categories in first-seen order.
func (c *Catalog) ClipCategories() []string {
	seen := make(map[string]struct{}, len(c.Clips))
	var out []string
	for _, s := range c.Clips {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		out = append(out, s.Category)
	}
	return out
}

// Categories builds records from plain names.
func Categories(names ...string) []CategoryRecord {
	out := make([]CategoryRecord, len(names))
	for i, n := range names {
		out[i] = CategoryRecord{Name: n}
	}
	return out
}
