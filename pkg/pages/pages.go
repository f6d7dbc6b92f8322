// Package pages renders the static trailer pages that showcase the generated
// artwork and the downloaded clips.
package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/netfix-app/trailerkit/internal/infra/fsx"
	"github.com/netfix-app/trailerkit/pkg/assets"
	"github.com/netfix-app/trailerkit/pkg/canvas"
	"github.com/netfix-app/trailerkit/pkg/catalog"
	"github.com/netfix-app/trailerkit/pkg/clips"
)

// Output file names, relative to the output root.
const (
	ImagesPageName = "netfix_trailer_with_images.html"
	ClipsPageName  = "netfix_trailer.html"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

type Hero struct {
	Name  string
	Image string
}

type CategoryCard struct {
	Name  string
	Image string
}

type MovieCard struct {
	Title string
	Meta  string
	Image string
}

type FeatureCard struct {
	Icon        string
	Title       string
	Description string
}

// ImagesPageData feeds the artwork page.
type ImagesPageData struct {
	Title      string
	Tagline    string
	Hero       *Hero
	Intro      []FeatureCard
	Categories []CategoryCard
	Movies     []MovieCard
	Features   []FeatureCard
	CTA        string
	Slogan     string
	Year       int
}

// HeroCategory is the banner behind the page header when the catalog has it.
const HeroCategory = "Sci-Fi"

var introCards = []FeatureCard{
	{"👤", "Personalized Profiles", "Create multiple profiles for everyone in your household, each with their own preferences and recommendations."},
	{"🎬", "Extensive Library", "Access thousands of movies and TV shows across various genres and languages."},
	{"📱", "Watch Anywhere", "Stream on your phone, tablet, or TV with our seamless cross-device experience."},
}

var smartFeatures = []FeatureCard{
	{"🔍", "Smart Search", "Find exactly what you're looking for with our intelligent search functionality."},
	{"💾", "Download & Watch", "Download your favorite content and watch it offline, anytime, anywhere."},
	{"🤖", "AI Recommendations", "Our AI learns your preferences and suggests content you'll love."},
	{"🔄", "Seamless Streaming", "Enjoy uninterrupted viewing with adaptive streaming quality."},
}

type ClipSection struct {
	Slug         string
	Title        string
	Videos       []string
	Placeholders []string
}

// ClipsPageData feeds the clips page.
type ClipsPageData struct {
	Title    string
	Sections []ClipSection
}

// MovieMeta is the grid subtitle, e.g. "2025 • Sci-Fi • 4.8 ⭐".
func MovieMeta(m catalog.MovieRecord) string {
	return fmt.Sprintf("%d • %s • %s ⭐", m.Year, m.Genre, canvas.FormatRating(m.Rating))
}

// ImagesPage derives page data from the catalog. Image paths follow the
// positional naming the asset generator writes with.
func ImagesPage(cat *catalog.Catalog) ImagesPageData {
	data := ImagesPageData{
		Title:    "Netfix App Trailer with Images",
		Tagline:  "Your Ultimate Streaming Experience",
		Intro:    introCards,
		Features: smartFeatures,
		CTA:      "Download Netfix Now",
		Slogan:   "Stream Smarter. Download Now.",
		Year:     2025,
	}
	for i, c := range cat.Categories {
		data.Categories = append(data.Categories, CategoryCard{
			Name:  c.Name,
			Image: path.Join(assets.CategoriesDir, assets.BannerName(i)),
		})
	}
	for i, m := range cat.Movies {
		data.Movies = append(data.Movies, MovieCard{
			Title: m.Title,
			Meta:  MovieMeta(m),
			Image: path.Join(assets.PostersDir, assets.PosterName(i)),
		})
	}
	data.Hero = pickHero(data.Categories)
	return data
}

func pickHero(cards []CategoryCard) *Hero {
	if len(cards) == 0 {
		return nil
	}
	hero := cards[0]
	for _, c := range cards {
		if strings.EqualFold(c.Name, HeroCategory) {
			hero = c
			break
		}
	}
	return &Hero{Name: hero.Name, Image: hero.Image}
}

// ClipsPage scans clips/<category> under outDir. A category with no .mp4
// files is listed with its placeholders.
func ClipsPage(outDir string, categories []string) (ClipsPageData, error) {
	title := cases.Title(language.English)
	data := ClipsPageData{Title: "Netfix - Trailer Clips"}
	for _, c := range categories {
		sec := ClipSection{Slug: c, Title: title.String(c)}
		entries, err := os.ReadDir(filepath.Join(outDir, clips.Dir, c))
		if err != nil && !os.IsNotExist(err) {
			return data, fmt.Errorf("scan clips %s: %w", c, err)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || strings.HasPrefix(name, ".") {
				continue
			}
			rel := path.Join(clips.Dir, c, name)
			switch strings.ToLower(filepath.Ext(name)) {
			case ".mp4", ".webm":
				sec.Videos = append(sec.Videos, rel)
			case ".txt":
				sec.Placeholders = append(sec.Placeholders, rel)
			}
		}
		sort.Strings(sec.Videos)
		sort.Strings(sec.Placeholders)
		data.Sections = append(data.Sections, sec)
	}
	return data, nil
}

// RenderImagesPage writes the artwork page to w.
func RenderImagesPage(w io.Writer, data ImagesPageData) error {
	return tmpl.ExecuteTemplate(w, "images.html.tmpl", data)
}

// RenderClipsPage writes the clips page to w.
func RenderClipsPage(w io.Writer, data ClipsPageData) error {
	return tmpl.ExecuteTemplate(w, "clips.html.tmpl", data)
}

// Write renders both pages into outDir and returns their paths.
func Write(outDir string, cat *catalog.Catalog) ([]string, error) {
	clipsData, err := ClipsPage(outDir, cat.ClipCategories())
	if err != nil {
		return nil, err
	}
	imagesData := ImagesPage(cat)

	imagesPath := filepath.Join(outDir, ImagesPageName)
	if err := fsx.WriteWith(imagesPath, func(w io.Writer) error {
		return RenderImagesPage(w, imagesData)
	}); err != nil {
		return nil, fmt.Errorf("write %s: %w", ImagesPageName, err)
	}

	clipsPath := filepath.Join(outDir, ClipsPageName)
	if err := fsx.WriteWith(clipsPath, func(w io.Writer) error {
		return RenderClipsPage(w, clipsData)
	}); err != nil {
		return nil, fmt.Errorf("write %s: %w", ClipsPageName, err)
	}
	return []string{imagesPath, clipsPath}, nil
}
