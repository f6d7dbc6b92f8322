// Package server provides the preview server: it serves the generated output
// tree and renders posters and banners on demand.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/netfix-app/trailerkit/internal/logger"
	"github.com/netfix-app/trailerkit/pkg/canvas"
	"github.com/netfix-app/trailerkit/pkg/catalog"
	"github.com/netfix-app/trailerkit/pkg/generator"
)

// Options configures the preview server.
type Options struct {
	Addr        string
	OutputDir   string
	Catalog     *catalog.Catalog
	Renderer    *canvas.Renderer
	Logger      logger.Logger
	OpenBrowser bool
}

type srv struct {
	mu       sync.Mutex // guards renderer
	renderer *canvas.Renderer
	catalog  *catalog.Catalog
	log      logger.Logger
}

// NewHandler builds the preview routes.
func NewHandler(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	s := &srv{renderer: opts.Renderer, catalog: opts.Catalog, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/poster", s.handlePoster)
	mux.HandleFunc("GET /api/banner", s.handleBanner)
	mux.Handle("/", http.FileServer(http.Dir(opts.OutputDir)))
	return mux
}

// RunServe blocks serving the preview until the listener fails.
func RunServe(opts Options) error {
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}
	url := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		url = "http://" + addr
	}
	if opts.Logger != nil {
		opts.Logger.Info("preview server listening", map[string]interface{}{"url": url, "dir": opts.OutputDir})
	}
	if opts.OpenBrowser {
		go openBrowser(url)
	}
	return http.ListenAndServe(addr, NewHandler(opts))
}

func (s *srv) handleCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.catalog); err != nil {
		s.log.WithError(err).Warn("encode catalog", nil)
	}
}

// handlePoster renders ?index=N from the catalog, or an ad-hoc record from
// ?title=&genre=&year=&rating=.
func (s *srv) handlePoster(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var m catalog.MovieRecord
	if idx := q.Get("index"); idx != "" {
		i, err := strconv.Atoi(idx)
		if err != nil || i < 1 || i > len(s.catalog.Movies) {
			http.Error(w, fmt.Sprintf("index must be within 1..%d", len(s.catalog.Movies)), http.StatusBadRequest)
			return
		}
		m = s.catalog.Movies[i-1]
	} else {
		m.Title = q.Get("title")
		m.Genre = q.Get("genre")
		if v := q.Get("year"); v != "" {
			year, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "year: "+err.Error(), http.StatusBadRequest)
				return
			}
			m.Year = year
		}
		if v := q.Get("rating"); v != "" {
			rating, err := strconv.ParseFloat(v, 64)
			if err != nil {
				http.Error(w, "rating: "+err.Error(), http.StatusBadRequest)
				return
			}
			m.Rating = rating
		}
		if m.Title == "" {
			http.Error(w, "title or index is required", http.StatusBadRequest)
			return
		}
	}

	s.mu.Lock()
	img, _ := s.renderer.RenderPoster(m)
	s.mu.Unlock()
	s.writePNG(w, img)
}

func (s *srv) handleBanner(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	img, _ := s.renderer.RenderBanner(name)
	s.mu.Unlock()
	s.writePNG(w, img)
}

func (s *srv) writePNG(w http.ResponseWriter, img image.Image) {
	var buf bytes.Buffer
	if err := generator.GenerateToWriter(&buf, ".png", generator.Still(img, 0)); err != nil {
		s.log.WithError(err).Error("encode preview PNG", nil)
		http.Error(w, "encode PNG: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	cmd.Start()
}
