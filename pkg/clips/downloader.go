// Package clips fetches stock video clips into per-category folders and
// leaves placeholder text files wherever nothing could be fetched.
package clips

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/netfix-app/trailerkit/internal/infra/fsx"
	"github.com/netfix-app/trailerkit/internal/logger"
	"github.com/netfix-app/trailerkit/internal/metrics"
	"github.com/netfix-app/trailerkit/pkg/catalog"
)

// Dir is the clips root relative to the output directory.
const Dir = "clips"

// DefaultDelay is the pause between consecutive downloads.
const DefaultDelay = time.Second

// ClipResult records the outcome of one source.
type ClipResult struct {
	Source catalog.ClipSource
	Path   string
	Bytes  int64
	Err    error
}

// OK reports whether the clip landed on disk.
func (r ClipResult) OK() bool { return r.Err == nil }

// Report summarises a clips pass.
type Report struct {
	Results      []ClipResult
	Placeholders []string
	Duration     time.Duration
}

// Downloaded counts successful results.
func (r *Report) Downloaded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed counts unsuccessful results.
func (r *Report) Failed() int { return len(r.Results) - r.Downloaded() }

// Options configures a Downloader.
type Options struct {
	OutputDir string
	Delay     time.Duration // between items; negative means none
	Client    *http.Client
	Logger    logger.Logger
	Metrics   *metrics.Metrics
}

// Downloader fetches clips one at a time. Every failure is recorded and the
// loop moves on.
type Downloader struct {
	root    string
	delay   time.Duration
	client  *http.Client
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewDownloader applies defaults to opts.
func NewDownloader(opts Options) *Downloader {
	d := &Downloader{
		root:    filepath.Join(opts.OutputDir, Dir),
		delay:   max(opts.Delay, 0),
		client:  opts.Client,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
	if d.client == nil {
		d.client = http.DefaultClient
	}
	if d.log == nil {
		d.log = logger.NewNoOpLogger()
	}
	if d.metrics == nil {
		d.metrics = metrics.New()
	}
	return d
}

// usableCategories drops names that cannot be a single folder under the clips
// root. A bad name costs only its own folder.
func (d *Downloader) usableCategories(categories []string) []string {
	ok := make([]string, 0, len(categories))
	for _, c := range categories {
		if err := checkSegment(c); err != nil {
			d.log.WithError(err).Warn("skipping category", map[string]interface{}{"category": c})
			continue
		}
		ok = append(ok, c)
	}
	return ok
}

// Root is the clips directory.
func (d *Downloader) Root() string { return d.root }

// CategoryDir is where clips of category land.
func (d *Downloader) CategoryDir(category string) string { return filepath.Join(d.root, category) }

// Run creates a folder per category, downloads every source and then writes
// placeholders into folders that are still empty.
func (d *Downloader) Run(ctx context.Context, sources []catalog.ClipSource, categories []string) (*Report, error) {
	started := time.Now()
	defer func() {
		d.metrics.StepDuration.WithLabelValues("clips").Observe(time.Since(started).Seconds())
	}()

	categories = d.usableCategories(categories)
	dirs := make([]string, 0, len(categories))
	for _, c := range categories {
		dirs = append(dirs, d.CategoryDir(c))
	}
	if err := fsx.EnsureDirs(dirs...); err != nil {
		return nil, err
	}

	results, err := d.Download(ctx, sources)
	rep := &Report{Results: results}
	if err != nil {
		return rep, err
	}

	placeholders, err := d.EnsurePlaceholders(categories)
	rep.Placeholders = placeholders
	rep.Duration = time.Since(started)
	if err != nil {
		return rep, err
	}

	d.log.Info("clip download attempts completed", map[string]interface{}{
		"downloaded":   rep.Downloaded(),
		"failed":       rep.Failed(),
		"placeholders": len(placeholders),
		"duration":     rep.Duration.String(),
	})
	return rep, nil
}

// Download fetches sources in order, pausing between items. The returned
// error is non-nil only when ctx ends the loop early.
func (d *Downloader) Download(ctx context.Context, sources []catalog.ClipSource) ([]ClipResult, error) {
	results := make([]ClipResult, 0, len(sources))
	for i, src := range sources {
		if i > 0 {
			if err := sleep(ctx, d.delay); err != nil {
				return results, err
			}
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := d.fetch(ctx, src)
		results = append(results, res)
		if res.Err != nil {
			d.metrics.ClipDownloads.WithLabelValues(metrics.ResultFailed).Inc()
			d.log.WithError(res.Err).Warn("clip download failed", map[string]interface{}{
				"url":      src.URL,
				"category": src.Category,
				"name":     src.Name,
			})
			continue
		}
		d.metrics.ClipDownloads.WithLabelValues(metrics.ResultOK).Inc()
		d.metrics.ClipBytes.Add(float64(res.Bytes))
		d.log.Info("downloaded clip", map[string]interface{}{
			"path":  res.Path,
			"bytes": res.Bytes,
		})
	}
	return results, nil
}

func (d *Downloader) fetch(ctx context.Context, src catalog.ClipSource) ClipResult {
	res := ClipResult{Source: src}
	if err := checkSegment(src.Category); err != nil {
		res.Err = fmt.Errorf("category: %w", err)
		return res
	}
	if err := checkSegment(src.Name); err != nil {
		res.Err = fmt.Errorf("name: %w", err)
		return res
	}
	res.Path = filepath.Join(d.CategoryDir(src.Category), src.Name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		res.Err = err
		return res
	}
	resp, err := d.client.Do(req)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res.Err = &StatusError{Code: resp.StatusCode, URL: src.URL}
		return res
	}

	n, err := fsx.WriteFrom(res.Path, resp.Body)
	if err != nil {
		res.Err = err
		return res
	}
	res.Bytes = n
	return res
}

// StatusError is a non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

var errBadSegment = errors.New("must be a plain file or directory name")

func checkSegment(s string) error {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return errBadSegment
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
