// netfix-assets - Trailer asset kit for the Netfix promo.
//
// Usage:
//
//	netfix-assets images  [-config <path>] [-out <dir>]
//	netfix-assets clips   [-config <path>] [-out <dir>]
//	netfix-assets pages   [-config <path>] [-out <dir>]
//	netfix-assets reel    [-config <path>] [-out <dir>]
//	netfix-assets all     [-config <path>] [-out <dir>]
//	netfix-assets preview [-config <path>] [-out <dir>] [-addr :8080]
//	netfix-assets init    [-o netfix.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/netfix-app/trailerkit/clients/server"
	"github.com/netfix-app/trailerkit/internal/config"
	"github.com/netfix-app/trailerkit/internal/infra/httpx"
	"github.com/netfix-app/trailerkit/internal/logger"
	"github.com/netfix-app/trailerkit/internal/metrics"
	"github.com/netfix-app/trailerkit/pkg/assets"
	"github.com/netfix-app/trailerkit/pkg/canvas"
	"github.com/netfix-app/trailerkit/pkg/clips"
	"github.com/netfix-app/trailerkit/pkg/pages"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch cmd := os.Args[1]; cmd {
	case "images", "clips", "pages", "reel", "all":
		err = runStep(cmd, os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		printUsage()
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		fatal(err)
	}
}

// app is everything a step needs, built once per invocation.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	metrics *metrics.Metrics
}

func setup(name string, args []string, extra func(fs *flag.FlagSet)) (*app, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var configPath, outDir string
	fs.StringVar(&configPath, "config", "", "Path to netfix.yaml (default: ./netfix.yaml if present)")
	fs.StringVar(&outDir, "out", "", "Output root (overrides output_dir)")
	if extra != nil {
		extra(fs)
	}
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}

	log := logger.NewStructured(cfg.Log.Level, cfg.Log.Format).
		WithFields(logger.Fields{"run_id": uuid.NewString(), "step": name})
	log.Debug("config loaded", logger.Fields{
		"output_dir": cfg.OutputDir,
		"movies":     len(cfg.Catalog.Movies),
		"categories": len(cfg.Catalog.Categories),
		"clips":      len(cfg.Catalog.Clips),
	})
	for _, w := range cfg.Catalog.Validate() {
		log.Warn("catalog", logger.Fields{"warning": w})
	}

	return &app{cfg: cfg, log: log, metrics: metrics.New()}, nil
}

func (a *app) close() {
	if f := a.cfg.Metrics.File; f != "" {
		if err := a.metrics.WriteTextfile(f); err != nil {
			a.log.WithError(err).Warn("metrics textfile not written", logger.Fields{"file": f})
		}
	}
	_ = a.log.Sync()
}

func (a *app) renderer() *canvas.Renderer {
	return canvas.NewRenderer(canvas.Options{
		Font:         a.cfg.FontOptions(),
		Palette:      a.cfg.Catalog.Palette,
		PosterShapes: a.cfg.Images.PosterShapes,
		BannerShapes: a.cfg.Images.BannerShapes,
		Logger:       a.log,
	})
}

func (a *app) assets(r *canvas.Renderer) *assets.Generator {
	return assets.New(assets.Config{
		OutputDir:   a.cfg.OutputDir,
		JPEGQuality: a.cfg.Images.JPEGQuality,
		ReelFPS:     a.cfg.Reel.FPS,
		ReelHold:    a.cfg.Reel.Hold,
	}, &a.cfg.Catalog, r, a.log, a.metrics)
}

func runStep(step string, args []string) error {
	a, err := setup(step, args, nil)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if step == "images" || step == "all" {
		if err := a.images(ctx); err != nil {
			return err
		}
	}
	if step == "clips" || step == "all" {
		if err := a.clips(ctx); err != nil {
			return err
		}
	}
	if step == "pages" || step == "all" {
		if err := a.pages(); err != nil {
			return err
		}
	}
	if step == "reel" || step == "all" {
		if err := a.reel(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) images(ctx context.Context) error {
	r := a.renderer()
	defer r.Close()

	rep, err := a.assets(r).Run(ctx)
	if err != nil {
		return fmt.Errorf("images: %w", err)
	}
	fmt.Printf("Created %d posters and %d category banners in %s\n", len(rep.Posters), len(rep.Banners), a.cfg.OutputDir)
	return nil
}

func (a *app) clips(ctx context.Context) error {
	client, err := httpx.NewDownloadClient(httpx.Options{
		Timeout:   a.cfg.Clips.Timeout,
		RetryMax:  a.cfg.Clips.Retries,
		UserAgent: a.cfg.Clips.UserAgent,
		ProxyURL:  a.cfg.Clips.Proxy,
	})
	if err != nil {
		return fmt.Errorf("clips: %w", err)
	}

	d := clips.NewDownloader(clips.Options{
		OutputDir: a.cfg.OutputDir,
		Delay:     a.cfg.Clips.Delay,
		Client:    client,
		Logger:    a.log,
		Metrics:   a.metrics,
	})
	rep, err := d.Run(ctx, a.cfg.Catalog.Clips, a.cfg.Catalog.ClipCategories())
	if err != nil {
		return fmt.Errorf("clips: %w", err)
	}
	fmt.Printf("Clips: %d downloaded, %d failed, %d placeholder files\n", rep.Downloaded(), rep.Failed(), len(rep.Placeholders))
	return nil
}

func (a *app) pages() error {
	paths, err := pages.Write(a.cfg.OutputDir, &a.cfg.Catalog)
	if err != nil {
		return fmt.Errorf("pages: %w", err)
	}
	for _, p := range paths {
		a.log.Info("wrote page", map[string]interface{}{"path": p})
		fmt.Printf("Created: %s\n", p)
	}
	return nil
}

func (a *app) reel(ctx context.Context) error {
	// The reel only reads images back, so no fonts are resolved here.
	gen := a.assets(nil)
	images, err := gen.ExistingImages()
	if err != nil {
		return fmt.Errorf("reel: %w", err)
	}
	if len(images) == 0 {
		a.log.Warn("no images to build a reel from; run the images step first", nil)
		return nil
	}
	path, err := gen.BuildReel(ctx, images)
	if err != nil {
		return fmt.Errorf("reel: %w", err)
	}
	fmt.Printf("Created: %s\n", path)
	return nil
}

func runPreview(args []string) error {
	var addr string
	var open bool
	a, err := setup("preview", args, func(fs *flag.FlagSet) {
		fs.StringVar(&addr, "addr", ":8080", "Listen address")
		fs.BoolVar(&open, "open", false, "Open the preview in a browser")
	})
	if err != nil {
		return err
	}
	defer a.close()

	r := a.renderer()
	defer r.Close()

	return server.RunServe(server.Options{
		Addr:        addr,
		OutputDir:   a.cfg.OutputDir,
		Catalog:     &a.cfg.Catalog,
		Renderer:    r,
		Logger:      a.log,
		OpenBrowser: open,
	})
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var out string
	fs.StringVar(&out, "o", config.DefaultFile, "Output path for the sample config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.WriteSample(out); err != nil {
		return err
	}
	fmt.Printf("Created: %s\n", out)
	fmt.Println("Run: netfix-assets all -config " + out)
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`netfix-assets - Netfix trailer asset kit

USAGE:
    netfix-assets <command> [-config <path>] [-out <dir>]

COMMANDS:
    images      Draw movie posters and category banners into images/
    clips       Download stock clips into clips/<category>/, with placeholders
    pages       Render netfix_trailer_with_images.html and netfix_trailer.html
    reel        Stitch existing images into trailer.avi
    all         images, clips, pages and reel in order
    preview     Serve the output directory and render artwork on demand
                  -addr <addr>   Listen address (default: :8080)
                  -open          Open a browser
    init        Write a sample netfix.yaml (-o <path>)
    help        Show this help

CONFIG:
    netfix.yaml is read from the working directory or ./configs unless
    -config is given. Any key can be overridden from the environment with
    the NETFIX_ prefix, e.g. NETFIX_CLIPS_DELAY=0s or NETFIX_OUTPUT_DIR=out.
    A .env file in the working directory is loaded first.

EXAMPLES:
    netfix-assets init
    netfix-assets all -out build
    netfix-assets images -config netfix.yaml
    netfix-assets preview -out build -open
`)
}
