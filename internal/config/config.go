// Package config loads netfix.yaml (plus NETFIX_* environment overrides and
// an optional .env) into a Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/netfix-app/trailerkit/pkg/canvas"
	"github.com/netfix-app/trailerkit/pkg/catalog"
)

// DefaultFile is looked up in the working directory and ./configs.
const DefaultFile = "netfix.yaml"

// EnvPrefix namespaces environment overrides, e.g. NETFIX_CLIPS_DELAY=0s.
const EnvPrefix = "NETFIX"

// Config is the full kit configuration.
type Config struct {
	OutputDir string          `mapstructure:"output_dir"`
	Log       LogConfig       `mapstructure:"log"`
	Font      FontConfig      `mapstructure:"font"`
	Images    ImagesConfig    `mapstructure:"images"`
	Clips     ClipsConfig     `mapstructure:"clips"`
	Reel      ReelConfig      `mapstructure:"reel"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Catalog   catalog.Catalog `mapstructure:"catalog"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

type FontConfig struct {
	Name     string   `mapstructure:"name"`
	Dirs     []string `mapstructure:"dirs"`
	Fallback string   `mapstructure:"fallback"` // "embedded" or "bitmap"
}

type ImagesConfig struct {
	JPEGQuality  int `mapstructure:"jpeg_quality"`
	PosterShapes int `mapstructure:"poster_shapes"`
	BannerShapes int `mapstructure:"banner_shapes"`
}

type ClipsConfig struct {
	Delay     time.Duration `mapstructure:"delay"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
	UserAgent string        `mapstructure:"user_agent"`
	Proxy     string        `mapstructure:"proxy"`
}

type ReelConfig struct {
	FPS  int `mapstructure:"fps"`
	Hold int `mapstructure:"hold"` // seconds per frame
}

type MetricsConfig struct {
	File string `mapstructure:"file"` // empty disables the textfile dump
}

// FontOptions converts the font section for the canvas package.
func (c *Config) FontOptions() canvas.FontConfig {
	return canvas.FontConfig{Name: c.Font.Name, Dirs: c.Font.Dirs, Fallback: c.Font.Fallback}
}

// Load reads configuration. An empty path searches DefaultFile and runs on
// defaults when none exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// WriteSample writes a fully populated config file and refuses to replace an
// existing one.
func WriteSample(path string) error {
	v := newViper()
	v.SetConfigType("yaml")
	def := catalog.Default()
	v.Set("catalog.movies", def.Movies)
	v.Set("catalog.categories", def.Categories)
	v.Set("catalog.palette", map[string]string(def.Palette))
	v.Set("catalog.clips", def.Clips)
	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers scalar defaults so explicit zero values (e.g. a 0s
// delay) survive and every key is reachable from the environment.
func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("font.name", "arial.ttf")
	v.SetDefault("font.dirs", canvas.DefaultFontDirs)
	v.SetDefault("font.fallback", canvas.FallbackEmbedded)
	v.SetDefault("images.jpeg_quality", 95)
	v.SetDefault("images.poster_shapes", 5)
	v.SetDefault("images.banner_shapes", 10)
	v.SetDefault("clips.delay", "1s")
	v.SetDefault("clips.timeout", "60s")
	v.SetDefault("clips.retries", 0)
	v.SetDefault("clips.user_agent", "")
	v.SetDefault("clips.proxy", "")
	v.SetDefault("reel.fps", 5)
	v.SetDefault("reel.hold", 2)
	v.SetDefault("metrics.file", "")
}

// applyDefaults fills the catalog sections left out of the file. Slices are
// replaced wholesale, never merged with the stock data.
func applyDefaults(cfg *Config) {
	def := catalog.Default()
	if len(cfg.Catalog.Movies) == 0 {
		cfg.Catalog.Movies = def.Movies
	}
	if len(cfg.Catalog.Categories) == 0 {
		cfg.Catalog.Categories = def.Categories
	}
	if len(cfg.Catalog.Palette) == 0 {
		cfg.Catalog.Palette = def.Palette
	}
	if len(cfg.Catalog.Clips) == 0 {
		cfg.Catalog.Clips = def.Clips
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
}

func validate(cfg *Config) error {
	if q := cfg.Images.JPEGQuality; q < 1 || q > 100 {
		return fmt.Errorf("images.jpeg_quality must be within 1..100, got %d", q)
	}
	if cfg.Images.PosterShapes < 0 || cfg.Images.BannerShapes < 0 {
		return errors.New("images.*_shapes must not be negative")
	}
	if cfg.Clips.Delay < 0 || cfg.Clips.Timeout < 0 || cfg.Clips.Retries < 0 {
		return errors.New("clips.delay, clips.timeout and clips.retries must not be negative")
	}
	if cfg.Reel.FPS < 1 || cfg.Reel.Hold < 1 {
		return errors.New("reel.fps and reel.hold must be at least 1")
	}
	switch cfg.Font.Fallback {
	case canvas.FallbackEmbedded, canvas.FallbackBitmap:
	default:
		return fmt.Errorf("font.fallback must be %q or %q, got %q", canvas.FallbackEmbedded, canvas.FallbackBitmap, cfg.Font.Fallback)
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", cfg.Log.Format)
	}
	return nil
}

func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}
