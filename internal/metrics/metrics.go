// Package metrics counts what a run produced. Each run owns its registry so
// repeated runs in one process (and tests) never collide.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Download results.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Metrics holds the per-run collectors.
type Metrics struct {
	Registry *prometheus.Registry

	AssetsGenerated     *prometheus.CounterVec
	ClipDownloads       *prometheus.CounterVec
	ClipBytes           prometheus.Counter
	PlaceholdersWritten *prometheus.CounterVec
	StepDuration        *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		AssetsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netfix_assets_generated_total",
				Help: "Images written, by asset kind",
			},
			[]string{"kind"},
		),
		ClipDownloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netfix_clip_downloads_total",
				Help: "Clip download attempts, by result",
			},
			[]string{"result"},
		),
		ClipBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "netfix_clip_bytes_total",
			Help: "Bytes of clip content written",
		}),
		PlaceholdersWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netfix_clip_placeholders_total",
				Help: "Placeholder files written for categories without clips",
			},
			[]string{"category"},
		),
		StepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "netfix_step_duration_seconds",
				Help:    "Wall time of each run step",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"step"},
		),
	}
	m.Registry.MustRegister(m.AssetsGenerated, m.ClipDownloads, m.ClipBytes, m.PlaceholdersWritten, m.StepDuration)
	return m
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
