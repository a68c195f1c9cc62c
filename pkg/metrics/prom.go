package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GeneratedPasswords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "passgen_generated_total",
			Help: "Total number of generated passwords by length method",
		},
		[]string{"method"},
	)

	GenerationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "passgen_generation_errors_total",
			Help: "Total number of failed generations by error type",
		},
		[]string{"error_type"},
	)

	EntropyBits = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "passgen_entropy_bits",
			Help:    "Achieved entropy of generated passwords in bits",
			Buckets: []float64{32, 48, 64, 80, 96, 128, 192, 256, 512},
		},
	)

	SecureSourceAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "passgen_secure_source_available",
			Help: "1 if a cryptographically secure random source is in use, 0 in reduced security mode",
		},
	)
)

// TextfileOpts configures WriteTextfile.
type TextfileOpts struct {
	Path     string
	Gatherer prometheus.Gatherer // defaults to prometheus.DefaultGatherer
}

// WriteTextfile writes the gathered metrics in the text exposition format,
// suitable for the node_exporter textfile collector.
func WriteTextfile(opts TextfileOpts) error {
	if opts.Path == "" {
		return fmt.Errorf("metrics textfile path is empty")
	}
	g := opts.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	if err := prometheus.WriteToTextfile(opts.Path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
