// Package metrics records conversion counters with Prometheus and can push
// them to a Pushgateway when a batch finishes.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/flavioheleno/oledbitmap"
)

// DefaultJob is the Pushgateway job name used when none is configured.
const DefaultJob = "oledbitmap"

// Metrics holds the conversion collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	framesEncoded  prometheus.Counter
	framesFailed   *prometheus.CounterVec
	encodeDuration prometheus.Histogram
	batches        prometheus.Counter
}

// New registers the collectors on reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		framesEncoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "oledbitmap_frames_encoded_total",
			Help: "Images successfully converted to SSD1306 frames",
		}),
		framesFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oledbitmap_frames_failed_total",
			Help: "Images that could not be converted, by reason",
		}, []string{"reason"}),
		encodeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "oledbitmap_encode_duration_seconds",
			Help:    "Time spent decoding and encoding a single image",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		batches: factory.NewCounter(prometheus.CounterOpts{
			Name: "oledbitmap_batches_total",
			Help: "Batch conversions run",
		}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Reason maps a conversion error to a failure label.
func Reason(err error) string {
	switch {
	case errors.Is(err, oledbitmap.ErrInvalidDimensions):
		return "invalid_dimensions"
	case errors.Is(err, oledbitmap.ErrUnreadableSource):
		return "unreadable_source"
	default:
		return "other"
	}
}

// ObserveFrame records one conversion attempt.
func (m *Metrics) ObserveFrame(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.encodeDuration.Observe(d.Seconds())
	if err != nil {
		m.framesFailed.WithLabelValues(Reason(err)).Inc()
		return
	}
	m.framesEncoded.Inc()
}

// ObserveBatch records one batch run.
func (m *Metrics) ObserveBatch() {
	if m == nil {
		return
	}
	m.batches.Inc()
}

// Push sends every collector to the Pushgateway at url under job.
func (m *Metrics) Push(url, job string) error {
	if m == nil {
		return fmt.Errorf("metrics: not initialized")
	}
	if job == "" {
		job = DefaultJob
	}

	if err := push.New(url, job).Gatherer(m.registry).Push(); err != nil {
		return fmt.Errorf("metrics: failed to push to gateway: %w", err)
	}
	return nil
}
