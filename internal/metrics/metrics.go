// Package metrics exports globe render and interaction metrics to
// Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option configures a Recorder.
type Option func(*Recorder)

func WithNamespace(ns string) Option {
	return func(r *Recorder) {
		if ns != "" {
			r.namespace = ns
		}
	}
}

// WithFrameBuckets sets the frame time histogram buckets, in seconds.
func WithFrameBuckets(b []float64) Option {
	return func(r *Recorder) {
		if len(b) > 0 {
			r.frameBuckets = b
		}
	}
}

// Recorder implements globeview.Metrics. All methods are safe on a nil
// *Recorder.
type Recorder struct {
	namespace    string
	frameBuckets []float64

	frames          prometheus.Counter
	frameSeconds    prometheus.Histogram
	markers         prometheus.Gauge
	arcs            prometheus.Gauge
	selections      prometheus.Counter
	textureSeconds  prometheus.Histogram
	surfaceFallback prometheus.Counter
}

// NewRecorder registers the globe metrics on reg.
func NewRecorder(reg prometheus.Registerer, opts ...Option) *Recorder {
	r := &Recorder{
		namespace:    "travelglobe",
		frameBuckets: []float64{.002, .005, .01, .016, .025, .05, .1, .25},
	}
	for _, o := range opts {
		o(r)
	}

	auto := promauto.With(reg)
	r.frames = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "frames_total",
		Help:      "Frames rendered.",
	})
	r.frameSeconds = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "frame_seconds",
		Help:      "Time spent rendering one frame.",
		Buckets:   r.frameBuckets,
	})
	r.markers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "markers",
		Help:      "Destination markers in the current scene.",
	})
	r.arcs = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "arcs",
		Help:      "Connection arcs in the current scene.",
	})
	r.selections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "selections_total",
		Help:      "Selection changes.",
	})
	r.textureSeconds = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "texture_synth_seconds",
		Help:      "Time spent synthesizing the planet texture.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	})
	r.surfaceFallback = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "surface_fallbacks_total",
		Help:      "Mounts that fell back to the placeholder.",
	})
	return r
}

func (r *Recorder) ObserveFrame(d time.Duration) {
	if r == nil {
		return
	}
	r.frames.Inc()
	r.frameSeconds.Observe(d.Seconds())
}

func (r *Recorder) SetScene(markers, arcs int) {
	if r == nil {
		return
	}
	r.markers.Set(float64(markers))
	r.arcs.Set(float64(arcs))
}

func (r *Recorder) IncSelection() {
	if r == nil {
		return
	}
	r.selections.Inc()
}

func (r *Recorder) ObserveTextureSynth(d time.Duration) {
	if r == nil {
		return
	}
	r.textureSeconds.Observe(d.Seconds())
}

func (r *Recorder) IncSurfaceFallback() {
	if r == nil {
		return
	}
	r.surfaceFallback.Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
