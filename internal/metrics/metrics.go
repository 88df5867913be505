package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Texture load results used as the "result" label.
const (
	TextureOK     = "ok"
	TextureFailed = "failed"
)

// Collector bundles the viewer's Prometheus metrics. A nil *Collector is
// valid and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	FramesRendered prometheus.Counter
	FrameDuration  prometheus.Histogram
	TextureLoads   *prometheus.CounterVec
	Resizes        prometheus.Counter
	Triangles      prometheus.Gauge
}

// New registers the viewer metrics against reg, defaulting to the global
// registry when nil. Registering twice against the same registry reuses the
// existing collectors.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "frames_rendered_total",
		Help: "Total number of frames rendered.",
	}), "frames_rendered_total")
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "frame_render_duration_seconds",
		Help:    "Time spent rendering one frame in seconds.",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.016, 0.033, 0.05, 0.1, 0.25, 0.5},
	}), "frame_render_duration_seconds")
	if err != nil {
		return nil, err
	}
	loads, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "texture_loads_total",
		Help: "Texture loads by result.",
	}, []string{"result"}), "texture_loads_total")
	if err != nil {
		return nil, err
	}
	resizes, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viewport_resizes_total",
		Help: "Viewport size changes applied.",
	}), "viewport_resizes_total")
	if err != nil {
		return nil, err
	}
	triangles, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "frame_triangles",
		Help: "Triangles rasterized in the last frame.",
	}), "frame_triangles")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		FramesRendered: frames,
		FrameDuration:  duration,
		TextureLoads:   loads,
		Resizes:        resizes,
		Triangles:      triangles,
	}, nil
}

// ObserveFrame records one rendered frame.
func (c *Collector) ObserveFrame(d time.Duration, triangles int) {
	if c == nil {
		return
	}
	c.FramesRendered.Inc()
	c.FrameDuration.Observe(d.Seconds())
	c.Triangles.Set(float64(triangles))
}

// ObserveTexture records a finished texture load.
func (c *Collector) ObserveTexture(err error) {
	if c == nil {
		return
	}
	result := TextureOK
	if err != nil {
		result = TextureFailed
	}
	c.TextureLoads.WithLabelValues(result).Inc()
}

// ObserveResize records an applied viewport resize.
func (c *Collector) ObserveResize() {
	if c == nil {
		return
	}
	c.Resizes.Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
