// Package metrics bundles the Prometheus collectors exported by the viewer.
//
// A nil *Collector is valid and records nothing, so components can hold one
// unconditionally.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector bundles the viewer's Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	Frames          *prometheus.CounterVec
	RenderDurations *prometheus.HistogramVec
	UnionFallbacks  prometheus.Counter
	Conversions     *prometheus.CounterVec
	LoadedObjects   prometheus.Gauge
	SelectionSize   prometheus.Gauge
	Switches        *prometheus.CounterVec
}

// New registers the viewer metrics against reg, defaulting to the global
// Prometheus registry when reg is nil. Collectors that are already
// registered are reused.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "viewer_frames_total",
		Help: "Frames rendered, labeled by surface kind.",
	}, []string{"surface"}))
	if err != nil {
		return nil, err
	}

	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "viewer_render_duration_seconds",
		Help:    "Render call latency in seconds, labeled by surface kind.",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.016, 0.033, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"surface"}))
	if err != nil {
		return nil, err
	}

	fallbacks, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viewer_union_fallbacks_total",
		Help: "Material groups emitted unmerged because polygon union failed.",
	}))
	if err != nil {
		return nil, err
	}

	conversions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "viewer_conversions_total",
		Help: "Domain object conversions, labeled by result (ok, unsupported, failed).",
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	loaded, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "viewer_loaded_objects",
		Help: "Objects currently loaded in the scene.",
	}))
	if err != nil {
		return nil, err
	}

	selection, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "viewer_selection_size",
		Help: "Objects currently in the selection set.",
	}))
	if err != nil {
		return nil, err
	}

	switches, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "viewer_renderer_switches_total",
		Help: "Renderer switches, labeled by the surface kind mounted.",
	}, []string{"surface"}))
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		Frames:          frames,
		RenderDurations: durations,
		UnionFallbacks:  fallbacks,
		Conversions:     conversions,
		LoadedObjects:   loaded,
		SelectionSize:   selection,
		Switches:        switches,
	}, nil
}

// Gatherer returns the gatherer backing the registerer used at construction.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return prometheus.DefaultGatherer
	}
	return c.gatherer
}

// ObserveFrame records one render call on the given surface.
func (c *Collector) ObserveFrame(surface string, d time.Duration) {
	if c == nil {
		return
	}
	c.Frames.WithLabelValues(surface).Inc()
	c.RenderDurations.WithLabelValues(surface).Observe(d.Seconds())
}

// AddFallbacks counts material groups that were emitted unmerged.
func (c *Collector) AddFallbacks(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.UnionFallbacks.Add(float64(n))
}

// ObserveConversion counts one conversion outcome.
func (c *Collector) ObserveConversion(result string) {
	if c == nil {
		return
	}
	c.Conversions.WithLabelValues(result).Inc()
}

// SetLoaded records the number of loaded objects.
func (c *Collector) SetLoaded(n int) {
	if c == nil {
		return
	}
	c.LoadedObjects.Set(float64(n))
}

// SetSelection records the size of the selection set.
func (c *Collector) SetSelection(n int) {
	if c == nil {
		return
	}
	c.SelectionSize.Set(float64(n))
}

// ObserveSwitch counts a renderer switch to the given surface.
func (c *Collector) ObserveSwitch(surface string) {
	if c == nil {
		return
	}
	c.Switches.WithLabelValues(surface).Inc()
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}
