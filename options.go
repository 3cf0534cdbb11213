package viewer

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/viewer/convert"
	"github.com/gogpu/viewer/projector"
)

// DefaultConcurrency bounds the number of conversions running at once.
const DefaultConcurrency = 8

// Option configures a Viewer during creation.
//
// Example:
//
//	v, err := viewer.New(host, viewer.DefaultConfig(),
//	    viewer.WithLogger(logger),
//	    viewer.WithMetrics(prometheus.DefaultRegisterer),
//	)
type Option func(*options)

type options struct {
	logger      *slog.Logger
	registerer  prometheus.Registerer
	projector   projector.Projector
	converters  *convert.Registry
	concurrency int
	dispatch    func(func())
	poolCap     int
}

func defaultOptions() options {
	return options{
		logger:      Logger(),
		projector:   projector.New(),
		converters:  convert.Default(),
		concurrency: DefaultConcurrency,
	}
}

// WithLogger sets the viewer logger. It is passed on to every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics registers the viewer's collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithProjector replaces the scene projector used by both surfaces and by
// picking.
func WithProjector(p projector.Projector) Option {
	return func(o *options) {
		if p != nil {
			o.projector = p
		}
	}
}

// WithConverters replaces the converter registry.
func WithConverters(r *convert.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.converters = r
		}
	}
}

// WithConcurrency bounds the number of conversions running at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithDispatch sets how selection authority calls run. The default starts
// a goroutine per call.
func WithDispatch(d func(func())) Option {
	return func(o *options) {
		o.dispatch = d
	}
}

// WithPoolCapacity sets the vector surface's path handle pool size.
func WithPoolCapacity(n int) Option {
	return func(o *options) {
		o.poolCap = n
	}
}
