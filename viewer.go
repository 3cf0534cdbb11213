package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/semaphore"

	"github.com/gogpu/viewer/camera"
	"github.com/gogpu/viewer/convert"
	"github.com/gogpu/viewer/internal/metrics"
	"github.com/gogpu/viewer/orbit"
	"github.com/gogpu/viewer/projector"
	"github.com/gogpu/viewer/scene"
	"github.com/gogpu/viewer/selection"
	"github.com/gogpu/viewer/surface"
)

// ErrNoHost is returned by New without a host container.
var ErrNoHost = errors.New("viewer: host is required")

// Viewer displays a scene of converted domain objects on one of two
// surfaces and reconciles pointer input with an external selection.
//
// Viewer is not safe for concurrent use. Tick, pointer events dispatched to
// the host and mounted surface, and every method run on one goroutine.
// Conversions started by Load run elsewhere and are applied by Tick or
// Wait.
type Viewer struct {
	cfg    Config
	logger *slog.Logger

	host    *surface.Host
	raster  surface.Exporter
	vector  *surface.Vector
	mounted surface.Surface

	scene      *scene.Scene
	cam        *camera.Camera
	anim       camera.Animator
	controls   *orbit.Controls
	machine    *selection.Machine
	projector  projector.Projector
	converters *convert.Registry
	metrics    *metrics.Collector

	listeners   []surface.Handle
	hostHandles []surface.Handle
	keyboard    bool
	sphere      scene.Sphere
	placeholder *colorful.Color
	resolver    ColorResolver

	loads loads
}

// New creates a viewer inside host and mounts the surface named by
// cfg.Renderer.
func New(host *surface.Host, cfg Config, opts ...Option) (*Viewer, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m, err := metrics.New(o.registerer)
	if err != nil {
		return nil, fmt.Errorf("viewer: metrics: %w", err)
	}

	w, h := host.Size()
	sopts := surface.Options{
		Width:        w,
		Height:       h,
		Projector:    o.projector,
		Logger:       o.logger,
		PoolCapacity: o.poolCap,
	}
	raster, err := newSurface[surface.Exporter](surface.KindRaster, sopts)
	if err != nil {
		return nil, err
	}
	vec, err := newSurface[*surface.Vector](surface.KindVector, sopts)
	if err != nil {
		_ = raster.Close()
		return nil, err
	}

	v := &Viewer{
		logger:     o.logger,
		host:       host,
		raster:     raster,
		vector:     vec,
		scene:      scene.New(),
		cam:        camera.New(camera.ParseMode(cfg.Camera), aspect(w, h)),
		projector:  o.projector,
		converters: o.converters,
		metrics:    m,
		sphere:     scene.BoundingSphere(nil, nil),
	}
	v.loads.sem = semaphore.NewWeighted(int64(o.concurrency))
	v.loads.wake = make(chan struct{}, 1)
	v.machine = selection.New(v.scene,
		selection.WithFramer(framer{v}),
		selection.WithObserver(v.metrics.SetSelection),
		selection.WithDispatch(o.dispatch),
		selection.WithLogger(o.logger),
	)
	if o.logger != Logger() {
		gg.SetLogger(o.logger)
	}

	v.hostHandles = []surface.Handle{
		host.Element().On(surface.PointerEnter, func(surface.Event) { v.keyboard = true }),
		host.Element().On(surface.PointerLeave, func(surface.Event) { v.keyboard = false }),
	}
	host.OnResize(v.resize)

	v.cfg = cfg
	if err := v.apply(Config{}, cfg, true); err != nil {
		_ = v.Close()
		return nil, err
	}
	v.logger.Info("viewer: created", "width", w, "height", h, "surface", v.mounted.Kind())
	return v, nil
}

func newSurface[T surface.Surface](kind surface.Kind, opts surface.Options) (T, error) {
	var zero T
	s, err := surface.NewSurface(kind, opts)
	if err != nil {
		return zero, fmt.Errorf("viewer: create %s surface: %w", kind, err)
	}
	t, ok := s.(T)
	if !ok {
		_ = s.Close()
		return zero, fmt.Errorf("viewer: %s backend returned %T", kind, s)
	}
	return t, nil
}

func aspect(w, h int) float64 {
	if h <= 0 {
		return 1
	}
	return float64(w) / float64(h)
}

// Config returns the current settings.
func (v *Viewer) Config() Config { return v.cfg }

// Update applies cfg, acting only on the settings that changed. The
// collaborators (highlighter, authority, color resolver) are always
// replaced and followed by a refresh.
func (v *Viewer) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	old := v.cfg
	v.cfg = cfg
	return v.apply(old, cfg, false)
}

func (v *Viewer) apply(old, cfg Config, force bool) error {
	var errs []error

	if force || cfg.LineWeight != old.LineWeight {
		v.vector.Renderer().LineWeight = cfg.LineWeight
	}
	if force || cfg.LineColor != old.LineColor {
		c, _ := parseColor(cfg.LineColor)
		if c == nil {
			c = &colorful.Color{}
		}
		v.vector.Renderer().LineColor = *c
	}
	if force || cfg.Precision != old.Precision {
		v.vector.Renderer().SetPrecision(cfg.Precision)
	}
	if force || cfg.Background != old.Background {
		v.scene.Background, _ = parseColor(cfg.Background)
	}
	if force || cfg.HoverColor != old.HoverColor {
		c, _ := parseColor(cfg.HoverColor)
		if c == nil {
			c = &selection.DefaultHoverColor
		}
		v.machine.HoverColor = *c
	}
	if force || cfg.PlaceholderColor != old.PlaceholderColor {
		v.placeholder, _ = parseColor(cfg.PlaceholderColor)
	}

	v.machine.SetHighlighter(cfg.Highlighter)
	v.machine.SetAuthority(cfg.Authority)
	v.resolver = cfg.ColorResolver

	if !force && cfg.Camera != old.Camera {
		v.ResetCamera(false)
	}

	kind := surface.ParseKind(cfg.Renderer)
	switch {
	case v.mounted == nil:
		if err := v.mount(kind); err != nil {
			errs = append(errs, err)
		}
	case kind != v.mounted.Kind():
		if err := v.SwitchRenderer(kind); err != nil {
			errs = append(errs, err)
		}
	}

	v.machine.Refresh()
	return errors.Join(errs...)
}

// Close releases both surfaces and detaches from the host.
func (v *Viewer) Close() error {
	v.detach()
	for _, h := range v.hostHandles {
		h.Remove()
	}
	v.hostHandles = nil
	if v.mounted != nil {
		v.host.Unmount()
		v.mounted = nil
	}
	return errors.Join(v.raster.Close(), v.vector.Close())
}

// Scene returns the loaded scene.
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Camera returns the camera.
func (v *Viewer) Camera() *camera.Camera { return v.cam }

// Selection returns the selection state machine.
func (v *Viewer) Selection() *selection.Machine { return v.machine }

// Mounted returns the mounted surface.
func (v *Viewer) Mounted() surface.Surface { return v.mounted }

// Controls returns the orbit binding of the mounted surface.
func (v *Viewer) Controls() *orbit.Controls { return v.controls }

// KeyboardEnabled reports whether the pointer is inside the host.
func (v *Viewer) KeyboardEnabled() bool { return v.keyboard }

// Sphere returns the bounding sphere of the last framing request.
func (v *Viewer) Sphere() scene.Sphere { return v.sphere }

// Animating reports whether a camera transition is in flight.
func (v *Viewer) Animating() bool { return v.anim.Active() }

func (v *Viewer) resize(w, h int) {
	v.cam.SetAspect(aspect(w, h))
	if v.mounted == nil {
		return
	}
	if err := v.mounted.SetSize(w, h); err != nil {
		v.logger.Error("viewer: resize failed", "width", w, "height", h, "err", err)
	}
}

// attach binds orbit controls and the selection listeners to the mounted
// surface's input element.
func (v *Viewer) attach() {
	el := v.mounted.Element()
	v.controls = orbit.Bind(v.cam, el)
	v.listeners = []surface.Handle{
		el.On(surface.PointerMove, func(ev surface.Event) { v.pointerMove(el, ev) }),
		el.On(surface.PointerDown, func(ev surface.Event) { v.machine.Press(eventTime(ev)) }),
		el.On(surface.PointerUp, v.pointerUp),
	}
}

func (v *Viewer) detach() {
	for _, h := range v.listeners {
		h.Remove()
	}
	v.listeners = nil
	if v.controls != nil {
		v.controls.Unbind()
		v.controls = nil
	}
}

func (v *Viewer) pointerMove(el *surface.Element, ev surface.Event) {
	x, y := el.NDC(ev.X, ev.Y)
	v.machine.Hover(projector.Pick(v.scene, v.cam, x, y))
}

func (v *Viewer) pointerUp(ev surface.Event) {
	v.machine.Release(eventTime(ev), selection.Modifiers{Shift: ev.Shift, Ctrl: ev.Ctrl})
}

func eventTime(ev surface.Event) time.Time {
	if ev.Time.IsZero() {
		return time.Now()
	}
	return ev.Time
}

// framer routes selection framing requests to the viewer.
type framer struct{ v *Viewer }

func (f framer) FrameHighlights()      { f.v.ZoomHighlightExtents() }
func (f framer) FrameObject(id string) { f.v.ZoomToObject(id) }

// loads is the hand-off between conversion goroutines and the tick.
type loads struct {
	sem  *semaphore.Weighted
	wake chan struct{}

	mu         sync.Mutex
	queue      []completion
	inflight   int
	generation uint64

	sources []convert.Source
}
