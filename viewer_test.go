package viewer

import (
	"bytes"
	"context"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/viewer/camera"
	"github.com/gogpu/viewer/convert"
	"github.com/gogpu/viewer/scene"
	"github.com/gogpu/viewer/surface"
)

func inline(f func()) { f() }

// square returns a Mesh source: a 1.6 wide square in the y = 0 plane
// centered on (x, 0, 0).
func square(id string, x float64, props map[string]any) convert.Source {
	return convert.Source{
		ID:         id,
		Type:       "Objects.Geometry/Mesh",
		Properties: props,
		Vertices: []float64{
			x - 0.8, 0, -0.8,
			x + 0.8, 0, -0.8,
			x + 0.8, 0, 0.8,
			x - 0.8, 0, 0.8,
		},
		Faces: []int{1, 0, 1, 2, 3},
	}
}

func newViewer(t *testing.T, cfg Config, opts ...Option) *Viewer {
	t.Helper()
	opts = append([]Option{WithDispatch(inline)}, opts...)
	v, err := New(surface.NewHost(200, 200), cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = v.Close() })
	return v
}

func load(t *testing.T, v *Viewer, zoom bool, srcs ...convert.Source) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v.Load(ctx, srcs, zoom)
	require.NoError(t, v.Wait(ctx))
}

// faceFront puts the camera on -Y looking at the origin, so world x maps to
// screen x and world z to screen y.
func faceFront(v *Viewer) {
	cam := v.Camera()
	cam.Position = mgl64.Vec3{0, -10, 0}
	cam.Target = mgl64.Vec3{}
	cam.LookAt(cam.Target)
}

// screenX returns the pixel column of world x on the y = 0 plane for the
// front camera and a 200 pixel wide host.
func screenX(x float64) float64 {
	ndc := x / (10 * tanDeg(camera.PerspectiveFov/2))
	return (ndc + 1) / 2 * 200
}

func tanDeg(d float64) float64 { return math.Tan(mgl64.DegToRad(d)) }

func click(v *Viewer, x float64, at time.Time, shift bool) {
	el := v.Mounted().Element()
	el.Dispatch(surface.Event{Type: surface.PointerMove, X: x, Y: 100})
	el.Dispatch(surface.Event{Type: surface.PointerDown, X: x, Y: 100, Time: at})
	el.Dispatch(surface.Event{Type: surface.PointerUp, X: x, Y: 100, Time: at.Add(50 * time.Millisecond), Shift: shift})
}

// settle ticks until the camera transition is over.
func settle(t *testing.T, v *Viewer, from time.Time) time.Time {
	t.Helper()
	now := from
	for i := 0; i < 10; i++ {
		require.NoError(t, v.Tick(now))
		if !v.Animating() {
			return now
		}
		now = now.Add(time.Second)
	}
	t.Fatal("camera never settled")
	return now
}

func TestNewRequiresHost(t *testing.T) {
	_, err := New(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrNoHost)
}

func TestNewMountsConfiguredSurface(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Renderer = "vector"
	v := newViewer(t, cfg)

	require.NotNil(t, v.Mounted())
	assert.Equal(t, surface.KindVector, v.Mounted().Kind())
	assert.Same(t, v.host.Mounted(), v.Mounted())
	assert.NotNil(t, v.Controls())
}

func TestLoadAppliesOnWait(t *testing.T) {
	v := newViewer(t, DefaultConfig())
	load(t, v, false,
		square("a", -2, map[string]any{"level": map[string]any{"name": "L1"}}),
		square("b", 2, nil),
		convert.Source{ID: "p", Type: "Base/Point"},
	)

	assert.Equal(t, []string{"a", "b"}, sortedIDs(v.Scene()))
	a, _ := v.Scene().Get("a")
	assert.Equal(t, "L1", a.Properties["level.name"])
	assert.Equal(t, "a", a.SelectionID)
	assert.Zero(t, v.Pending())
}

func TestColorResolver(t *testing.T) {
	red := colorful.Color{R: 1}
	cfg := DefaultConfig()
	cfg.ColorResolver = func(src convert.Source) (colorful.Color, bool) {
		return red, src.ID == "a"
	}
	v := newViewer(t, cfg)
	load(t, v, false, square("a", -2, nil), square("b", 2, nil))

	a, _ := v.Scene().Get("a")
	b, _ := v.Scene().Get("b")
	assert.Equal(t, red, a.Material.Color)
	assert.Equal(t, convert.DefaultColor, b.Material.Color)
	assert.NotEqual(t, a.Material.ID, b.Material.ID)
}

func TestPlainClickThenClickReplaces(t *testing.T) {
	v := newViewer(t, DefaultConfig())
	load(t, v, false, square("a", -2, nil), square("b", 2, nil))
	faceFront(v)

	t0 := time.Unix(100, 0)
	click(v, screenX(-2), t0, false)
	assert.Equal(t, []string{"a"}, v.Selection().Selection())

	click(v, screenX(2), t0.Add(time.Second), false)
	assert.Equal(t, []string{"b"}, v.Selection().Selection())

	a, _ := v.Scene().Get("a")
	assert.Equal(t, scene.Dimmed, a.Display())
}

func TestHighlightFramingScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Highlighter = PropertyHighlighter{Key: "level", Values: []string{"2"}}
	v := newViewer(t, cfg)

	load(t, v, true,
		square("one", -6, map[string]any{"level": 1}),
		square("two", 0, map[string]any{"level": 2}),
		square("three", 6, map[string]any{"level": 3}),
	)

	two, _ := v.Scene().Get("two")
	want := scene.BoundingSphere([]*scene.Object{two}, scene.All)
	assert.InDelta(t, want.Radius, v.Sphere().Radius, 1e-9)
	assert.True(t, v.Sphere().Center.ApproxEqual(want.Center))

	for _, id := range []string{"one", "three"} {
		o, _ := v.Scene().Get(id)
		assert.Equal(t, scene.Dimmed, o.Display(), id)
	}
	assert.Equal(t, scene.Opaque, two.Display())

	require.True(t, v.Animating())
	settle(t, v, time.Unix(100, 0))
	assert.True(t, v.Camera().Target.ApproxEqualThreshold(want.Center, 1e-6))
	dist := v.Camera().Position.Sub(want.Center).Len()
	assert.InDelta(t, want.Radius/tanDeg(camera.PerspectiveFov/2), dist, 1e-6)
}

func TestLoadWithUnmatchedHighlights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Highlighter = PropertyHighlighter{Key: "level", Values: []string{"9"}}
	v := newViewer(t, cfg)
	load(t, v, false, square("a", -2, map[string]any{"level": 1}), square("b", 2, nil))

	require.False(t, v.Selection().HighlightMode())
	before := map[string]scene.DisplayState{}
	for _, o := range v.Scene().Objects() {
		before[o.ID] = o.Display()
		assert.Equal(t, scene.Opaque, o.Display(), o.ID)
	}
	v.Selection().Refresh()
	for _, o := range v.Scene().Objects() {
		assert.Equal(t, before[o.ID], o.Display(), "load state matches a refresh for %s", o.ID)
	}
}

func TestSelectionGaugeFollowsMachine(t *testing.T) {
	reg := prometheus.NewRegistry()
	v := newViewer(t, DefaultConfig(), WithMetrics(reg))
	load(t, v, false, square("a", -2, nil), square("b", 2, nil))
	faceFront(v)

	t0 := time.Unix(100, 0)
	click(v, screenX(-2), t0, false)
	click(v, screenX(2), t0.Add(time.Second), true)
	assert.Equal(t, 2.0, testutil.ToFloat64(v.metrics.SelectionSize))

	cfg := v.Config()
	cfg.Highlighter = PropertyHighlighter{Key: "level", Values: []string{"1"}}
	require.NoError(t, v.Update(cfg))
	load(t, v, false, square("c", 0, map[string]any{"level": 1}))
	assert.Empty(t, v.Selection().Selection())
	assert.Zero(t, testutil.ToFloat64(v.metrics.SelectionSize), "load with highlights clears the selection")
}

func TestSwitchRendererPreservesState(t *testing.T) {
	v := newViewer(t, DefaultConfig())
	load(t, v, false, square("a", -2, nil), square("b", 2, nil))
	faceFront(v)
	click(v, screenX(2), time.Unix(100, 0), false)

	rasterEl := v.Mounted().Element()
	pose := v.Camera().Pose()
	ids := sortedIDs(v.Scene())

	require.NoError(t, v.SwitchRenderer(surface.KindVector))
	assert.Equal(t, surface.KindVector, v.Mounted().Kind())
	assert.Equal(t, pose, v.Camera().Pose())
	assert.Equal(t, ids, sortedIDs(v.Scene()))
	assert.Equal(t, []string{"b"}, v.Selection().Selection())
	assert.Zero(t, rasterEl.Listeners(surface.PointerDown), "listeners moved off the raster element")
	assert.Same(t, v.Mounted().Element(), v.Controls().Element())

	w, h := v.Mounted().Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 200, h)

	click(v, screenX(-2), time.Unix(200, 0), true)
	assert.Equal(t, []string{"b", "a"}, v.Selection().Selection())

	require.NoError(t, v.SwitchRenderer(surface.KindRaster))
	assert.Equal(t, pose, v.Camera().Pose())
	assert.Equal(t, surface.KindRaster, v.Mounted().Kind())
	assert.NoError(t, v.SwitchRenderer(surface.KindRaster), "switching to the mounted kind is a no-op")
}

func TestDoubleClickFramesObject(t *testing.T) {
	v := newViewer(t, DefaultConfig())
	load(t, v, false, square("a", -2, nil), square("b", 2, nil))
	faceFront(v)

	t0 := time.Unix(100, 0)
	click(v, screenX(2), t0, false)
	click(v, screenX(2), t0.Add(100*time.Millisecond), false)
	require.True(t, v.Animating())

	settle(t, v, t0.Add(time.Second))
	b, _ := v.Scene().Get("b")
	assert.True(t, v.Camera().Target.ApproxEqualThreshold(b.Bounds.Center, 1e-6))
}

func TestUnloadAndReload(t *testing.T) {
	v := newViewer(t, DefaultConfig())
	load(t, v, false, square("a", -2, nil), square("b", 2, nil))
	faceFront(v)
	click(v, screenX(-2), time.Unix(100, 0), false)

	v.UnloadAll()
	assert.Zero(t, v.Scene().Len())
	assert.Empty(t, v.Selection().Selection())
	assert.Empty(t, v.Selection().Hovered())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v.Reload(ctx)
	require.NoError(t, v.Wait(ctx))
	assert.Equal(t, []string{"a", "b"}, sortedIDs(v.Scene()))
}

func TestUnloadDropsInFlightResults(t *testing.T) {
	v := newViewer(t, DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	v.Load(ctx, []convert.Source{square("a", -2, nil)}, false)
	v.UnloadAll()
	require.NoError(t, v.Wait(ctx))
	assert.Zero(t, v.Scene().Len())
}

func TestResizeFollowsHost(t *testing.T) {
	v := newViewer(t, DefaultConfig())
	require.NoError(t, v.host.Resize(400, 200))

	w, h := v.Mounted().Size()
	assert.Equal(t, 400, w)
	assert.Equal(t, 200, h)
	assert.InDelta(t, 2, v.Camera().Aspect, 1e-12)

	w, h = v.vector.Size()
	assert.Equal(t, 200, w, "unmounted surface keeps its size")
	assert.Equal(t, 200, h)
}

func TestKeyboardFlag(t *testing.T) {
	v := newViewer(t, DefaultConfig())
	el := v.host.Element()

	el.Dispatch(surface.Event{Type: surface.PointerEnter})
	assert.True(t, v.KeyboardEnabled())
	el.Dispatch(surface.Event{Type: surface.PointerLeave})
	assert.False(t, v.KeyboardEnabled())
}

func TestExport(t *testing.T) {
	v := newViewer(t, DefaultConfig())
	load(t, v, false, square("a", -2, nil), square("b", 2, nil))
	faceFront(v)
	ctx := context.Background()

	var svg bytes.Buffer
	require.NoError(t, v.ExportSVG(ctx, &svg))
	assert.Contains(t, svg.String(), `viewBox="-100 -100 200 200"`)
	assert.Equal(t, 2, bytes.Count(svg.Bytes(), []byte("<path")), "one path per material")

	var png bytes.Buffer
	require.NoError(t, v.ExportPNG(ctx, &png))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))
}

func TestTickRendersMountedSurface(t *testing.T) {
	reg := prometheus.NewRegistry()
	v := newViewer(t, DefaultConfig(), WithMetrics(reg))
	load(t, v, true, square("a", -2, nil))

	settle(t, v, time.Unix(100, 0))
	assert.Greater(t, v.Camera().Far, 0.0)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["viewer_frames_total"])
	assert.True(t, names["viewer_loaded_objects"])
}

func TestResetCamera(t *testing.T) {
	v := newViewer(t, DefaultConfig())
	faceFront(v)

	v.ResetCamera(false)
	assert.Equal(t, camera.DefaultPosition, v.Camera().Position)
	assert.False(t, v.Animating())

	load(t, v, false, square("a", -2, nil))
	v.ResetCamera(true)
	assert.True(t, v.Animating())
}

func sortedIDs(s *scene.Scene) []string {
	ids := s.IDs()
	slices.Sort(ids)
	return ids
}
