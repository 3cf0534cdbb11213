// Package orbit binds pan and zoom input on a surface element to a camera
// orbiting its target. Rotation is not supported: the viewer keeps a fixed
// viewing direction and changes it only through framing.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/viewer/camera"
	"github.com/gogpu/viewer/surface"
)

// Defaults.
const (
	DefaultZoomSpeed   = 1.0
	DefaultMinDistance = 1e-3
)

// Controls moves a camera in response to pointer input.
//
// Controls is not safe for concurrent use.
type Controls struct {
	EnablePan  bool
	EnableZoom bool

	// ScreenSpacePanning pans in the screen plane. When false, panning
	// moves along the plane orthogonal to the camera's up vector.
	ScreenSpacePanning bool

	ZoomSpeed   float64
	MinDistance float64

	cam     *camera.Camera
	el      *surface.Element
	handles []surface.Handle

	dragging     bool
	lastX, lastY float64
}

// Bind attaches new controls for cam to el.
func Bind(cam *camera.Camera, el *surface.Element) *Controls {
	c := &Controls{
		EnablePan:          true,
		EnableZoom:         true,
		ScreenSpacePanning: true,
		ZoomSpeed:          DefaultZoomSpeed,
		MinDistance:        DefaultMinDistance,
		cam:                cam,
		el:                 el,
	}
	c.handles = []surface.Handle{
		el.On(surface.PointerDown, c.onDown),
		el.On(surface.PointerMove, c.onMove),
		el.On(surface.PointerUp, c.onUp),
		el.On(surface.PointerLeave, c.onUp),
		el.On(surface.Wheel, c.onWheel),
	}
	return c
}

// Element returns the bound element, nil after Unbind.
func (c *Controls) Element() *surface.Element { return c.el }

// Unbind removes every listener. The controls are unusable afterwards.
func (c *Controls) Unbind() {
	for _, h := range c.handles {
		h.Remove()
	}
	c.handles = nil
	c.el = nil
	c.dragging = false
}

// Dragging reports whether a pan drag is in progress.
func (c *Controls) Dragging() bool { return c.dragging }

// Update re-aims the camera at its target. It runs once per tick and after
// every animated target change.
func (c *Controls) Update() {
	c.cam.LookAt(c.cam.Target)
}

func (c *Controls) onDown(ev surface.Event) {
	c.dragging = true
	c.lastX, c.lastY = ev.X, ev.Y
}

func (c *Controls) onUp(surface.Event) {
	c.dragging = false
}

func (c *Controls) onMove(ev surface.Event) {
	if !c.dragging || !c.EnablePan {
		return
	}
	dx, dy := ev.X-c.lastX, ev.Y-c.lastY
	c.lastX, c.lastY = ev.X, ev.Y
	c.Pan(dx, dy)
}

func (c *Controls) onWheel(ev surface.Event) {
	if !c.EnableZoom || ev.Delta == 0 {
		return
	}
	scale := math.Pow(0.95, c.ZoomSpeed)
	if ev.Delta > 0 {
		c.Dolly(1 / scale)
	} else {
		c.Dolly(scale)
	}
}

// Pan moves camera and target together by a pointer delta in pixels, so
// that the point under the pointer follows it.
func (c *Controls) Pan(dx, dy float64) {
	if c.el == nil {
		return
	}
	_, h := c.el.Size()
	if h <= 0 {
		return
	}
	dist := c.cam.Position.Sub(c.cam.Target).Len()
	dist *= math.Tan(mgl64.DegToRad(c.cam.Fov) / 2)

	o := c.cam.Orientation()
	left := o.Col(0).Mul(-2 * dx * dist / float64(h))

	var up mgl64.Vec3
	if c.ScreenSpacePanning {
		up = o.Col(1)
	} else {
		up = c.cam.Up.Cross(o.Col(0)).Normalize()
	}
	up = up.Mul(2 * dy * dist / float64(h))

	offset := left.Add(up)
	c.cam.Position = c.cam.Position.Add(offset)
	c.cam.Target = c.cam.Target.Add(offset)
}

// Dolly scales the camera's distance to its target by scale.
func (c *Controls) Dolly(scale float64) {
	if scale <= 0 {
		return
	}
	off := c.cam.Position.Sub(c.cam.Target)
	if off.Len() == 0 {
		return
	}
	d := math.Max(off.Len()*scale, c.MinDistance)
	c.cam.Position = c.cam.Target.Add(off.Normalize().Mul(d))
}
