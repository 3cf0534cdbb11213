package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mode selects the projection style.
type Mode uint8

const (
	// Perspective is a regular perspective camera.
	Perspective Mode = iota

	// Orthographic approximates a parallel projection with a 1° field of
	// view.
	Orthographic
)

// Field of view per mode, in degrees.
const (
	PerspectiveFov  = 75.0
	OrthographicFov = 1.0
)

// Default clip planes. Far is recomputed every tick from the scene sphere.
const (
	DefaultNear = 0.1
	DefaultFar  = 100000.0
)

var (
	// DefaultPosition is where Reset places the camera.
	DefaultPosition = mgl64.Vec3{20, 20, 20}

	// DefaultUp is the camera up vector.
	DefaultUp = mgl64.Vec3{0, 0, 1}
)

// String returns the mode name used in configuration.
func (m Mode) String() string {
	if m == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// ParseMode converts a configuration value to a Mode. Unknown values are
// Perspective.
func ParseMode(s string) Mode {
	if s == "orthographic" {
		return Orthographic
	}
	return Perspective
}

// Camera is a perspective camera with Euler XYZ rotation.
//
// Target is the orbit pivot. It is part of the camera so that a renderer
// switch, which rebuilds the orbit binding, never loses it.
type Camera struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	Fov    float64
	Aspect float64
	Near   float64
	Far    float64

	mode Mode
}

// New creates a camera in the default pose.
func New(mode Mode, aspect float64) *Camera {
	c := &Camera{}
	c.Reset(mode, aspect)
	return c
}

// Mode returns the projection mode.
func (c *Camera) Mode() Mode { return c.mode }

// Reset restores the mode's projection parameters and the default pose
// looking at the origin.
func (c *Camera) Reset(mode Mode, aspect float64) {
	c.mode = mode
	c.Fov = PerspectiveFov
	if mode == Orthographic {
		c.Fov = OrthographicFov
	}
	c.SetAspect(aspect)
	c.Near = DefaultNear
	c.Far = DefaultFar
	c.Up = DefaultUp
	c.Position = DefaultPosition
	c.Target = mgl64.Vec3{}
	c.LookAt(c.Target)
}

// SetAspect sets the aspect ratio. Non-positive or non-finite values are
// replaced with 1.
func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	c.Aspect = aspect
}

// Orientation returns the rotation matrix for the Euler XYZ angles.
func (c *Camera) Orientation() mgl64.Mat3 {
	return mgl64.Rotate3DX(c.Rotation[0]).
		Mul3(mgl64.Rotate3DY(c.Rotation[1])).
		Mul3(mgl64.Rotate3DZ(c.Rotation[2]))
}

// Direction returns the camera's local +Z axis in world space. The camera
// looks down -Z, so this points from the target back towards the camera.
func (c *Camera) Direction() mgl64.Vec3 {
	return c.Orientation().Mul3x1(mgl64.Vec3{0, 0, 1})
}

// LookAt rotates the camera so that it faces target.
func (c *Camera) LookAt(target mgl64.Vec3) {
	c.Rotation = EulerXYZ(lookRotation(c.Position, target, c.Up))
}

// Pose returns the animated channels.
func (c *Camera) Pose() Pose {
	return Pose{Position: c.Position, Rotation: c.Rotation, Target: c.Target}
}

// SetPose applies p immediately.
func (c *Camera) SetPose(p Pose) {
	c.Position = p.Position
	c.Rotation = p.Rotation
	c.Target = p.Target
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	world := mgl64.Translate3D(c.Position[0], c.Position[1], c.Position[2]).
		Mul4(c.Orientation().Mat4())
	return world.Inv()
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// UpdateFar sets the far plane so that a sphere of the given radius
// centered at center stays inside the frustum from the current position.
func (c *Camera) UpdateFar(center mgl64.Vec3, radius float64) {
	dist := c.Position.Sub(center).Len()
	far := 3*radius + 3*dist
	if far <= c.Near {
		far = c.Near * 2
	}
	c.Far = far
}

// Ray returns the world-space origin and unit direction of the ray through
// the normalized device coordinates (x, y).
func (c *Camera) Ray(x, y float64) (origin, dir mgl64.Vec3) {
	inv := c.ViewProjection().Inv()
	near := unproject(inv, mgl64.Vec4{x, y, -1, 1})
	far := unproject(inv, mgl64.Vec4{x, y, 1, 1})
	return c.Position, far.Sub(near).Normalize()
}

func unproject(inv mgl64.Mat4, p mgl64.Vec4) mgl64.Vec3 {
	w := inv.Mul4x1(p)
	if w[3] == 0 {
		return w.Vec3()
	}
	return w.Vec3().Mul(1 / w[3])
}

// lookRotation builds the orientation whose -Z axis points from eye to
// target.
func lookRotation(eye, target, up mgl64.Vec3) mgl64.Mat3 {
	z := eye.Sub(target)
	if z.LenSqr() == 0 {
		z = mgl64.Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LenSqr() == 0 {
		// up and view direction are parallel: nudge the view direction
		if math.Abs(up[2]) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)
	return mgl64.Mat3FromCols(x, y, z)
}

// EulerXYZ decomposes a pure rotation matrix into XYZ Euler angles.
func EulerXYZ(m mgl64.Mat3) mgl64.Vec3 {
	m13 := mgl64.Clamp(m.At(0, 2), -1, 1)
	y := math.Asin(m13)
	if math.Abs(m13) < 0.9999999 {
		return mgl64.Vec3{
			math.Atan2(-m.At(1, 2), m.At(2, 2)),
			y,
			math.Atan2(-m.At(0, 1), m.At(0, 0)),
		}
	}
	return mgl64.Vec3{math.Atan2(m.At(2, 1), m.At(1, 1)), y, 0}
}
