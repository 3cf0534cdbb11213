package camera

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/viewer/scene"
)

// Transition durations.
const (
	ObjectDuration  = 450 * time.Millisecond
	ExtentsDuration = 600 * time.Millisecond
)

// MinObjectRadius is the smallest object sphere framed by FrameObject.
// Smaller spheres are framed as ObjectRadiusFloor.
const (
	MinObjectRadius   = 1.0
	ObjectRadiusFloor = 2.0
)

// Pose is the animated state of the camera.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Target   mgl64.Vec3
}

// FramePose returns the pose that fits s into the camera's field of view
// without changing the viewing direction. margin scales the distance.
func FramePose(c *Camera, s scene.Sphere, margin float64) Pose {
	if margin <= 0 {
		margin = 1
	}
	offset := s.Radius / math.Tan(math.Pi/180*c.Fov/2) * margin
	return Pose{
		Position: s.Center.Add(c.Direction().Mul(offset)),
		Rotation: c.Rotation,
		Target:   s.Center,
	}
}

// ObjectSphere returns the sphere FrameObject uses for a single object.
func ObjectSphere(s scene.Sphere) scene.Sphere {
	if s.Radius < MinObjectRadius {
		s.Radius = ObjectRadiusFloor
	}
	return s
}

// Animate schedules a transition from the camera's current pose to p.
// onTarget runs after every target sample, after the target is stored.
func Animate(a *Animator, c *Camera, p Pose, d time.Duration, onTarget func()) {
	from := c.Pose()
	a.Start(ChannelPosition, from.Position, p.Position, d, QuadraticInOut, func(v mgl64.Vec3) {
		c.Position = v
	})
	a.Start(ChannelRotation, from.Rotation, p.Rotation, d, QuadraticInOut, func(v mgl64.Vec3) {
		c.Rotation = v
	})
	a.Start(ChannelTarget, from.Target, p.Target, d, QuadraticInOut, func(v mgl64.Vec3) {
		c.Target = v
		if onTarget != nil {
			onTarget()
		}
	})
}
