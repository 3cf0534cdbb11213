package camera

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/gogpu/viewer/scene"
)

func TestFramePoseOffset(t *testing.T) {
	c := New(Perspective, 1)
	s := scene.Sphere{Center: mgl64.Vec3{1, 2, 3}, Radius: 4}

	p := FramePose(c, s, 1)

	want := 4 / math.Tan(math.Pi/180*PerspectiveFov/2)
	assert.InDelta(t, want, p.Position.Sub(s.Center).Len(), 1e-9)
	assertVec(t, c.Direction(), p.Position.Sub(s.Center).Normalize(), 1e-9)
	assert.Equal(t, s.Center, p.Target)
	assert.Equal(t, c.Rotation, p.Rotation)
}

func TestFramePoseOrthographicIsFarther(t *testing.T) {
	s := scene.Sphere{Radius: 1}
	persp := FramePose(New(Perspective, 1), s, 1)
	ortho := FramePose(New(Orthographic, 1), s, 1)
	assert.Greater(t, ortho.Position.Len(), persp.Position.Len())
}

func TestObjectSphereFloor(t *testing.T) {
	assert.Equal(t, ObjectRadiusFloor, ObjectSphere(scene.Sphere{Radius: 0.5}).Radius)
	assert.Equal(t, 3.0, ObjectSphere(scene.Sphere{Radius: 3}).Radius)
}

func TestAnimateReachesPose(t *testing.T) {
	c := New(Perspective, 1)
	var a Animator
	p := FramePose(c, scene.Sphere{Center: mgl64.Vec3{5, 0, 0}, Radius: 1}, 1)

	calls := 0
	Animate(&a, c, p, ExtentsDuration, func() { calls++ })

	t0 := time.Unix(0, 0)
	a.Advance(t0)
	assert.Equal(t, DefaultPosition, c.Position, "first sample is the start pose")

	a.Advance(t0.Add(ExtentsDuration))
	assert.Equal(t, p, c.Pose())
	assert.Equal(t, 2, calls)
	assert.False(t, a.Active())
}
