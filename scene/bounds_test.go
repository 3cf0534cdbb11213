package scene

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func sphereObject(id string, center mgl64.Vec3, radius float64) *Object {
	o := NewObject(id, &Mesh{}, NewMaterial(colorful.Color{R: 0.5, G: 0.5, B: 0.5}))
	o.Bounds = Sphere{Center: center, Radius: radius}
	return o
}

type stubHighlighter struct {
	active bool
	ids    map[string]bool
}

func (h stubHighlighter) IsHighlighted(o *Object) bool { return h.ids[o.ID] }
func (h stubHighlighter) HasHighlights() bool          { return h.active }

func TestBoundingSphereSingle(t *testing.T) {
	objs := []*Object{sphereObject("a", mgl64.Vec3{1, 2, 3}, 2)}
	s := BoundingSphere(objs, All)

	assert.InDelta(t, 1, s.Center[0], 1e-9)
	assert.InDelta(t, 2, s.Center[1], 1e-9)
	assert.InDelta(t, 3, s.Center[2], 1e-9)
	assert.InDelta(t, 2*Overdraw, s.Radius, 1e-9)
}

func TestBoundingSphereUnion(t *testing.T) {
	objs := []*Object{
		sphereObject("a", mgl64.Vec3{-5, 0, 0}, 1),
		sphereObject("b", mgl64.Vec3{5, 0, 0}, 1),
	}
	s := BoundingSphere(objs, All)

	// box spans x ∈ [-6, 6], so half the largest extent is 6
	assert.InDelta(t, 0, s.Center[0], 1e-9)
	assert.InDelta(t, 6*Overdraw, s.Radius, 1e-9)
}

func TestBoundingSphereFallback(t *testing.T) {
	objs := []*Object{sphereObject("a", mgl64.Vec3{9, 9, 9}, 3)}
	none := func(*Object) bool { return false }

	for name, in := range map[string][]*Object{"empty": nil, "filtered": objs} {
		t.Run(name, func(t *testing.T) {
			s := BoundingSphere(in, none)
			assert.Equal(t, mgl64.Vec3{}, s.Center)
			assert.Equal(t, MinRadius, s.Radius)
		})
	}
}

func TestBoundingSphereRadiusFloor(t *testing.T) {
	objs := []*Object{sphereObject("tiny", mgl64.Vec3{}, 0.01)}
	assert.Equal(t, MinRadius, BoundingSphere(objs, All).Radius)
}

func TestBoundingSphereMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	filter := func(o *Object) bool { return o.ID[0] != 'x' }

	var objs []*Object
	prev := 0.0
	for i := 0; i < 200; i++ {
		id := "o"
		if i%5 == 0 {
			id = "x"
		}
		c := mgl64.Vec3{rng.NormFloat64() * 20, rng.NormFloat64() * 20, rng.NormFloat64() * 20}
		objs = append(objs, sphereObject(id, c, rng.Float64()*4))

		r := BoundingSphere(objs, filter).Radius
		assert.GreaterOrEqual(t, r, prev, "radius shrank after adding object %d", i)
		prev = r
	}
}

func TestDefaultFraming(t *testing.T) {
	placeholder, _ := colorful.Hex("#f0f0f0")
	room := NewObject("room", &Mesh{}, NewMaterial(placeholder))
	wall := NewObject("wall", &Mesh{}, NewMaterial(colorful.Color{R: 1}))
	empty := NewObject("empty", nil, NewMaterial(colorful.Color{R: 1}))

	f := DefaultFraming(&placeholder)
	assert.False(t, f(room))
	assert.True(t, f(wall))
	assert.False(t, f(empty))

	// a hovered placeholder object is still a placeholder
	room.Hover(colorful.Color{G: 1})
	assert.False(t, f(room))

	assert.True(t, DefaultFraming(nil)(room))
}

func TestFocused(t *testing.T) {
	a := NewObject("a", &Mesh{}, NewMaterial(colorful.Color{}))
	b := NewObject("b", &Mesh{}, NewMaterial(colorful.Color{}))
	b.SetEmphasis(EmphasisDimmed)

	f := Focused(stubHighlighter{active: true, ids: map[string]bool{"a": true, "b": true}})
	assert.True(t, f(a))
	assert.False(t, f(b), "dimmed objects are not focused")

	f = Focused(stubHighlighter{active: true, ids: map[string]bool{"b": true}})
	assert.False(t, f(a), "opaque but not highlighted")

	f = Focused(stubHighlighter{})
	assert.True(t, f(a), "without highlights every opaque object is focused")
	assert.True(t, Focused(nil)(a))
}

func TestMeshBoundingSphere(t *testing.T) {
	m := &Mesh{Positions: []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}, {2, 2, 0}}}
	s := m.BoundingSphere()

	assert.InDelta(t, 1, s.Center[0], 1e-9)
	assert.InDelta(t, 1, s.Center[1], 1e-9)
	assert.InDelta(t, 1.41421356, s.Radius, 1e-6)
	assert.Equal(t, Sphere{}, (&Mesh{}).BoundingSphere())
}

func TestMeshValid(t *testing.T) {
	m := &Mesh{
		Positions: []mgl64.Vec3{{}, {1, 0, 0}, {0, 1, 0}},
		Triangles: [][3]int{{0, 1, 2}},
	}
	assert.True(t, m.Valid())

	m.Triangles = append(m.Triangles, [3]int{0, 1, 3})
	assert.False(t, m.Valid())

	var nilMesh *Mesh
	assert.False(t, nilMesh.Valid())
}
