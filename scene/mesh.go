package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an indexed triangle list in world coordinates.
type Mesh struct {
	Positions []mgl64.Vec3
	Triangles [][3]int
}

// Valid reports whether every triangle index refers to a position.
func (m *Mesh) Valid() bool {
	if m == nil {
		return false
	}
	n := len(m.Positions)
	for _, t := range m.Triangles {
		for _, i := range t {
			if i < 0 || i >= n {
				return false
			}
		}
	}
	return true
}

// Triangle returns the three corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl64.Vec3) {
	t := m.Triangles[i]
	return m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]]
}

// BoundingSphere returns the sphere centered on the mesh's bounding box
// that encloses every position.
func (m *Mesh) BoundingSphere() Sphere {
	if m == nil || len(m.Positions) == 0 {
		return Sphere{}
	}
	box := EmptyBox()
	for _, p := range m.Positions {
		box = box.ExpandByPoint(p)
	}
	center := box.Center()
	var r2 float64
	for _, p := range m.Positions {
		r2 = math.Max(r2, p.Sub(center).LenSqr())
	}
	return Sphere{Center: center, Radius: math.Sqrt(r2)}
}
