package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// Overdraw scales every computed framing sphere so the silhouette of the
	// framed objects is never clipped by the viewport.
	Overdraw = 1.6

	// MinRadius is the floor for framing spheres. It is also the radius of
	// the fallback sphere returned when nothing passes a filter.
	MinRadius = 1.0
)

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max mgl64.Vec3
}

// EmptyBox returns a box that any expansion replaces.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box encloses nothing.
func (b Box) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// ExpandByPoint returns the box grown to contain p.
func (b Box) ExpandByPoint(p mgl64.Vec3) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// ExpandBySphere returns the box grown to contain the cube around s.
func (b Box) ExpandBySphere(s Sphere) Box {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return b.ExpandByPoint(s.Center.Sub(r)).ExpandByPoint(s.Center.Add(r))
}

// Center returns the box midpoint.
func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// MaxExtent returns the length of the box's longest axis.
func (b Box) MaxExtent() float64 {
	d := b.Max.Sub(b.Min)
	return math.Max(d[0], math.Max(d[1], d[2]))
}

// Filter selects the objects a bounding sphere is computed over.
type Filter func(*Object) bool

// All passes every object.
func All(*Object) bool { return true }

// Highlighter is the externally supplied highlight predicate.
type Highlighter interface {
	// IsHighlighted reports whether o is in focus.
	IsHighlighted(o *Object) bool

	// HasHighlights reports whether the host currently has a highlight
	// active at all.
	HasHighlights() bool
}

// DefaultFraming passes loaded objects whose base color is not the
// placeholder color. A nil placeholder excludes nothing.
func DefaultFraming(placeholder *colorful.Color) Filter {
	if placeholder == nil {
		return func(o *Object) bool { return o.Mesh != nil }
	}
	hex := placeholder.Clamped().Hex()
	return func(o *Object) bool {
		return o.Mesh != nil && o.BaseColor().Clamped().Hex() != hex
	}
}

// Focused passes objects that are currently opaque and, while the
// highlighter has highlights, highlighted.
func Focused(h Highlighter) Filter {
	return func(o *Object) bool {
		if o.Mesh == nil || o.Material == nil || o.Material.Transparent {
			return false
		}
		if h != nil && h.HasHighlights() {
			return h.IsHighlighted(o)
		}
		return true
	}
}

// BoundingSphere returns the margin-scaled sphere enclosing every object
// that passes filter. When nothing passes, it returns a sphere of MinRadius
// at the origin.
//
// For a fixed filter the radius never shrinks as objects are added: the box
// only grows.
func BoundingSphere(objs []*Object, filter Filter) Sphere {
	if filter == nil {
		filter = All
	}
	box := EmptyBox()
	for _, o := range objs {
		if !filter(o) {
			continue
		}
		box = box.ExpandBySphere(o.Bounds)
	}
	if box.IsEmpty() {
		return Sphere{Radius: MinRadius}
	}
	r := box.MaxExtent() / 2 * Overdraw
	return Sphere{
		Center: box.Center(),
		Radius: math.Max(r, MinRadius),
	}
}
