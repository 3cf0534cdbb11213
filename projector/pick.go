package projector

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/viewer/camera"
	"github.com/gogpu/viewer/scene"
)

// Hit is one object intersected by a picking ray.
type Hit struct {
	// ID is the object id, empty for helpers.
	ID       string
	Distance float64
}

const epsilon = 1e-9

// Pick casts a ray through the normalized device coordinates (x, y) and
// returns the intersected drawables nearest first, one hit per object.
func Pick(s *scene.Scene, cam *camera.Camera, x, y float64) []Hit {
	if s == nil || cam == nil {
		return nil
	}
	origin, dir := cam.Ray(x, y)

	var hits []Hit
	for _, o := range s.Drawables() {
		if !o.Mesh.Valid() || !hitsSphere(origin, dir, o.Bounds) {
			continue
		}
		best := math.Inf(1)
		for i := range o.Mesh.Triangles {
			a, b, c := o.Mesh.Triangle(i)
			if t, ok := intersect(origin, dir, a, b, c); ok && t < best {
				best = t
			}
		}
		if !math.IsInf(best, 1) {
			hits = append(hits, Hit{ID: o.ID, Distance: best})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func hitsSphere(origin, dir mgl64.Vec3, s scene.Sphere) bool {
	oc := s.Center.Sub(origin)
	t := oc.Dot(dir)
	d2 := oc.LenSqr() - t*t
	return d2 <= s.Radius*s.Radius+epsilon
}

// intersect is the Möller–Trumbore ray/triangle test without back-face
// culling.
func intersect(origin, dir, a, b, c mgl64.Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	inv := 1 / det
	s := origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t <= epsilon {
		return 0, false
	}
	return t, true
}
