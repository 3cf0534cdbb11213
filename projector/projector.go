// Package projector turns a 3D scene into screen-space triangles for a
// camera and casts picking rays into it.
//
// The default [Basic] projector is a small CPU implementation: it has no
// near-plane clipping (triangles with a vertex behind the camera are
// dropped) and sorts by average depth. It is enough for painter's-algorithm
// output on both surfaces and for headless export.
package projector

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/viewer/camera"
	"github.com/gogpu/viewer/scene"
)

// Face is one projected triangle. Vertices are in normalized device
// coordinates: x and y in [-1, 1] when visible, z growing with distance.
type Face struct {
	V1, V2, V3 mgl64.Vec3
	Material   *scene.Material

	// ObjectID is the owning object's id. Helpers have an empty id.
	ObjectID string

	// Depth is the mean NDC z of the three vertices.
	Depth float64
}

// RenderData is the projector output for one frame.
type RenderData struct {
	Elements []Face
}

// Projector projects a scene for a camera.
type Projector interface {
	// ProjectScene returns the visible faces of s. When sortObjects is set
	// objects are emitted far to near; when sortElements is set the whole
	// face list is sorted far to near.
	ProjectScene(s *scene.Scene, cam *camera.Camera, sortObjects, sortElements bool) RenderData
}

// Basic is the default Projector.
type Basic struct{}

var _ Projector = Basic{}

// New returns the default projector.
func New() Basic { return Basic{} }

type drawItem struct {
	obj   *scene.Object
	depth float64
}

// ProjectScene implements Projector.
func (Basic) ProjectScene(s *scene.Scene, cam *camera.Camera, sortObjects, sortElements bool) RenderData {
	if s == nil || cam == nil {
		return RenderData{}
	}
	vp := cam.ViewProjection()

	objs := s.Drawables()
	items := make([]drawItem, 0, len(objs))
	for _, o := range objs {
		if !o.Mesh.Valid() || o.Material == nil {
			continue
		}
		c := vp.Mul4x1(o.Bounds.Center.Vec4(1))
		items = append(items, drawItem{obj: o, depth: c[2] / nonZero(c[3])})
	}
	if sortObjects {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].depth > items[j].depth
		})
	}

	var out RenderData
	for _, it := range items {
		m := it.obj.Mesh
		for i := range m.Triangles {
			a, b, c := m.Triangle(i)
			f, ok := projectTriangle(vp, a, b, c)
			if !ok {
				continue
			}
			f.Material = it.obj.Material
			f.ObjectID = it.obj.ID
			out.Elements = append(out.Elements, f)
		}
	}
	if sortElements {
		sort.SliceStable(out.Elements, func(i, j int) bool {
			return out.Elements[i].Depth > out.Elements[j].Depth
		})
	}
	return out
}

func projectTriangle(vp mgl64.Mat4, a, b, c mgl64.Vec3) (Face, bool) {
	var ndc [3]mgl64.Vec3
	for i, p := range [3]mgl64.Vec3{a, b, c} {
		clip := vp.Mul4x1(p.Vec4(1))
		if clip[3] <= 0 {
			return Face{}, false
		}
		ndc[i] = clip.Vec3().Mul(1 / clip[3])
	}
	if outside(ndc) {
		return Face{}, false
	}
	return Face{
		V1:    ndc[0],
		V2:    ndc[1],
		V3:    ndc[2],
		Depth: (ndc[0][2] + ndc[1][2] + ndc[2][2]) / 3,
	}, true
}

// outside reports whether all three vertices lie beyond the same clip
// plane.
func outside(v [3]mgl64.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if v[0][axis] > 1 && v[1][axis] > 1 && v[2][axis] > 1 {
			return true
		}
		if v[0][axis] < -1 && v[1][axis] < -1 && v[2][axis] < -1 {
			return true
		}
	}
	return false
}

func nonZero(w float64) float64 {
	if w == 0 {
		return 1e-12
	}
	return w
}
