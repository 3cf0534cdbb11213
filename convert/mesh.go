package convert

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/viewer/scene"
)

// DefaultColor is the material color of converted objects before any color
// resolver runs.
var DefaultColor = colorful.Color{R: 0.6, G: 0.6, B: 0.6}

// ErrInvalidMesh is returned for face lists that do not match the vertex
// array.
var ErrInvalidMesh = errors.New("convert: invalid mesh")

// ConvertMesh converts a "Mesh" domain object.
func ConvertMesh(_ context.Context, src Source) (*scene.Object, error) {
	mesh, err := BuildMesh(src.Vertices, src.Faces)
	if err != nil {
		return nil, err
	}
	return scene.NewObject(src.ID, mesh, scene.NewMaterial(DefaultColor)), nil
}

// ConvertBrep converts a "Brep" domain object through its display mesh.
func ConvertBrep(ctx context.Context, src Source) (*scene.Object, error) {
	if src.DisplayValue == nil {
		return nil, ErrNoGeometry
	}
	return ConvertMesh(ctx, *src.DisplayValue)
}

// BuildMesh decodes a flat vertex array and a marker-prefixed face list.
// Quads and n-gons are fanned into triangles.
func BuildMesh(vertices []float64, faces []int) (*scene.Mesh, error) {
	if len(vertices) == 0 || len(faces) == 0 {
		return nil, ErrNoGeometry
	}
	if len(vertices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d coordinates is not a multiple of 3", ErrInvalidMesh, len(vertices))
	}

	m := &scene.Mesh{Positions: make([]mgl64.Vec3, len(vertices)/3)}
	for i := range m.Positions {
		m.Positions[i] = mgl64.Vec3{vertices[3*i], vertices[3*i+1], vertices[3*i+2]}
	}

	for i := 0; i < len(faces); {
		n := faces[i]
		switch n {
		case 0:
			n = 3
		case 1:
			n = 4
		}
		if n < 3 {
			return nil, fmt.Errorf("%w: face marker %d at %d", ErrInvalidMesh, faces[i], i)
		}
		i++
		if i+n > len(faces) {
			return nil, fmt.Errorf("%w: truncated face at %d", ErrInvalidMesh, i-1)
		}
		idx := faces[i : i+n]
		for k := 1; k+1 < n; k++ {
			m.Triangles = append(m.Triangles, [3]int{idx[0], idx[k], idx[k+1]})
		}
		i += n
	}

	if !m.Valid() {
		return nil, fmt.Errorf("%w: face index out of range", ErrInvalidMesh)
	}
	return m, nil
}
