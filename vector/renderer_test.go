// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vector

import (
	"bytes"
	"encoding/xml"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/viewer/camera"
	"github.com/gogpu/viewer/projector"
	"github.com/gogpu/viewer/scene"
)

type fixedProjector struct {
	faces []projector.Face
}

func (p fixedProjector) ProjectScene(*scene.Scene, *camera.Camera, bool, bool) projector.RenderData {
	return projector.RenderData{Elements: p.faces}
}

func newTestRenderer(faces []projector.Face, opts ...Option) *Renderer {
	opts = append([]Option{WithProjector(fixedProjector{faces: faces})}, opts...)
	return NewRenderer(200, 200, opts...)
}

func TestRendererSquareIsOnePath(t *testing.T) {
	m := scene.NewMaterial(colorful.Color{R: 1})
	r := newTestRenderer(squareFaces(m))
	r.LineWeight = 0

	require.NoError(t, r.Render(scene.New(), camera.New(camera.Perspective, 1)))

	paths := r.Document().Paths()
	require.Len(t, paths, 1)
	assert.Equal(t, "fill:#ff0000;fill-opacity:1", paths[0].Style)
	assert.Equal(t, "evenodd", paths[0].FillRule)
	assert.Equal(t, Stats{Faces: 2, Groups: 1, Rings: 1}, r.Stats())
}

func TestRendererDegenerateFallsBack(t *testing.T) {
	m := scene.NewMaterial(colorful.Color{})
	tests := []struct {
		name  string
		faces []projector.Face
	}{
		{"zero area", []projector.Face{
			face(m, mgl64.Vec2{0, 0}, mgl64.Vec2{0.1, 0.1}, mgl64.Vec2{0.2, 0.2}),
			face(m, mgl64.Vec2{0, 0}, mgl64.Vec2{-0.1, -0.1}, mgl64.Vec2{-0.2, -0.2}),
		}},
		{"nan", []projector.Face{
			face(m, mgl64.Vec2{0, 0}, mgl64.Vec2{math.NaN(), 0}, mgl64.Vec2{0, 0.5}),
			face(m, mgl64.Vec2{0, 0}, mgl64.Vec2{0.5, 0}, mgl64.Vec2{0, 0.5}),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(tt.faces)
			require.NotPanics(t, func() {
				require.NoError(t, r.Render(scene.New(), camera.New(camera.Perspective, 1)))
			})
			assert.Equal(t, 2, r.Stats().Rings)
			assert.Equal(t, 1, r.Stats().Fallbacks)

			want := make([]Ring, len(tt.faces))
			for i := range tt.faces {
				want[i] = faceRing(&tt.faces[i], 100, 100)
			}
			paths := r.Document().Paths()
			require.Len(t, paths, 1)
			assert.Equal(t, PathData(want, r.Precision()), paths[0].D, "original rings, unmerged")
			assert.Empty(t, paths[0].FillRule)
		})
	}
}

func TestRendererFallbackOnPanicAndInflation(t *testing.T) {
	m := scene.NewMaterial(colorful.Color{})
	tests := []struct {
		name string
		u    Unioner
	}{
		{"panic", UnionFunc(func([]Ring) ([]Ring, error) { panic("boom") })},
		{"inflation", UnionFunc(func(in []Ring) ([]Ring, error) {
			return append(append([]Ring{}, in...), in[0]), nil
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(squareFaces(m), WithUnioner(tt.u))
			require.NotPanics(t, func() {
				_ = r.Render(scene.New(), camera.New(camera.Perspective, 1))
			})
			assert.Equal(t, 2, r.Stats().Rings)
			assert.Equal(t, 1, r.Stats().Fallbacks)
		})
	}
}

func TestRendererStyle(t *testing.T) {
	m := scene.NewMaterial(colorful.Color{G: 1})
	m.Opacity = 0.1
	r := newTestRenderer(squareFaces(m))
	r.LineWeight = 2.5
	r.LineColor = colorful.Color{B: 1}

	require.NoError(t, r.Render(scene.New(), camera.New(camera.Perspective, 1)))
	assert.Equal(t,
		"fill:#00ff00;fill-opacity:0.1;stroke:#0000ff;stroke-width:2.5",
		r.Document().Paths()[0].Style)
}

func TestRendererPrecision(t *testing.T) {
	m := scene.NewMaterial(colorful.Color{})
	faces := []projector.Face{
		face(m, mgl64.Vec2{0.0123456, 0}, mgl64.Vec2{0.5, 0}, mgl64.Vec2{0.5, 0.5}),
	}
	r := newTestRenderer(faces)
	r.SetPrecision(2)
	require.NoError(t, r.Render(scene.New(), camera.New(camera.Perspective, 1)))
	assert.Contains(t, r.Document().Paths()[0].D, "1.23,")

	r.SetPrecision(-5)
	assert.Equal(t, -1, r.Precision())
	require.NoError(t, r.Render(scene.New(), camera.New(camera.Perspective, 1)))
	assert.NotContains(t, r.Document().Paths()[0].D, "1.23,")
}

func TestRendererNilCameraIsNoop(t *testing.T) {
	m := scene.NewMaterial(colorful.Color{})
	r := newTestRenderer(squareFaces(m))
	require.NoError(t, r.Render(scene.New(), camera.New(camera.Perspective, 1)))
	before := r.Document().Children()

	assert.ErrorIs(t, r.Render(scene.New(), nil), ErrInvalidCamera)
	assert.Equal(t, before, r.Document().Children())
}

func TestRendererClearing(t *testing.T) {
	m := scene.NewMaterial(colorful.Color{})
	cam := camera.New(camera.Perspective, 1)
	title := &Element{XMLName: xml.Name{Local: "title"}, Text: "plan"}

	t.Run("background keeps other nodes", func(t *testing.T) {
		r := newTestRenderer(squareFaces(m))
		r.Document().Append(title)
		s := scene.New()
		bg := colorful.Color{R: 1, G: 1, B: 1}
		s.Background = &bg

		require.NoError(t, r.Render(s, cam))
		require.NoError(t, r.Render(s, cam))

		assert.Len(t, r.Document().Children(), 2)
		assert.Same(t, title, r.Document().Children()[0])
		assert.Equal(t, "#ffffff", r.Document().Background)
	})

	t.Run("auto clear removes everything", func(t *testing.T) {
		r := newTestRenderer(squareFaces(m))
		r.Document().Append(title)

		require.NoError(t, r.Render(scene.New(), cam))
		assert.Len(t, r.Document().Children(), 1)
		assert.Len(t, r.Document().Paths(), 1)
	})

	t.Run("without auto clear frames accumulate", func(t *testing.T) {
		r := newTestRenderer(squareFaces(m))
		r.AutoClear = false

		require.NoError(t, r.Render(scene.New(), cam))
		require.NoError(t, r.Render(scene.New(), cam))
		assert.Len(t, r.Document().Paths(), 2)
	})
}

func TestRendererReusesPoolHandles(t *testing.T) {
	m := scene.NewMaterial(colorful.Color{})
	r := newTestRenderer(squareFaces(m), WithPoolCapacity(4))
	cam := camera.New(camera.Perspective, 1)

	require.NoError(t, r.Render(scene.New(), cam))
	first := r.Document().Paths()[0]
	require.NoError(t, r.Render(scene.New(), cam))
	assert.Same(t, first, r.Document().Paths()[0])

	r.Teardown()
	assert.Empty(t, r.Document().Children())
	require.NoError(t, r.Render(scene.New(), cam))
	assert.NotSame(t, first, r.Document().Paths()[0])
}

func TestPathPoolCapacity(t *testing.T) {
	p := NewPathPool(2)
	assert.Equal(t, 2, p.Cap())
	assert.Same(t, p.Get(1), p.Get(1))
	assert.NotSame(t, p.Get(2), p.Get(2))
	assert.Equal(t, 1, p.Created())
	assert.Equal(t, DefaultPoolCapacity, NewPathPool(0).Cap())
}

func TestDocumentWriteTo(t *testing.T) {
	m := scene.NewMaterial(colorful.Color{R: 1})
	r := newTestRenderer(squareFaces(m))
	r.SetSize(300, 100)
	require.NoError(t, r.Render(scene.New(), camera.New(camera.Perspective, 1)))

	var buf bytes.Buffer
	n, err := r.Document().WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), n)

	out := buf.String()
	assert.Contains(t, out, `viewBox="-150 -50 300 100"`)
	assert.Contains(t, out, `width="300"`)
	assert.Contains(t, out, `<path d="M `)
	assert.Contains(t, out, `style="fill:#ff0000;fill-opacity:1;stroke:#000000;stroke-width:1"`)
	assert.Equal(t, out, r.Document().String())
}
