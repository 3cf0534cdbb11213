// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"io"

	"github.com/gogpu/viewer/camera"
	"github.com/gogpu/viewer/scene"
	"github.com/gogpu/viewer/vector"
)

// Vector is an SVG surface backed by a vector.Renderer.
type Vector struct {
	r      *vector.Renderer
	el     *Element
	closed bool
}

var _ Exporter = (*Vector)(nil)

// NewVector creates a vector surface.
func NewVector(opts Options) (*Vector, error) {
	if err := validSize(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	r := vector.NewRenderer(opts.Width, opts.Height,
		vector.WithProjector(opts.Projector),
		vector.WithLogger(opts.Logger),
		vector.WithPoolCapacity(opts.PoolCapacity),
	)
	return &Vector{r: r, el: NewElement(opts.Width, opts.Height)}, nil
}

// Renderer returns the renderer for configuring line style and precision.
func (v *Vector) Renderer() *vector.Renderer { return v.r }

// Kind implements Surface.
func (v *Vector) Kind() Kind { return KindVector }

// Element implements Surface.
func (v *Vector) Element() *Element { return v.el }

// Size implements Surface.
func (v *Vector) Size() (width, height int) { return v.r.Size() }

// SetSize implements Surface.
func (v *Vector) SetSize(width, height int) error {
	if err := validSize(width, height); err != nil {
		return err
	}
	v.r.SetSize(width, height)
	v.el.setSize(width, height)
	return nil
}

// Render implements Surface.
func (v *Vector) Render(s *scene.Scene, cam *camera.Camera) error {
	if v.closed {
		return ErrClosed
	}
	return v.r.Render(s, cam)
}

// Export writes the SVG document.
func (v *Vector) Export(w io.Writer) error {
	if v.closed {
		return ErrClosed
	}
	_, err := v.r.Document().WriteTo(w)
	return err
}

// Close tears the renderer down. Close is idempotent.
func (v *Vector) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	v.r.Teardown()
	return nil
}
