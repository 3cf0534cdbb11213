// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/viewer/camera"
	"github.com/gogpu/viewer/projector"
	"github.com/gogpu/viewer/scene"
)

var (
	// ErrClosed is returned when a closed surface is used.
	ErrClosed = errors.New("surface: surface is closed")

	// ErrNoCamera is returned by Render when no camera is given.
	ErrNoCamera = errors.New("surface: render requires a camera")
)

// Raster is a CPU surface that fills projected faces far to near into a
// gg.Context.
//
// Example:
//
//	r, _ := surface.NewRaster(surface.Options{Width: 800, Height: 600})
//	defer r.Close()
//
//	_ = r.Render(sc, cam)
//	_ = r.Export(f) // PNG
type Raster struct {
	dc        *gg.Context
	el        *Element
	projector projector.Projector
	logger    *slog.Logger
	closed    bool
}

var _ Exporter = (*Raster)(nil)

// NewRaster creates a raster surface.
func NewRaster(opts Options) (*Raster, error) {
	if err := validSize(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	return &Raster{
		dc:        gg.NewContext(opts.Width, opts.Height),
		el:        NewElement(opts.Width, opts.Height),
		projector: opts.Projector,
		logger:    opts.Logger,
	}, nil
}

// Kind implements Surface.
func (r *Raster) Kind() Kind { return KindRaster }

// Element implements Surface.
func (r *Raster) Element() *Element { return r.el }

// Size implements Surface.
func (r *Raster) Size() (width, height int) { return r.dc.Width(), r.dc.Height() }

// SetSize implements Surface.
func (r *Raster) SetSize(width, height int) error {
	if err := validSize(width, height); err != nil {
		return err
	}
	if err := r.dc.Resize(width, height); err != nil {
		return fmt.Errorf("surface: resize raster: %w", err)
	}
	r.el.setSize(width, height)
	return nil
}

// Render implements Surface.
func (r *Raster) Render(s *scene.Scene, cam *camera.Camera) error {
	if r.closed {
		return ErrClosed
	}
	if cam == nil {
		r.logger.Error("surface: raster render skipped", "err", ErrNoCamera)
		return ErrNoCamera
	}

	if s != nil && s.Background != nil {
		bg := s.Background.Clamped()
		r.dc.ClearWithColor(gg.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 1})
	} else {
		r.dc.ClearWithColor(gg.RGBA{})
	}

	rd := r.projector.ProjectScene(s, cam, true, true)
	halfW := float64(r.dc.Width()) / 2
	halfH := float64(r.dc.Height()) / 2
	px := func(x, y float64) (float64, float64) {
		return (x + 1) * halfW, (1 - y) * halfH
	}

	for i := range rd.Elements {
		f := &rd.Elements[i]
		c := f.Material.Color.Clamped()
		r.dc.SetRGBA(c.R, c.G, c.B, f.Material.Opacity)
		r.dc.MoveTo(px(f.V1[0], f.V1[1]))
		r.dc.LineTo(px(f.V2[0], f.V2[1]))
		r.dc.LineTo(px(f.V3[0], f.V3[1]))
		r.dc.ClosePath()
		if err := r.dc.Fill(); err != nil {
			return fmt.Errorf("surface: fill face of %q: %w", f.ObjectID, err)
		}
	}
	r.logger.Debug("surface: raster frame", "faces", len(rd.Elements))
	return nil
}

// Image returns the pixels of the last frame.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// Export writes the last frame as PNG.
func (r *Raster) Export(w io.Writer) error {
	if r.closed {
		return ErrClosed
	}
	return r.dc.EncodePNG(w)
}

// Close implements Surface.
func (r *Raster) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.dc.Close()
}
