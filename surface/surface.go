// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"io"

	"github.com/gogpu/viewer/camera"
	"github.com/gogpu/viewer/scene"
)

// Kind identifies a surface family.
type Kind uint8

const (
	// KindRaster is a pixel surface.
	KindRaster Kind = iota

	// KindVector is an SVG surface.
	KindVector
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if k == KindVector {
		return "vector"
	}
	return "raster"
}

// ParseKind converts a configuration name to a Kind. Unknown names are
// KindRaster.
func ParseKind(s string) Kind {
	if s == "vector" {
		return KindVector
	}
	return KindRaster
}

// Other returns the kind a renderer switch toggles to.
func (k Kind) Other() Kind {
	if k == KindVector {
		return KindRaster
	}
	return KindVector
}

// ErrZeroSize is returned when a surface is given a non-positive size.
var ErrZeroSize = errors.New("surface: width and height must be positive")

// Surface is a render target for the viewer.
//
// Surfaces are NOT thread-safe. They are driven from the viewer's tick
// goroutine.
type Surface interface {
	// Kind returns the surface family.
	Kind() Kind

	// Element returns the input element pointer listeners attach to.
	Element() *Element

	// Size returns the surface size in pixels.
	Size() (width, height int)

	// SetSize resizes the surface. Content is redrawn on the next Render.
	SetSize(width, height int) error

	// Render draws one frame of s from cam.
	Render(s *scene.Scene, cam *camera.Camera) error

	// Close releases the surface. Close is idempotent.
	Close() error
}

// Exporter is implemented by surfaces that can serialize their last frame.
type Exporter interface {
	Surface

	// Export writes the last rendered frame in the surface's native
	// format: PNG for raster, SVG for vector.
	Export(w io.Writer) error
}

func validSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrZeroSize
	}
	return nil
}
