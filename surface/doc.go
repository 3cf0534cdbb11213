// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the render targets a viewer can mount.
//
// A Surface draws a scene for a camera and owns an input [Element] that
// pointer events are dispatched to. Two kinds are built in:
//
//   - Raster: painter's-algorithm triangles drawn into a gg.Context,
//     exported as PNG
//   - Vector: merged material paths written into an SVG document by
//     the vector renderer
//
// A [Host] is the sized container that holds exactly one mounted surface.
// Switching renderers unmounts one surface and mounts the other; the scene
// and camera are not owned by either surface, so nothing else changes.
//
// # Registry
//
// Surfaces are created through a registry of named backends. Each backend
// produces one kind; asking for a kind picks the highest-priority available
// backend for it, so hosts can replace the built-in "gg" and "svg" ones:
//
//	func init() {
//	    surface.Register("canvas", surface.KindRaster, 20, canvasFactory, nil)
//	}
//
//	s, err := surface.NewSurface(surface.KindVector, surface.Options{Width: 800, Height: 600})
package surface
