// Package viewer is an embeddable 3D viewer engine.
//
// # Overview
//
// A [Viewer] displays converted domain objects inside a [surface.Host].
// It owns two surfaces, a raster one drawn with gg and a vector one that
// flattens the projected scene into merged SVG paths, and mounts exactly
// one of them at a time. Pointer input on the mounted surface drives hover
// and selection; a highlight predicate and a selection authority supplied
// by the host are reconciled into per-object display state.
//
// # Quick Start
//
//	host := surface.NewHost(800, 600)
//	v, err := viewer.New(host, viewer.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Close()
//
//	v.Load(ctx, sources, true)
//	_ = v.Wait(ctx)
//
//	for now := range ticker.C {
//	    _ = v.Tick(now)
//	}
//
// # Threading
//
// The viewer is tick driven. Tick, pointer events, and all methods run on
// one goroutine. Conversions run concurrently and their results are
// applied by the next Tick or Wait. Selection authority calls are
// dispatched without waiting for them.
//
// # Camera
//
// Framing requests (ZoomExtents, ZoomHighlightExtents, ZoomToObject) fit
// a bounding sphere into the field of view and animate the camera there
// over several ticks. A new request replaces the one in flight.
//
// # Export
//
// ExportSVG and ExportPNG render the current frame through the vector or
// raster surface regardless of which one is mounted.
package viewer

// Version is the current version of the library.
const Version = "0.1.0"
