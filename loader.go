package viewer

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gogpu/viewer/convert"
	"github.com/gogpu/viewer/scene"
)

const tracerName = "github.com/gogpu/viewer"

// batch tracks one Load call until its last conversion is applied.
type batch struct {
	zoomExtents bool
	total       int
	applied     int
}

type completion struct {
	batch      *batch
	generation uint64
	src        convert.Source
	obj        *scene.Object
	err        error
}

// Load converts sources asynchronously. Each conversion runs on its own
// goroutine, bounded by the configured concurrency; results are applied
// by the next Tick or Wait in completion order.
//
// When highlights are active the selection is cleared first. After the
// batch's last result the camera frames the highlighted objects, or, when
// zoomExtents is set, resets and frames the whole scene.
func (v *Viewer) Load(ctx context.Context, sources []convert.Source, zoomExtents bool) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "viewer.Load")
	defer span.End()
	span.SetAttributes(
		attribute.Int("objects", len(sources)),
		attribute.Bool("zoom_extents", zoomExtents),
	)

	v.loads.sources = append(v.loads.sources[:0:0], sources...)
	if v.machine.HasHighlights() {
		v.machine.Clear()
	}
	if len(sources) == 0 {
		return
	}

	b := &batch{zoomExtents: zoomExtents, total: len(sources)}
	v.loads.mu.Lock()
	gen := v.loads.generation
	v.loads.inflight += len(sources)
	v.loads.mu.Unlock()

	v.logger.Info("viewer: loading", "objects", len(sources), "zoom_extents", zoomExtents)
	for _, src := range sources {
		go v.convert(ctx, b, gen, src)
	}
}

func (v *Viewer) convert(ctx context.Context, b *batch, gen uint64, src convert.Source) {
	c := completion{batch: b, generation: gen, src: src}
	if err := v.loads.sem.Acquire(ctx, 1); err != nil {
		c.err = err
	} else {
		c.obj, c.err = v.converters.Convert(ctx, src)
		v.loads.sem.Release(1)
	}

	v.loads.mu.Lock()
	v.loads.queue = append(v.loads.queue, c)
	v.loads.inflight--
	v.loads.mu.Unlock()

	select {
	case v.loads.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of conversions not yet finished.
func (v *Viewer) Pending() int {
	v.loads.mu.Lock()
	defer v.loads.mu.Unlock()
	return v.loads.inflight
}

// Wait blocks until every started conversion has finished and applies the
// results.
func (v *Viewer) Wait(ctx context.Context) error {
	for {
		v.drain()
		if v.Pending() == 0 {
			v.drain()
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-v.loads.wake:
		}
	}
}

// drain applies queued conversion results. Results from before the last
// unload are dropped.
func (v *Viewer) drain() {
	v.loads.mu.Lock()
	queue := v.loads.queue
	v.loads.queue = nil
	gen := v.loads.generation
	v.loads.mu.Unlock()

	for _, c := range queue {
		if c.generation != gen {
			continue
		}
		v.applyCompletion(c)
	}
}

func (v *Viewer) applyCompletion(c completion) {
	c.batch.applied++

	switch {
	case c.err != nil:
		var unsupported *convert.UnsupportedTypeError
		result := "error"
		if errors.As(c.err, &unsupported) {
			result = "unsupported"
		}
		v.metrics.ObserveConversion(result)
		v.logger.Warn("viewer: conversion failed", "id", c.src.ID, "type", c.src.Type, "err", c.err)

	default:
		o := c.obj
		if v.resolver != nil {
			if col, ok := v.resolver(c.src); ok {
				o.Material = scene.NewMaterial(col)
			}
		}
		highlight := v.machine.HighlightMode()
		v.scene.Put(o)
		if v.machine.HighlightMode() != highlight {
			v.machine.Refresh()
		} else {
			o.SetEmphasis(v.machine.InitialEmphasis(o))
		}
		v.metrics.ObserveConversion("ok")
		v.metrics.SetLoaded(v.scene.Len())
	}

	if c.batch.applied < c.batch.total {
		return
	}
	v.logger.Info("viewer: load complete", "objects", v.scene.Len())
	v.machine.Refresh()
	switch {
	case v.machine.HighlightMode():
		v.ZoomHighlightExtents()
	case c.batch.zoomExtents:
		v.ResetCamera(true)
		if len(v.machine.Selection()) > 0 {
			v.ZoomHighlightExtents()
		}
	}
}

// UnloadAll removes every loaded object, drops results of conversions
// still in flight, and frames the empty scene.
func (v *Viewer) UnloadAll() {
	v.loads.mu.Lock()
	v.loads.generation++
	v.loads.queue = nil
	v.loads.mu.Unlock()

	n := v.scene.Clear()
	v.machine.Prune()
	v.machine.Refresh()
	v.metrics.SetLoaded(0)
	v.logger.Info("viewer: unloaded", "objects", n)
	if n > 0 {
		v.ZoomExtents()
	}
}

// Reload unloads everything and loads the last sources again with
// extents framing.
func (v *Viewer) Reload(ctx context.Context) {
	if v.loads.sources == nil {
		return
	}
	sources := v.loads.sources
	v.UnloadAll()
	v.Load(ctx, sources, true)
}
