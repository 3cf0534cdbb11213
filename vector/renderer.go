// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vector

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/viewer/camera"
	"github.com/gogpu/viewer/internal/logging"
	"github.com/gogpu/viewer/projector"
	"github.com/gogpu/viewer/scene"
)

// ErrInvalidCamera is returned by Render when no camera is given.
var ErrInvalidCamera = errors.New("vector: render requires a camera")

// Stats describes the last rendered frame.
type Stats struct {
	Faces     int
	Groups    int
	Rings     int
	Fallbacks int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProjector replaces the default projector.
func WithProjector(p projector.Projector) Option {
	return func(r *Renderer) {
		if p != nil {
			r.projector = p
		}
	}
}

// WithUnioner replaces the polyclip union.
func WithUnioner(u Unioner) Option {
	return func(r *Renderer) {
		if u != nil {
			r.unioner = u
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logging.OrNop(l)
	}
}

// WithPoolCapacity sets the number of pooled path handles.
func WithPoolCapacity(n int) Option {
	return func(r *Renderer) {
		r.poolCap = n
	}
}

// Renderer draws scenes into an SVG Document.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	// AutoClear removes all children before each frame when the scene has
	// no background.
	AutoClear bool

	SortObjects  bool
	SortElements bool

	// LineWeight is the stroke width. Zero disables strokes.
	LineWeight float64
	LineColor  colorful.Color

	width, height int
	halfW, halfH  float64
	precision     int

	projector projector.Projector
	unioner   Unioner
	logger    *slog.Logger

	doc       *Document
	pool      *PathPool
	poolCap   int
	pathCount int
	stats     Stats
}

// NewRenderer creates a renderer with a width×height document.
func NewRenderer(width, height int, opts ...Option) *Renderer {
	r := &Renderer{
		AutoClear:    true,
		SortObjects:  true,
		SortElements: true,
		LineWeight:   1,
		precision:    -1,
		projector:    projector.New(),
		unioner:      PolyclipUnion{},
		logger:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.doc = NewDocument(width, height)
	r.pool = NewPathPool(r.poolCap)
	r.SetSize(width, height)
	return r
}

// SetSize sets the document size and view box.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.halfW = float64(width) / 2
	r.halfH = float64(height) / 2
	r.doc.SetSize(width, height)
}

// Size returns the document size.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// SetPrecision fixes the number of decimals written for coordinates.
// A negative value writes the shortest exact representation.
func (r *Renderer) SetPrecision(p int) {
	if p < 0 {
		p = -1
	}
	r.precision = p
}

// Precision returns the coordinate precision, -1 when unset.
func (r *Renderer) Precision() int { return r.precision }

// Document returns the document the renderer draws into.
func (r *Renderer) Document() *Document { return r.doc }

// Stats returns statistics for the last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Clear removes every child of the document.
func (r *Renderer) Clear() {
	r.pathCount = 0
	r.doc.Clear()
}

// Teardown clears the document and recreates the path pool.
func (r *Renderer) Teardown() {
	r.Clear()
	r.pool = NewPathPool(r.poolCap)
}

// Render draws one frame of s as seen from cam.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Camera) error {
	if cam == nil {
		r.logger.Error("vector: render skipped", "err", ErrInvalidCamera)
		return ErrInvalidCamera
	}

	switch {
	case s != nil && s.Background != nil:
		r.pathCount = 0
		r.doc.ClearPaths()
		r.doc.Background = s.Background.Clamped().Hex()
	case r.AutoClear:
		r.Clear()
		r.doc.Background = ""
	}

	rd := r.projector.ProjectScene(s, cam, r.SortObjects, r.SortElements)
	groups := Compose(rd.Elements, r.halfW, r.halfH)

	r.stats = Stats{Faces: len(rd.Elements), Groups: len(groups)}
	for i := range groups {
		g := &groups[i]
		r.merge(g)
		r.stats.Rings += len(g.Rings)
		if !g.Merged {
			r.stats.Fallbacks++
		}

		p := r.pool.Get(r.pathCount)
		r.pathCount++
		p.D = PathData(g.Rings, r.precision)
		p.Style = r.style(g.Material)
		p.FillRule = ""
		if g.Merged {
			p.FillRule = "evenodd"
		}
		r.doc.Append(p)
	}
	r.logger.Debug("vector: frame",
		"faces", r.stats.Faces,
		"groups", r.stats.Groups,
		"rings", r.stats.Rings,
		"fallbacks", r.stats.Fallbacks)
	return nil
}

// merge replaces g's triangle rings with their union. On failure g keeps
// its original rings and Merged stays false.
func (r *Renderer) merge(g *Group) {
	in := len(g.Rings)
	out, err := r.union(g.Rings)
	switch {
	case err != nil:
	case len(out) == 0:
		err = fmt.Errorf("%w: union of %d rings is empty", ErrDegenerate, in)
	case len(out) > in:
		err = fmt.Errorf("%w: union produced %d rings from %d", ErrDegenerate, len(out), in)
	}
	if err != nil {
		r.logger.Debug("vector: union fallback",
			"material", g.Material.ID.String(),
			"rings", in,
			"err", err)
		return
	}
	g.Rings = out
	g.Merged = true
}

func (r *Renderer) union(rings []Ring) (out []Ring, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrDegenerate, p)
		}
	}()
	return r.unioner.Union(rings)
}

func (r *Renderer) style(m *scene.Material) string {
	var b strings.Builder
	b.WriteString("fill:")
	b.WriteString(m.Hex())
	b.WriteString(";fill-opacity:")
	b.WriteString(strconv.FormatFloat(m.Opacity, 'f', -1, 64))
	if r.LineWeight > 0 {
		b.WriteString(";stroke:")
		b.WriteString(r.LineColor.Clamped().Hex())
		b.WriteString(";stroke-width:")
		b.WriteString(strconv.FormatFloat(r.LineWeight, 'f', -1, 64))
	}
	return b.String()
}
