// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vector

import (
	"errors"
	"fmt"

	"github.com/ctessum/polyclip-go"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegenerate is returned when a union cannot be computed from the input
// geometry.
var ErrDegenerate = errors.New("vector: degenerate geometry")

// Unioner merges closed rings into the rings of their union.
type Unioner interface {
	Union(rings []Ring) ([]Ring, error)
}

// UnionFunc adapts a function to the Unioner interface.
type UnionFunc func(rings []Ring) ([]Ring, error)

// Union calls f(rings).
func (f UnionFunc) Union(rings []Ring) ([]Ring, error) { return f(rings) }

// DefaultEpsilon is the tolerance PolyclipUnion uses to drop repeated and
// collinear corners, in pixels.
const DefaultEpsilon = 1e-9

// PolyclipUnion unions rings with the Martinez algorithm from polyclip-go.
type PolyclipUnion struct {
	// Epsilon is the simplification tolerance. Zero means DefaultEpsilon.
	Epsilon float64
}

var _ Unioner = PolyclipUnion{}

// Union implements Unioner. Input rings must be closed and finite.
// Panics inside the clipper are returned as ErrDegenerate.
func (u PolyclipUnion) Union(rings []Ring) (out []Ring, err error) {
	eps := u.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	for i, r := range rings {
		if !r.Finite() {
			return nil, fmt.Errorf("%w: ring %d has non-finite coordinates", ErrDegenerate, i)
		}
		if !r.Closed() {
			return nil, fmt.Errorf("%w: ring %d is not closed", ErrDegenerate, i)
		}
	}
	if len(rings) == 0 {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: clipper panic: %v", ErrDegenerate, r)
		}
	}()

	acc := toPolygon(rings[0])
	for _, r := range rings[1:] {
		acc = acc.Construct(polyclip.UNION, toPolygon(r))
	}

	for _, c := range acc {
		corners := make([]mgl64.Vec2, len(c))
		for i, p := range c {
			corners[i] = mgl64.Vec2{p.X, p.Y}
		}
		if corners = simplify(corners, eps); corners != nil {
			out = append(out, closeRing(corners))
		}
	}
	return out, nil
}

func toPolygon(r Ring) polyclip.Polygon {
	corners := r.Corners()
	c := make(polyclip.Contour, len(corners))
	for i, p := range corners {
		c[i] = polyclip.Point{X: p[0], Y: p[1]}
	}
	return polyclip.Polygon{c}
}
