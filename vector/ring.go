// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vector

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Ring is a closed polygon in pixel coordinates. The last point repeats
// the first.
type Ring []mgl64.Vec2

// Closed reports whether r has at least three distinct corners and ends
// where it starts.
func (r Ring) Closed() bool {
	return len(r) >= 4 && r[0] == r[len(r)-1]
}

// Finite reports whether every coordinate is a finite number.
func (r Ring) Finite() bool {
	for _, p := range r {
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Corners returns the ring without its closing point.
func (r Ring) Corners() []mgl64.Vec2 {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

// closeRing returns corners with the first point appended.
func closeRing(corners []mgl64.Vec2) Ring {
	r := make(Ring, 0, len(corners)+1)
	r = append(r, corners...)
	return append(r, corners[0])
}

// simplify drops repeated and collinear corners. It returns nil when fewer
// than three corners remain.
func simplify(corners []mgl64.Vec2, eps float64) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, 0, len(corners))
	for _, p := range corners {
		if n := len(out); n > 0 && out[n-1].ApproxEqualThreshold(p, eps) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].ApproxEqualThreshold(out[len(out)-1], eps) {
		out = out[:len(out)-1]
	}

	// repeat until stable: removing one corner can make its neighbor
	// collinear
	for changed := true; changed && len(out) >= 3; {
		changed = false
		for i := 0; i < len(out) && len(out) >= 3; i++ {
			prev := out[(i+len(out)-1)%len(out)]
			next := out[(i+1)%len(out)]
			if collinear(prev, out[i], next, eps) {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--
			}
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

func collinear(a, b, c mgl64.Vec2, eps float64) bool {
	ab := b.Sub(a)
	ac := c.Sub(a)
	cross := ab[0]*ac[1] - ab[1]*ac[0]
	scale := math.Max(ab.Len()*ac.Len(), 1)
	return math.Abs(cross) <= eps*scale
}

// PathData serializes rings as SVG path data. With precision >= 0 every
// coordinate is written with that many decimals; otherwise the shortest
// exact representation is used.
func PathData(rings []Ring, precision int) string {
	var b strings.Builder
	for i, r := range rings {
		if len(r) == 0 {
			continue
		}
		if i > 0 && b.Len() > 0 {
			b.WriteByte(' ')
		}
		for j, p := range r {
			if j == 0 {
				b.WriteString("M ")
			} else {
				b.WriteString(" L ")
			}
			b.WriteString(formatFloat(p[0], precision))
			b.WriteByte(',')
			b.WriteString(formatFloat(p[1], precision))
		}
		b.WriteString(" Z")
	}
	return b.String()
}

func formatFloat(v float64, precision int) string {
	if precision < 0 {
		precision = -1
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
