// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vector

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/gogpu/viewer/projector"
	"github.com/gogpu/viewer/scene"
)

// Group is the set of rings drawn with one material.
type Group struct {
	Material *scene.Material
	Rings    []Ring

	// Merged is false when Rings are the unmerged triangles.
	Merged bool
}

// Compose partitions faces by material id in first-appearance order and
// converts each face to a closed ring in pixel coordinates.
func Compose(faces []projector.Face, halfW, halfH float64) []Group {
	index := make(map[uuid.UUID]int)
	var groups []Group
	for i := range faces {
		f := &faces[i]
		if f.Material == nil {
			continue
		}
		gi, ok := index[f.Material.ID]
		if !ok {
			gi = len(groups)
			index[f.Material.ID] = gi
			groups = append(groups, Group{Material: f.Material})
		}
		groups[gi].Rings = append(groups[gi].Rings, faceRing(f, halfW, halfH))
	}
	return groups
}

func faceRing(f *projector.Face, halfW, halfH float64) Ring {
	px := func(v mgl64.Vec3) mgl64.Vec2 {
		return mgl64.Vec2{v[0] * halfW, v[1] * -halfH}
	}
	a := px(f.V1)
	return Ring{a, px(f.V2), px(f.V3), a}
}
