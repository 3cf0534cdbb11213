// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package vector renders a projected scene as an SVG document.
//
// Every frame the [Renderer] asks its projector for screen-space faces,
// groups them by material identity, and unions each group into as few
// closed rings as possible, so that a tessellated surface comes out as one
// flat shape instead of a mesh of hairline seams.
//
// # Pipeline
//
//  1. Partition faces by material id in first-appearance order ([Compose]).
//  2. Map NDC to pixels (x*W/2, -y*H/2) and close each triangle v1→v2→v3→v1.
//  3. Union the rings of a group ([Unioner]), then drop duplicate and
//     collinear vertices.
//  4. If the union fails, or returns more rings than it was given, emit the
//     group's original rings instead.
//  5. Serialize rings as "M x,y L x,y ... Z" and write them into a pooled
//     <path> node with the group's fill and stroke style.
//
// The fallback in step 4 is observable: overlapping triangles stay visible
// as separate rings. [Renderer.Stats] reports how many groups fell back in
// the last frame.
package vector
