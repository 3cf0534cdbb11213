// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vector

// DefaultPoolCapacity is the number of path handles a renderer keeps.
const DefaultPoolCapacity = 1024

// PathPool is a fixed-capacity array of <path> handles indexed by draw
// order. Handles are created on first use and reused by later frames.
// Indexes beyond the capacity get a fresh handle that is not retained.
//
// PathPool is not safe for concurrent use.
type PathPool struct {
	handles []*Path
	created int
}

// NewPathPool creates an empty pool. A non-positive capacity means
// DefaultPoolCapacity.
func NewPathPool(capacity int) *PathPool {
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	return &PathPool{handles: make([]*Path, capacity)}
}

// Get returns the handle for draw index i.
func (p *PathPool) Get(i int) *Path {
	if i < 0 || i >= len(p.handles) {
		return &Path{}
	}
	if p.handles[i] == nil {
		p.handles[i] = &Path{}
		p.created++
	}
	return p.handles[i]
}

// Cap returns the pool capacity.
func (p *PathPool) Cap() int { return len(p.handles) }

// Created returns how many pooled handles exist.
func (p *PathPool) Created() int { return p.created }
