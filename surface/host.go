// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "errors"

// ErrMounted is returned by Mount while another surface is mounted.
var ErrMounted = errors.New("surface: host already has a mounted surface")

// Host is the sized container a viewer is embedded in. It holds at most one
// mounted surface.
//
// Host is not safe for concurrent use.
type Host struct {
	width, height int
	mounted       Surface
	el            *Element
	onResize      []func(width, height int)
}

// NewHost returns an empty host of the given size.
func NewHost(width, height int) *Host {
	return &Host{
		width:  width,
		height: height,
		el:     NewElement(width, height),
	}
}

// Size returns the host size in pixels.
func (h *Host) Size() (width, height int) { return h.width, h.height }

// Element returns the host's own input element. It receives pointer enter
// and leave events for the whole container.
func (h *Host) Element() *Element { return h.el }

// Mount places s in the host.
func (h *Host) Mount(s Surface) error {
	if h.mounted != nil && h.mounted != s {
		return ErrMounted
	}
	h.mounted = s
	return nil
}

// Unmount removes and returns the mounted surface.
func (h *Host) Unmount() Surface {
	s := h.mounted
	h.mounted = nil
	return s
}

// Mounted returns the mounted surface, or nil.
func (h *Host) Mounted() Surface { return h.mounted }

// OnResize registers fn to run after every Resize.
func (h *Host) OnResize(fn func(width, height int)) {
	if fn != nil {
		h.onResize = append(h.onResize, fn)
	}
}

// Resize changes the host size and notifies resize listeners. The mounted
// surface is resized by its owner, not by the host.
func (h *Host) Resize(width, height int) error {
	if err := validSize(width, height); err != nil {
		return err
	}
	h.width, h.height = width, height
	h.el.setSize(width, height)
	for _, fn := range h.onResize {
		fn(width, height)
	}
	return nil
}
