// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "time"

// EventType identifies a pointer event.
type EventType uint8

// Pointer event types.
const (
	PointerMove  EventType = iota // pointer moved over the element
	PointerDown                   // button pressed
	PointerUp                     // button released
	PointerEnter                  // pointer entered the element
	PointerLeave                  // pointer left the element
	Wheel                         // wheel scrolled; Delta carries the amount

	eventTypeCount
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case PointerMove:
		return "pointermove"
	case PointerDown:
		return "pointerdown"
	case PointerUp:
		return "pointerup"
	case PointerEnter:
		return "pointerenter"
	case PointerLeave:
		return "pointerleave"
	case Wheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Event is a pointer event in element pixel coordinates, origin top-left.
type Event struct {
	Type EventType
	X, Y float64

	Shift bool
	Ctrl  bool

	// Delta is the wheel delta; positive zooms out.
	Delta float64

	Time time.Time
}

type listener struct {
	id uint32
	fn func(Event)
}

// Element is the input target of a surface.
//
// Element is not safe for concurrent use.
type Element struct {
	width, height int

	listeners [eventTypeCount][]listener
	nextID    uint32
}

// NewElement returns an element of the given size.
func NewElement(width, height int) *Element {
	return &Element{width: width, height: height}
}

// Size returns the element size in pixels.
func (e *Element) Size() (width, height int) { return e.width, e.height }

func (e *Element) setSize(width, height int) {
	e.width, e.height = width, height
}

// Handle removes a listener registered with On.
type Handle struct {
	id  uint32
	el  *Element
	typ EventType
}

// Remove unregisters the listener. Removing twice is a no-op.
func (h Handle) Remove() {
	if h.el == nil || h.typ >= eventTypeCount {
		return
	}
	s := h.el.listeners[h.typ]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			h.el.listeners[h.typ] = s[:len(s)-1]
			return
		}
	}
}

// On registers fn for events of type t.
func (e *Element) On(t EventType, fn func(Event)) Handle {
	if t >= eventTypeCount || fn == nil {
		return Handle{}
	}
	e.nextID++
	e.listeners[t] = append(e.listeners[t], listener{id: e.nextID, fn: fn})
	return Handle{id: e.nextID, el: e, typ: t}
}

// Listeners returns the number of listeners registered for t.
func (e *Element) Listeners(t EventType) int {
	if t >= eventTypeCount {
		return 0
	}
	return len(e.listeners[t])
}

// Dispatch delivers ev to the listeners of its type in registration order.
func (e *Element) Dispatch(ev Event) {
	if ev.Type >= eventTypeCount {
		return
	}
	// listeners may remove themselves
	ls := append([]listener(nil), e.listeners[ev.Type]...)
	for _, l := range ls {
		l.fn(ev)
	}
}

// NDC converts element pixel coordinates to normalized device coordinates,
// y up.
func (e *Element) NDC(x, y float64) (nx, ny float64) {
	if e.width <= 0 || e.height <= 0 {
		return 0, 0
	}
	return x/float64(e.width)*2 - 1, -(y/float64(e.height))*2 + 1
}
