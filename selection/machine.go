// Package selection reconciles pointer input, an external highlight
// predicate, and an external selection authority into per-object visual
// state.
//
// Display state is derived, never stored: every mutation of the selection
// set runs Refresh, which applies the first matching rule to every loaded
// object:
//
//  1. highlight mode (the predicate is active and matches a loaded object):
//     highlighted objects are opaque, the rest dimmed
//  2. a non-empty selection: members are opaque, the rest dimmed
//  3. everything opaque
//
// Hover is layered on top as a saved-and-swapped color.
package selection

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/viewer/internal/logging"
	"github.com/gogpu/viewer/projector"
	"github.com/gogpu/viewer/scene"
)

// DefaultClickWindow is the longest press that still counts as a click.
const DefaultClickWindow = 300 * time.Millisecond

// DefaultHoverColor is the color applied to the hovered object.
var DefaultHoverColor = colorful.Color{R: 0xEE / 255.0, G: 0xF5 / 255.0, B: 0x8F / 255.0}

// Authority is the external system of record for selection.
type Authority interface {
	// Select selects the object with the given selection id, adding to
	// the current selection when additive is set. It returns the
	// authority's current selection.
	Select(ctx context.Context, selectionID string, additive bool) ([]string, error)

	// Clear drops the authority's selection.
	Clear()
}

// Framer receives framing requests.
type Framer interface {
	// FrameHighlights frames the currently focused objects.
	FrameHighlights()

	// FrameObject frames a single object.
	FrameObject(id string)
}

// Modifiers are the keyboard modifiers held during a click.
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithHighlighter sets the highlight predicate.
func WithHighlighter(h scene.Highlighter) Option {
	return func(m *Machine) { m.highlighter = h }
}

// WithAuthority sets the selection authority.
func WithAuthority(a Authority) Option {
	return func(m *Machine) { m.authority = a }
}

// WithFramer sets the receiver of framing requests.
func WithFramer(f Framer) Option {
	return func(m *Machine) { m.framer = f }
}

// WithDispatch sets how authority selections run. The default starts a
// goroutine per call.
func WithDispatch(d func(func())) Option {
	return func(m *Machine) {
		if d != nil {
			m.dispatch = d
		}
	}
}

// WithObserver sets a function called with the selection size after every
// change to the selection.
func WithObserver(fn func(size int)) Option {
	return func(m *Machine) { m.observe = fn }
}

// WithLogger sets the machine logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = logging.OrNop(l) }
}

// WithContext sets the context passed to the authority.
func WithContext(ctx context.Context) Option {
	return func(m *Machine) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// Machine is the selection and highlight state machine.
//
// Machine is not safe for concurrent use; it is driven from the viewer's
// tick goroutine. Only authority calls leave that goroutine.
type Machine struct {
	// HoverColor is swapped in on the hovered object.
	HoverColor colorful.Color

	// ClickWindow is the longest press that counts as a click, and the
	// longest gap between presses that counts as a double press.
	ClickWindow time.Duration

	scene       *scene.Scene
	highlighter scene.Highlighter
	authority   Authority
	framer      Framer
	observe     func(size int)
	dispatch    func(func())
	logger      *slog.Logger
	ctx         context.Context

	selected  []string
	hovered   string
	pressing  bool
	lastPress time.Time
}

// New creates a machine over s.
func New(s *scene.Scene, opts ...Option) *Machine {
	m := &Machine{
		HoverColor:  DefaultHoverColor,
		ClickWindow: DefaultClickWindow,
		scene:       s,
		dispatch:    func(f func()) { go f() },
		logger:      logging.Nop(),
		ctx:         context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetHighlighter replaces the highlight predicate.
func (m *Machine) SetHighlighter(h scene.Highlighter) { m.highlighter = h }

// Highlighter returns the highlight predicate.
func (m *Machine) Highlighter() scene.Highlighter { return m.highlighter }

// SetAuthority replaces the selection authority.
func (m *Machine) SetAuthority(a Authority) { m.authority = a }

// SetFramer replaces the receiver of framing requests.
func (m *Machine) SetFramer(f Framer) { m.framer = f }

// SetLogger replaces the logger.
func (m *Machine) SetLogger(l *slog.Logger) { m.logger = logging.OrNop(l) }

// Selection returns the selected object ids in selection order.
func (m *Machine) Selection() []string { return slices.Clone(m.selected) }

// IsSelected reports whether id is in the selection.
func (m *Machine) IsSelected(id string) bool { return slices.Contains(m.selected, id) }

// Hovered returns the hovered object id, empty for none.
func (m *Machine) Hovered() string { return m.hovered }

// Pressing reports whether a press is in progress.
func (m *Machine) Pressing() bool { return m.pressing }

// HasHighlights reports whether the predicate is active at all.
func (m *Machine) HasHighlights() bool {
	return m.highlighter != nil && m.highlighter.HasHighlights()
}

// HighlightMode reports whether the predicate is active and matches at
// least one loaded object.
func (m *Machine) HighlightMode() bool {
	if !m.HasHighlights() {
		return false
	}
	for _, o := range m.scene.Objects() {
		if m.highlighter.IsHighlighted(o) {
			return true
		}
	}
	return false
}

// Refresh re-derives the emphasis of every loaded object.
func (m *Machine) Refresh() {
	highlight := m.HighlightMode()
	for _, o := range m.scene.Objects() {
		o.SetEmphasis(m.emphasis(o, highlight))
	}
}

// InitialEmphasis returns the emphasis a freshly loaded object starts
// with. It applies the same rules as Refresh, so o must already be in the
// scene for highlight mode to account for it.
func (m *Machine) InitialEmphasis(o *scene.Object) scene.Emphasis {
	return m.emphasis(o, m.HighlightMode())
}

func (m *Machine) emphasis(o *scene.Object, highlight bool) scene.Emphasis {
	var in bool
	switch {
	case highlight:
		in = m.highlighter.IsHighlighted(o)
	case len(m.selected) > 0:
		in = m.IsSelected(o.ID)
	default:
		return scene.EmphasisNormal
	}
	if in {
		return scene.EmphasisSelected
	}
	return scene.EmphasisDimmed
}

// Hover updates the hovered object from a picking result, nearest first.
// It is ignored while a press is in progress.
func (m *Machine) Hover(hits []projector.Hit) {
	if m.pressing {
		return
	}
	if len(hits) == 0 {
		m.unhover()
		return
	}
	for _, h := range hits {
		if h.ID == "" || !m.scene.Has(h.ID) {
			continue
		}
		if h.ID == m.hovered {
			return
		}
		m.unhover()
		o, _ := m.scene.Get(h.ID)
		o.Hover(m.HoverColor)
		m.hovered = h.ID
		return
	}
}

func (m *Machine) unhover() {
	if m.hovered == "" {
		return
	}
	if o, ok := m.scene.Get(m.hovered); ok {
		o.Unhover()
	}
	m.hovered = ""
}

// Press starts a press at now. A second press within the click window on
// a hovered object requests framing that object.
func (m *Machine) Press(now time.Time) {
	m.pressing = true
	if !m.lastPress.IsZero() && now.Sub(m.lastPress) < m.ClickWindow && m.hovered != "" && m.framer != nil {
		m.framer.FrameObject(m.hovered)
	}
	m.lastPress = now
}

// Release ends a press at now. Presses shorter than the click window are
// clicks and update the selection; longer ones are drags and ignored.
func (m *Machine) Release(now time.Time, mods Modifiers) {
	if !m.pressing {
		return
	}
	m.pressing = false
	if now.Sub(m.lastPress) >= m.ClickWindow {
		return
	}
	m.click(mods)
}

func (m *Machine) click(mods Modifiers) {
	id := m.hovered
	switch {
	case id == "":
		m.selected = nil

	case m.IsSelected(id):
		m.selected = nil
		if m.authority != nil {
			m.authority.Clear()
		}

	case mods.Ctrl:
		// Ctrl only deselects, and selected objects were handled above.
		return

	case mods.Shift:
		m.selected = append(m.selected, id)
		m.notify(id, true)

	default:
		m.selected = []string{id}
		m.notify(id, false)
	}
	m.changed()
}

// notify forwards a selection to the authority without waiting for it.
func (m *Machine) notify(id string, additive bool) {
	if m.authority == nil {
		return
	}
	o, ok := m.scene.Get(id)
	if !ok || o.SelectionID == "" {
		return
	}
	a, ctx, sel, logger := m.authority, m.ctx, o.SelectionID, m.logger
	m.dispatch(func() {
		ids, err := a.Select(ctx, sel, additive)
		if err != nil {
			logger.Warn("selection: authority select failed",
				"id", id, "additive", additive, "err", err)
			return
		}
		logger.Debug("selection: authority selected", "id", id, "count", len(ids))
	})
}

func (m *Machine) changed() {
	m.observed()
	m.Refresh()
	if m.framer != nil && m.HighlightMode() {
		m.framer.FrameHighlights()
	}
}

// Clear empties the selection locally and refreshes. The authority is not
// notified.
func (m *Machine) Clear() {
	m.selected = nil
	m.changed()
}

// Prune drops selected and hovered ids that are no longer loaded.
func (m *Machine) Prune() {
	m.selected = slices.DeleteFunc(m.selected, func(id string) bool { return !m.scene.Has(id) })
	if m.hovered != "" && !m.scene.Has(m.hovered) {
		m.hovered = ""
	}
	m.observed()
}

func (m *Machine) observed() {
	if m.observe != nil {
		m.observe(len(m.selected))
	}
}
