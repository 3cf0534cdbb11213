package scene

import "github.com/lucasb-eyer/go-colorful"

// Emphasis is the selection-driven part of an object's visual state.
type Emphasis uint8

const (
	// EmphasisNormal is the resting state: fully opaque.
	EmphasisNormal Emphasis = iota

	// EmphasisSelected marks an object kept in focus by a selection or an
	// active highlight. Rendered like Normal.
	EmphasisSelected

	// EmphasisDimmed pushes an object into the background.
	EmphasisDimmed
)

// String returns the emphasis name.
func (e Emphasis) String() string {
	switch e {
	case EmphasisSelected:
		return "selected"
	case EmphasisDimmed:
		return "dimmed"
	default:
		return "normal"
	}
}

// DisplayState is what the user sees for an object.
type DisplayState uint8

const (
	// Opaque is drawn with the material's own color at full opacity.
	Opaque DisplayState = iota

	// Dimmed is drawn translucent behind the focused objects.
	Dimmed

	// Hovered is drawn in the hover color.
	Hovered
)

// String returns the display state name.
func (d DisplayState) String() string {
	switch d {
	case Dimmed:
		return "dimmed"
	case Hovered:
		return "hovered"
	default:
		return "opaque"
	}
}

// Object is one loaded domain entity.
type Object struct {
	// ID is unique within a load generation.
	ID string

	// Type is the slash-delimited domain type path the object came from.
	Type string

	// SelectionID is the identity token handed to the external selection
	// authority. Empty means the object cannot be selected externally.
	SelectionID string

	// Properties holds the flattened domain properties.
	Properties map[string]any

	Mesh     *Mesh
	Material *Material
	Bounds   Sphere

	emphasis Emphasis
	hover    *hoverState
}

type hoverState struct {
	saved colorful.Color
}

// NewObject creates an object and precomputes its bounding sphere.
func NewObject(id string, mesh *Mesh, mat *Material) *Object {
	o := &Object{
		ID:       id,
		Mesh:     mesh,
		Material: mat,
	}
	if mesh != nil {
		o.Bounds = mesh.BoundingSphere()
	}
	return o
}

// Emphasis returns the selection-driven part of the visual state.
func (o *Object) Emphasis() Emphasis { return o.emphasis }

// SetEmphasis changes the emphasis and re-derives opacity.
func (o *Object) SetEmphasis(e Emphasis) {
	o.emphasis = e
	if o.Material == nil {
		return
	}
	if e == EmphasisDimmed {
		o.Material.Opacity = DimmedOpacity
		o.Material.Transparent = true
		return
	}
	o.Material.Opacity = 1
	o.Material.Transparent = false
}

// Hovered reports whether the hover color is applied.
func (o *Object) Hovered() bool { return o.hover != nil }

// Hover saves the current color and applies c. Hovering an already hovered
// object only changes the applied color.
func (o *Object) Hover(c colorful.Color) {
	if o.Material == nil {
		return
	}
	if o.hover == nil {
		o.hover = &hoverState{saved: o.Material.Color}
	}
	o.Material.Color = c
}

// Unhover restores the color saved by Hover.
func (o *Object) Unhover() {
	if o.hover == nil {
		return
	}
	if o.Material != nil {
		o.Material.Color = o.hover.saved
	}
	o.hover = nil
}

// BaseColor returns the object's color ignoring any hover color.
func (o *Object) BaseColor() colorful.Color {
	if o.hover != nil {
		return o.hover.saved
	}
	if o.Material == nil {
		return colorful.Color{}
	}
	return o.Material.Color
}

// Display returns the state the user sees.
func (o *Object) Display() DisplayState {
	switch {
	case o.hover != nil:
		return Hovered
	case o.emphasis == EmphasisDimmed:
		return Dimmed
	default:
		return Opaque
	}
}
