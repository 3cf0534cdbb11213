package viewer

import (
	"fmt"
	"slices"

	"github.com/gogpu/viewer/scene"
)

// PropertyHighlighter highlights objects whose flattened property Key
// formats to one of Values.
type PropertyHighlighter struct {
	Key    string
	Values []string
}

var _ scene.Highlighter = PropertyHighlighter{}

// IsHighlighted implements scene.Highlighter.
func (h PropertyHighlighter) IsHighlighted(o *scene.Object) bool {
	if !h.HasHighlights() || o == nil {
		return false
	}
	v, ok := o.Properties[h.Key]
	if !ok {
		return false
	}
	return slices.Contains(h.Values, fmt.Sprint(v))
}

// HasHighlights implements scene.Highlighter.
func (h PropertyHighlighter) HasHighlights() bool {
	return h.Key != "" && len(h.Values) > 0
}
