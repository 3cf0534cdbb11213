package convert

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Source is one domain object as delivered by the host.
type Source struct {
	ID   string `json:"_id" yaml:"_id"`
	Type string `json:"type" yaml:"type"`

	// SelectionID is the identity token for the selection authority.
	// Empty falls back to ID.
	SelectionID string `json:"selectionId,omitempty" yaml:"selectionId,omitempty"`

	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`

	Vertices []float64 `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Faces    []int     `json:"faces,omitempty" yaml:"faces,omitempty"`

	DisplayValue *Source `json:"displayValue,omitempty" yaml:"displayValue,omitempty"`
}

// Document is a file of domain objects.
type Document struct {
	Objects []Source `json:"objects" yaml:"objects"`
}

// ErrEmptyDocument is returned by Decode for input with no YAML node.
var ErrEmptyDocument = errors.New("convert: empty document")

// Decode reads domain objects from YAML or JSON. The top level is either a
// sequence of objects or a mapping with an "objects" sequence.
func Decode(r io.Reader) ([]Source, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("convert: decode: %w", err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.SequenceNode:
		var srcs []Source
		if err := node.Decode(&srcs); err != nil {
			return nil, fmt.Errorf("convert: decode objects: %w", err)
		}
		return srcs, nil
	case yaml.MappingNode:
		var doc Document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("convert: decode document: %w", err)
		}
		return doc.Objects, nil
	default:
		return nil, fmt.Errorf("convert: decode: unexpected top-level %s", kindName(node.Kind))
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "node"
	}
}
