// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vector

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Node is a child element of a Document.
type Node interface {
	isNode()
}

// Path is an SVG <path> element.
type Path struct {
	XMLName  xml.Name `xml:"path"`
	D        string   `xml:"d,attr"`
	Style    string   `xml:"style,attr"`
	FillRule string   `xml:"fill-rule,attr,omitempty"`
}

func (*Path) isNode() {}

// Element is any other SVG element, kept as-is across redraws that only
// clear shape content.
type Element struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
}

func (*Element) isNode() {}

// Document is the SVG root the renderer draws into.
type Document struct {
	width, height int

	// Background is the document-level background color style value,
	// empty for none.
	Background string

	children []Node
}

// NewDocument returns an empty document of the given size.
func NewDocument(width, height int) *Document {
	d := &Document{}
	d.SetSize(width, height)
	return d
}

// SetSize sets the width, height, and centered view box.
func (d *Document) SetSize(width, height int) {
	d.width, d.height = width, height
}

// Size returns the document size in pixels.
func (d *Document) Size() (width, height int) { return d.width, d.height }

// ViewBox returns the view box attribute, centered on the origin.
func (d *Document) ViewBox() string {
	w := float64(d.width)
	h := float64(d.height)
	return fmt.Sprintf("%s %s %s %s",
		formatFloat(-w/2, -1), formatFloat(-h/2, -1),
		strconv.Itoa(d.width), strconv.Itoa(d.height))
}

// Append adds n as the last child.
func (d *Document) Append(n Node) { d.children = append(d.children, n) }

// Children returns the child nodes in document order.
func (d *Document) Children() []Node { return d.children }

// Paths returns the <path> children in document order.
func (d *Document) Paths() []*Path {
	var paths []*Path
	for _, n := range d.children {
		if p, ok := n.(*Path); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// Clear removes every child.
func (d *Document) Clear() {
	clear(d.children)
	d.children = d.children[:0]
}

// ClearPaths removes the <path> children and keeps everything else.
func (d *Document) ClearPaths() {
	kept := d.children[:0]
	for _, n := range d.children {
		if _, ok := n.(*Path); !ok {
			kept = append(kept, n)
		}
	}
	clear(d.children[len(kept):])
	d.children = kept
}

type svgRoot struct {
	XMLName xml.Name `xml:"svg"`
	Xmlns   string   `xml:"xmlns,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Width   int      `xml:"width,attr"`
	Height  int      `xml:"height,attr"`
	Style   string   `xml:"style,attr,omitempty"`
	Nodes   []Node
}

// WriteTo writes the document as a standalone SVG file.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	root := svgRoot{
		Xmlns:   svgNamespace,
		ViewBox: d.ViewBox(),
		Width:   d.width,
		Height:  d.height,
		Nodes:   d.children,
	}
	if d.Background != "" {
		root.Style = "background-color:" + d.Background
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return 0, fmt.Errorf("vector: encode svg: %w", err)
	}
	buf.WriteByte('\n')
	return buf.WriteTo(w)
}

// String returns the SVG text.
func (d *Document) String() string {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return ""
	}
	return buf.String()
}
