// Package path turns shapes and path data into polygons: outline
// construction, arc approximation and adaptive curve flattening.
package path

import "github.com/gogpu/svg/internal/geom"

// Element represents an element in a path. The set is closed:
// MoveTo, LineTo, QuadTo, CubicTo and Close.
type Element interface {
	isElement()
}

// MoveTo starts a subpath.
type MoveTo struct{ Point geom.Point }

// LineTo draws a line.
type LineTo struct{ Point geom.Point }

// QuadTo draws a quadratic curve.
type QuadTo struct{ Control, Point geom.Point }

// CubicTo draws a cubic curve.
type CubicTo struct{ Control1, Control2, Point geom.Point }

// Close closes the subpath.
type Close struct{}

func (MoveTo) isElement()  {}
func (LineTo) isElement()  {}
func (QuadTo) isElement()  {}
func (CubicTo) isElement() {}
func (Close) isElement()   {}

// Builder accumulates path elements.
type Builder struct {
	elements []Element
	current  geom.Point
	start    geom.Point
	open     bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{elements: make([]Element, 0, 16)}
}

// MoveTo starts a new subpath at p.
func (b *Builder) MoveTo(p geom.Point) {
	b.elements = append(b.elements, MoveTo{Point: p})
	b.current, b.start = p, p
	b.open = true
}

// LineTo adds a line to p.
func (b *Builder) LineTo(p geom.Point) {
	b.ensureOpen()
	b.elements = append(b.elements, LineTo{Point: p})
	b.current = p
}

// QuadTo adds a quadratic curve.
func (b *Builder) QuadTo(c, p geom.Point) {
	b.ensureOpen()
	b.elements = append(b.elements, QuadTo{Control: c, Point: p})
	b.current = p
}

// CubicTo adds a cubic curve.
func (b *Builder) CubicTo(c1, c2, p geom.Point) {
	b.ensureOpen()
	b.elements = append(b.elements, CubicTo{Control1: c1, Control2: c2, Point: p})
	b.current = p
}

// Close closes the current subpath. The current point returns to its start.
func (b *Builder) Close() {
	if !b.open {
		return
	}
	b.elements = append(b.elements, Close{})
	b.current = b.start
	b.open = false
}

// Current returns the current point.
func (b *Builder) Current() geom.Point { return b.current }

// Elements returns the accumulated elements.
func (b *Builder) Elements() []Element { return b.elements }

// drawing after a Close continues from the subpath start
func (b *Builder) ensureOpen() {
	if !b.open {
		b.MoveTo(b.current)
	}
}

// EndPoint returns the point an element ends at. Close reports ok=false.
func EndPoint(el Element) (geom.Point, bool) {
	switch e := el.(type) {
	case MoveTo:
		return e.Point, true
	case LineTo:
		return e.Point, true
	case QuadTo:
		return e.Point, true
	case CubicTo:
		return e.Point, true
	}
	return geom.Point{}, false
}

// TransformElements appends the elements mapped through m to dst.
func TransformElements(dst []Element, els []Element, m geom.Matrix) []Element {
	for _, el := range els {
		switch e := el.(type) {
		case MoveTo:
			dst = append(dst, MoveTo{m.TransformPoint(e.Point)})
		case LineTo:
			dst = append(dst, LineTo{m.TransformPoint(e.Point)})
		case QuadTo:
			dst = append(dst, QuadTo{m.TransformPoint(e.Control), m.TransformPoint(e.Point)})
		case CubicTo:
			dst = append(dst, CubicTo{
				m.TransformPoint(e.Control1),
				m.TransformPoint(e.Control2),
				m.TransformPoint(e.Point),
			})
		case Close:
			dst = append(dst, e)
		}
	}
	return dst
}
