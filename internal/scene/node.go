// Package scene builds a typed scene graph from SVG markup.
//
// Parse decodes the document into a small DOM, resolves presentation
// attributes and the style attribute with inheritance, converts units
// against the enclosing viewport and resolves paint servers. The result is
// a strict tree of Node values in paint order, with all lengths in user
// units and all paints fully resolved.
package scene

import (
	"github.com/gogpu/svg/internal/color"
	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/paint"
	"github.com/gogpu/svg/internal/pathdata"
	"github.com/gogpu/svg/internal/raster"
	"github.com/gogpu/svg/internal/stroke"
)

// Node is one element of the scene graph. The set of implementations is
// closed: *Rect, *Circle, *Ellipse, *Line, *Polyline, *Polygon, *Path,
// *Group and *Text.
type Node interface {
	Common() *Base
	isNode()
}

// Base holds the properties shared by every node.
type Base struct {
	ID string
	// Transform maps the node's user space into its parent's.
	Transform geom.Matrix

	// Fill and Stroke are nil when the node does not paint them.
	Fill   Paint
	Stroke Paint

	StrokeWidth float64
	FillRule    raster.FillRule
	Cap         stroke.LineCap
	Join        stroke.LineJoin
	MiterLimit  float64

	Opacity       float64
	FillOpacity   float64
	StrokeOpacity float64

	// Hidden is set by visibility="hidden": the node is kept in the tree
	// but paints nothing itself.
	Hidden bool
}

// Common returns the shared properties.
func (b *Base) Common() *Base { return b }

// StrokeStyle returns the stroke geometry of the node.
func (b *Base) StrokeStyle() stroke.Stroke {
	return stroke.Stroke{
		Width:      b.StrokeWidth,
		Cap:        b.Cap,
		Join:       b.Join,
		MiterLimit: b.MiterLimit,
	}
}

func defaultBase() Base {
	return Base{
		Transform:     geom.Identity(),
		Fill:          SolidColor{Color: color.Black},
		StrokeWidth:   1,
		FillRule:      raster.FillRuleNonZero,
		Cap:           stroke.LineCapButt,
		Join:          stroke.LineJoinRound,
		MiterLimit:    4,
		Opacity:       1,
		FillOpacity:   1,
		StrokeOpacity: 1,
	}
}

// Group owns an ordered list of children, painted in order.
type Group struct {
	Base
	Children []Node
}

// Rect is a possibly rounded rectangle.
type Rect struct {
	Base
	X, Y, Width, Height float64
	RX, RY              float64
}

// Circle is a circle.
type Circle struct {
	Base
	CX, CY, R float64
}

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	Base
	CX, CY, RX, RY float64
}

// Line is a single open segment.
type Line struct {
	Base
	X1, Y1, X2, Y2 float64
}

// Polyline is an open list of points.
type Polyline struct {
	Base
	Points []geom.Point
}

// Polygon is a closed list of points.
type Polygon struct {
	Base
	Points []geom.Point
}

// Path is parsed path data. Segments is empty when the data was
// malformed.
type Path struct {
	Base
	Segments []pathdata.Segment
}

// TextAnchor aligns text relative to its anchor point.
type TextAnchor int

const (
	// AnchorStart places the start of the text at the anchor.
	AnchorStart TextAnchor = iota
	// AnchorMiddle centers the text on the anchor.
	AnchorMiddle
	// AnchorEnd places the end of the text at the anchor.
	AnchorEnd
)

// Text is a run of characters anchored at (X, Y) on the baseline.
type Text struct {
	Base
	X, Y       float64
	Content    string
	FontSize   float64
	FontFamily string
	Anchor     TextAnchor
}

func (*Group) isNode()    {}
func (*Rect) isNode()     {}
func (*Circle) isNode()   {}
func (*Ellipse) isNode()  {}
func (*Line) isNode()     {}
func (*Polyline) isNode() {}
func (*Polygon) isNode()  {}
func (*Path) isNode()     {}
func (*Text) isNode()     {}

// Paint is a resolved paint server: SolidColor, LinearGradient or
// RadialGradient.
type Paint interface {
	isPaint()
}

// SolidColor paints a single straight sRGB color.
type SolidColor struct {
	Color color.RGBA
}

// Units selects the coordinate system of gradient attributes.
type Units int

const (
	// ObjectBoundingBox expresses coordinates as fractions of the
	// bounding box of the painted element.
	ObjectBoundingBox Units = iota
	// UserSpaceOnUse expresses coordinates in the user space of the
	// painted element.
	UserSpaceOnUse
)

// LinearGradient interpolates along the axis from (X1,Y1) to (X2,Y2).
type LinearGradient struct {
	Stops          []paint.Stop
	X1, Y1, X2, Y2 float64
	Transform      geom.Matrix
	Units          Units
	Spread         paint.Spread
	Interp         color.Space
}

// RadialGradient interpolates from the focal point (FX,FY) to the circle
// of radius R around (CX,CY).
type RadialGradient struct {
	Stops     []paint.Stop
	CX, CY, R float64
	FX, FY    float64
	Transform geom.Matrix
	Units     Units
	Spread    paint.Spread
	Interp    color.Space
}

func (SolidColor) isPaint()      {}
func (*LinearGradient) isPaint() {}
func (*RadialGradient) isPaint() {}

// Document is a parsed SVG document.
type Document struct {
	// Width and Height are the intrinsic size in user units (px).
	Width, Height float64
	// ViewBox is the user-space rectangle mapped onto the canvas. It is
	// meaningful only when HasViewBox is set.
	ViewBox    geom.Rect
	HasViewBox bool
	Aspect     AspectRatio
	Root       *Group
}

// Viewport returns the transform mapping the document's user space onto a
// width x height canvas.
func (d *Document) Viewport(width, height float64) geom.Matrix {
	if d.HasViewBox {
		return d.Aspect.Transform(d.ViewBox, width, height)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return geom.Identity()
	}
	return geom.Scale(width/d.Width, height/d.Height)
}
