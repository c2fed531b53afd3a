// Package stroke converts stroked polylines into filled outlines.
//
// A stroke is emitted as a union of simple convex pieces: one quad per
// segment, a wedge at every join and a cap at every open end. All pieces
// are oriented the same way, so filling them together with the non-zero
// rule yields exactly their union without holes at overlaps.
//
// # Line Caps
//
//   - LineCapButt: Flat cap ending exactly at the endpoint
//   - LineCapRound: Semicircular cap with radius = width/2
//   - LineCapSquare: Square cap extending width/2 beyond the endpoint
//
// # Line Joins
//
//   - LineJoinMiter: Sharp corner (limited by miter limit)
//   - LineJoinRound: Circular arc at corners
//   - LineJoinBevel: Straight line across the corner
package stroke

import (
	"math"

	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/path"
)

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinRound specifies a rounded join.
	LineJoinRound LineJoin = iota
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Stroke defines the style for stroke expansion.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStroke returns the stroke used when a document sets no stroke
// geometry properties: width 1, butt caps, round joins.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinRound,
		MiterLimit: 4.0,
	}
}

// Expander converts stroked contours to fill contours.
type Expander struct {
	style     Stroke
	tolerance float64
	flat      *path.Flattener
	out       []path.Contour
}

// NewExpander creates a new stroke expander with the given style.
func NewExpander(style Stroke) *Expander {
	e := &Expander{style: style}
	e.SetTolerance(path.DefaultTolerance)
	return e
}

// SetTolerance sets the flattening tolerance for round joins and caps,
// in the coordinate space of the input.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
		e.flat = path.NewFlattener(tolerance)
	}
}

// Expand returns the fill contours covering the stroke of contours.
// A non-positive width yields nothing.
func (e *Expander) Expand(contours []path.Contour) []path.Contour {
	e.out = nil
	if !(e.style.Width > 0) {
		return nil
	}
	for _, c := range contours {
		pts := dedup(c.Points)
		if len(pts) == 1 {
			e.dot(pts[0])
			continue
		}
		closed := c.Closed && len(pts) > 2
		e.segments(pts, closed)
		e.joins(pts, closed)
		if !closed {
			e.cap(pts[0], pts[0].Sub(pts[1]))
			n := len(pts)
			e.cap(pts[n-1], pts[n-1].Sub(pts[n-2]))
		}
	}
	return e.out
}

// dedup drops consecutive duplicate points and a closing point equal to
// the first one.
func dedup(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) == 0 || p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	if len(out) > 2 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// normal returns the unit vector perpendicular to d scaled to half width.
func (e *Expander) normal(d geom.Point) geom.Point {
	return perp(d.Normalize()).Mul(0.5 * e.style.Width)
}

func perp(v geom.Point) geom.Point {
	return geom.Point{X: -v.Y, Y: v.X}
}

// segments emits one quad per segment.
func (e *Expander) segments(pts []geom.Point, closed bool) {
	n := len(pts)
	last := n - 1
	if closed {
		last = n
	}
	for i := 0; i < last; i++ {
		a, b := pts[i], pts[(i+1)%n]
		nrm := e.normal(b.Sub(a))
		e.emit([]geom.Point{a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm)})
	}
}

// joins emits a wedge at every interior vertex, and at every vertex of a
// closed contour.
func (e *Expander) joins(pts []geom.Point, closed bool) {
	n := len(pts)
	for i := 0; i < n; i++ {
		if !closed && (i == 0 || i == n-1) {
			continue
		}
		prev, p, next := pts[(i+n-1)%n], pts[i], pts[(i+1)%n]
		e.join(p, p.Sub(prev), next.Sub(p))
	}
}

// join connects the outer offsets of two segments meeting at p.
func (e *Expander) join(p, tan0, tan1 geom.Point) {
	cross := tan0.Cross(tan1)
	dot := tan0.Dot(tan1)
	angle := math.Atan2(cross, dot)
	r := 0.5 * e.style.Width
	// the gap on the outer side is about r*|angle|; skip it below tolerance
	if math.Abs(angle)*r <= e.tolerance && dot > 0 {
		return
	}

	n0, n1 := e.normal(tan0), e.normal(tan1)
	if cross > 0 {
		// turning towards +normal, the outer side is -normal
		n0, n1 = n0.Mul(-1), n1.Mul(-1)
	}
	o0, o1 := p.Add(n0), p.Add(n1)

	switch e.style.Join {
	case LineJoinBevel:
		e.emit([]geom.Point{p, o0, o1})
	case LineJoinMiter:
		// miter length ratio is 1/sin(theta/2), theta the interior angle
		theta := math.Pi - math.Abs(angle)
		if s := math.Sin(theta / 2); s > 0 && 1/s <= e.style.MiterLimit {
			bis := n0.Add(n1).Normalize()
			tip := p.Add(bis.Mul(r / s))
			e.emit([]geom.Point{p, o0, tip, o1})
		} else {
			e.emit([]geom.Point{p, o0, o1})
		}
	default:
		e.arcPiece(p, n0, signedAngle(n0, n1))
	}
}

// signedAngle returns the rotation from a to b in (-pi, pi].
func signedAngle(a, b geom.Point) float64 {
	return math.Atan2(a.Cross(b), a.Dot(b))
}

// cap emits the end cap at p; dir points away from the line.
func (e *Expander) cap(p, dir geom.Point) {
	nrm := e.normal(dir)
	switch e.style.Cap {
	case LineCapRound:
		// nrm is dir rotated by +90 degrees; sweeping back by pi passes
		// through dir and ends at -nrm
		e.arcPiece(p, nrm, -math.Pi)
	case LineCapSquare:
		ext := dir.Normalize().Mul(0.5 * e.style.Width)
		e.emit([]geom.Point{p.Add(nrm), p.Add(nrm).Add(ext), p.Sub(nrm).Add(ext), p.Sub(nrm)})
	}
}

// dot strokes a zero-length subpath: a disc for round caps, an
// axis-aligned square for square caps, nothing for butt caps.
func (e *Expander) dot(p geom.Point) {
	r := 0.5 * e.style.Width
	switch e.style.Cap {
	case LineCapRound:
		e.emitElements(path.Ellipse(p.X, p.Y, r, r))
	case LineCapSquare:
		e.emitElements(path.Rect(p.X-r, p.Y-r, 2*r, 2*r, 0, 0))
	}
}

// arcPiece emits the circular sector at center starting at offset from,
// sweeping by angle radians.
func (e *Expander) arcPiece(center, from geom.Point, angle float64) {
	b := path.NewBuilder()
	b.MoveTo(center)
	b.LineTo(center.Add(from))
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := angle / float64(n)
	a := math.Atan2(from.Y, from.X)
	radius := from.Length()
	for i := 0; i < n; i++ {
		arcSegment(b, center, radius, a, a+step)
		a += step
	}
	b.Close()
	e.emitElements(b.Elements())
}

// arcSegment adds a single arc segment (up to 90 degrees) using cubic Bezier.
func arcSegment(b *path.Builder, center geom.Point, radius, a0, a1 float64) {
	da := a1 - a0
	alpha := math.Sin(da) * (math.Sqrt(4+3*math.Tan(da/2)*math.Tan(da/2)) - 1) / 3

	sin0, cos0 := math.Sincos(a0)
	sin1, cos1 := math.Sincos(a1)

	p1 := geom.Point{X: center.X + radius*cos0, Y: center.Y + radius*sin0}
	p2 := geom.Point{X: center.X + radius*cos1, Y: center.Y + radius*sin1}

	c1 := geom.Point{X: p1.X - alpha*radius*sin0, Y: p1.Y + alpha*radius*cos0}
	c2 := geom.Point{X: p2.X + alpha*radius*sin1, Y: p2.Y - alpha*radius*cos1}

	b.CubicTo(c1, c2, p2)
}

func (e *Expander) emitElements(el []path.Element) {
	for _, c := range e.flat.Flatten(el) {
		e.emit(c.Points)
	}
}

// emit appends a closed piece with positive signed area, dropping
// degenerate ones.
func (e *Expander) emit(pts []geom.Point) {
	a := signedArea(pts)
	if a == 0 || math.IsNaN(a) {
		return
	}
	if a < 0 {
		rev := make([]geom.Point, len(pts))
		for i, p := range pts {
			rev[len(pts)-1-i] = p
		}
		pts = rev
	}
	e.out = append(e.out, path.Contour{Points: pts, Closed: true})
}

func signedArea(pts []geom.Point) float64 {
	var s float64
	for i := range pts {
		j := (i + 1) % len(pts)
		s += pts[i].Cross(pts[j])
	}
	return s / 2
}
