package path

import (
	"math"

	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/pathdata"
)

// kappa is the control point distance for a quarter circle of radius 1.
const kappa = 0.5522847498307936

// Rect returns the outline of a rectangle with optional rounded corners.
// rx and ry are clamped to half the width and height.
func Rect(x, y, w, h, rx, ry float64) []Element {
	if w <= 0 || h <= 0 {
		return nil
	}
	b := NewBuilder()
	rx = math.Min(math.Max(rx, 0), w/2)
	ry = math.Min(math.Max(ry, 0), h/2)
	if rx == 0 || ry == 0 {
		b.MoveTo(geom.Pt(x, y))
		b.LineTo(geom.Pt(x+w, y))
		b.LineTo(geom.Pt(x+w, y+h))
		b.LineTo(geom.Pt(x, y+h))
		b.Close()
		return b.Elements()
	}

	kx, ky := rx*kappa, ry*kappa
	r, btm := x+w, y+h
	b.MoveTo(geom.Pt(x+rx, y))
	b.LineTo(geom.Pt(r-rx, y))
	b.CubicTo(geom.Pt(r-rx+kx, y), geom.Pt(r, y+ry-ky), geom.Pt(r, y+ry))
	b.LineTo(geom.Pt(r, btm-ry))
	b.CubicTo(geom.Pt(r, btm-ry+ky), geom.Pt(r-rx+kx, btm), geom.Pt(r-rx, btm))
	b.LineTo(geom.Pt(x+rx, btm))
	b.CubicTo(geom.Pt(x+rx-kx, btm), geom.Pt(x, btm-ry+ky), geom.Pt(x, btm-ry))
	b.LineTo(geom.Pt(x, y+ry))
	b.CubicTo(geom.Pt(x, y+ry-ky), geom.Pt(x+rx-kx, y), geom.Pt(x+rx, y))
	b.Close()
	return b.Elements()
}

// Ellipse returns an ellipse as four cubic quarter arcs.
func Ellipse(cx, cy, rx, ry float64) []Element {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	b := NewBuilder()
	kx, ky := rx*kappa, ry*kappa
	b.MoveTo(geom.Pt(cx+rx, cy))
	b.CubicTo(geom.Pt(cx+rx, cy+ky), geom.Pt(cx+kx, cy+ry), geom.Pt(cx, cy+ry))
	b.CubicTo(geom.Pt(cx-kx, cy+ry), geom.Pt(cx-rx, cy+ky), geom.Pt(cx-rx, cy))
	b.CubicTo(geom.Pt(cx-rx, cy-ky), geom.Pt(cx-kx, cy-ry), geom.Pt(cx, cy-ry))
	b.CubicTo(geom.Pt(cx+kx, cy-ry), geom.Pt(cx+rx, cy-ky), geom.Pt(cx+rx, cy))
	b.Close()
	return b.Elements()
}

// Polyline returns an open (or, with closed set, closed) polyline.
func Polyline(pts []geom.Point, closed bool) []Element {
	if len(pts) == 0 {
		return nil
	}
	b := NewBuilder()
	b.MoveTo(pts[0])
	for _, p := range pts[1:] {
		b.LineTo(p)
	}
	if closed {
		b.Close()
	}
	return b.Elements()
}

// FromSegments converts parsed path data to elements. Elliptical arcs are
// approximated by cubic curves; degenerate arcs become lines or vanish.
func FromSegments(segs []pathdata.Segment) []Element {
	b := NewBuilder()
	for _, s := range segs {
		switch s := s.(type) {
		case pathdata.MoveTo:
			b.MoveTo(s.To)
		case pathdata.LineTo:
			b.LineTo(s.To)
		case pathdata.QuadTo:
			b.QuadTo(s.Ctrl, s.To)
		case pathdata.CubicTo:
			b.CubicTo(s.Ctrl1, s.Ctrl2, s.To)
		case pathdata.ArcTo:
			from := b.Current()
			if arc, ok := s.Center(from); ok {
				AppendArc(b, arc, s.To)
			} else if from != s.To {
				b.LineTo(s.To)
			}
		case pathdata.Close:
			b.Close()
		}
	}
	return b.Elements()
}

// AppendArc appends an elliptical arc as cubic pieces spanning at most
// 90 degrees each. The builder's current point must be the arc start; the
// last piece ends exactly at end.
func AppendArc(b *Builder, arc pathdata.EllipticalArc, end geom.Point) {
	n := int(math.Ceil(math.Abs(arc.Delta) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := arc.Delta / float64(n)
	// control length for a unit circle arc of angle step
	k := math.Sin(step) * (math.Sqrt(4+3*math.Tan(step/2)*math.Tan(step/2)) - 1) / 3

	sinPhi, cosPhi := math.Sincos(arc.Phi)
	// derivative of the arc point with respect to theta
	deriv := func(theta float64) geom.Point {
		s, c := math.Sincos(theta)
		dx := -arc.RX * s
		dy := arc.RY * c
		return geom.Point{X: cosPhi*dx - sinPhi*dy, Y: sinPhi*dx + cosPhi*dy}
	}

	theta := arc.Theta1
	p0 := arc.Point(theta)
	for i := 0; i < n; i++ {
		t1 := theta + step
		if i == n-1 {
			t1 = arc.Theta1 + arc.Delta
		}
		p1 := arc.Point(t1)
		if i == n-1 {
			p1 = end
		}
		c1 := p0.Add(deriv(theta).Mul(k))
		c2 := p1.Sub(deriv(t1).Mul(k))
		b.CubicTo(c1, c2, p1)
		p0, theta = p1, t1
	}
}
