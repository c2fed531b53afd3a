// Package pathdata parses the SVG path data grammar (the "d" attribute)
// into absolute segments.
package pathdata

import (
	"math"

	"github.com/gogpu/svg/internal/geom"
)

// Segment is one absolute path command. The set of implementations is
// closed: MoveTo, LineTo, QuadTo, CubicTo, ArcTo and Close.
type Segment interface {
	isSegment()
}

// MoveTo starts a new subpath.
type MoveTo struct{ To geom.Point }

// LineTo draws a straight line.
type LineTo struct{ To geom.Point }

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct{ Ctrl, To geom.Point }

// CubicTo draws a cubic Bezier curve.
type CubicTo struct{ Ctrl1, Ctrl2, To geom.Point }

// ArcTo draws an elliptical arc in endpoint parameterization.
// Rotation is in degrees, as written in the source.
type ArcTo struct {
	RX, RY   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
	To       geom.Point
}

// Close closes the current subpath.
type Close struct{}

func (MoveTo) isSegment()  {}
func (LineTo) isSegment()  {}
func (QuadTo) isSegment()  {}
func (CubicTo) isSegment() {}
func (ArcTo) isSegment()   {}
func (Close) isSegment()   {}

// EllipticalArc is an arc in center parameterization.
type EllipticalArc struct {
	Center geom.Point
	RX, RY float64
	Phi    float64 // x-axis rotation in radians
	Theta1 float64 // start angle in radians
	Delta  float64 // signed sweep in radians, positive when sweep-flag is set
}

// Point returns the arc point at parameter angle theta.
func (a EllipticalArc) Point(theta float64) geom.Point {
	sinPhi, cosPhi := math.Sincos(a.Phi)
	sinT, cosT := math.Sincos(theta)
	x := a.RX * cosT
	y := a.RY * sinT
	return geom.Point{
		X: a.Center.X + cosPhi*x - sinPhi*y,
		Y: a.Center.Y + sinPhi*x + cosPhi*y,
	}
}

// Center converts the arc from from to a.To into center parameterization
// following the SVG implementation notes (appendix F.6.5/F.6.6).
// ok is false when the arc degenerates: coincident endpoints draw nothing,
// zero radii draw a straight line.
func (a ArcTo) Center(from geom.Point) (arc EllipticalArc, ok bool) {
	if from == a.To {
		return EllipticalArc{}, false
	}
	rx, ry := math.Abs(a.RX), math.Abs(a.RY)
	if rx == 0 || ry == 0 {
		return EllipticalArc{}, false
	}

	phi := a.Rotation * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// step 1: compute (x1', y1')
	dx2 := (from.X - a.To.X) / 2
	dy2 := (from.Y - a.To.Y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// correct out-of-range radii
	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// step 2: compute (cx', cy')
	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	den := rx2*y1p*y1p + ry2*x1p*x1p
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if a.LargeArc == a.Sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	// step 3: compute (cx, cy)
	cx := cosPhi*cxp - sinPhi*cyp + (from.X+a.To.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (from.Y+a.To.Y)/2

	// step 4: angles
	ux := (x1p - cxp) / rx
	uy := (y1p - cyp) / ry
	vx := (-x1p - cxp) / rx
	vy := (-y1p - cyp) / ry
	theta1 := math.Atan2(uy, ux)
	dtheta := math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !a.Sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if a.Sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	return EllipticalArc{
		Center: geom.Point{X: cx, Y: cy},
		RX:     rx,
		RY:     ry,
		Phi:    phi,
		Theta1: theta1,
		Delta:  dtheta,
	}, true
}
