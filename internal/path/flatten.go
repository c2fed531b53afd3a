package path

import (
	"math"

	"github.com/gogpu/svg/internal/geom"
)

const (
	// DefaultTolerance is the maximum distance, in device pixels, between
	// a curve and its flattened polyline.
	DefaultTolerance = 0.25
	// MaxDepth bounds curve subdivision. A curve still too far from its
	// chord at this depth is emitted as the chord.
	MaxDepth = 16
)

// Contour is a flattened subpath.
type Contour struct {
	Points []geom.Point
	Closed bool
}

// Flattener converts curves into polylines by adaptive subdivision.
type Flattener struct {
	// Tolerance is the flatness bound in the coordinate space of the input.
	Tolerance float64
	// MaxDepth bounds recursion; zero means MaxDepth.
	MaxDepth int
	// DepthLimited counts curves cut off at MaxDepth.
	DepthLimited int
}

// NewFlattener returns a flattener with the given tolerance.
func NewFlattener(tolerance float64) *Flattener {
	return &Flattener{Tolerance: tolerance, MaxDepth: MaxDepth}
}

// UserTolerance converts a device tolerance into the user space of ctm.
func UserTolerance(deviceTol float64, ctm geom.Matrix) float64 {
	s := ctm.MaxScale()
	if !(s > 0) || math.IsInf(s, 0) {
		return deviceTol
	}
	return deviceTol / s
}

// Flatten converts path elements into contours. Every subpath, open or
// closed, becomes one contour; subpaths with a single point are dropped.
func (f *Flattener) Flatten(elements []Element) []Contour {
	var out []Contour
	var cur []geom.Point
	var current geom.Point

	flush := func(closed bool) {
		if len(cur) >= 2 {
			out = append(out, Contour{Points: cur, Closed: closed})
		} else if closed && len(cur) == 1 {
			// zero-length closed subpath, kept for stroke caps
			out = append(out, Contour{Points: cur, Closed: true})
		}
		cur = nil
	}

	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			flush(false)
			current = e.Point
			cur = []geom.Point{current}

		case LineTo:
			if cur == nil {
				cur = []geom.Point{current}
			}
			current = e.Point
			cur = append(cur, current)

		case QuadTo:
			if cur == nil {
				cur = []geom.Point{current}
			}
			cur = f.quad(cur, current, e.Control, e.Point, 0)
			current = e.Point

		case CubicTo:
			if cur == nil {
				cur = []geom.Point{current}
			}
			cur = f.cubic(cur, current, e.Control1, e.Control2, e.Point, 0)
			current = e.Point

		case Close:
			if len(cur) > 0 {
				current = cur[0]
			}
			flush(true)
		}
	}
	flush(false)
	return out
}

func (f *Flattener) maxDepth() int {
	if f.MaxDepth <= 0 {
		return MaxDepth
	}
	return f.MaxDepth
}

// quad recursively subdivides a quadratic Bezier curve.
func (f *Flattener) quad(pts []geom.Point, p0, p1, p2 geom.Point, depth int) []geom.Point {
	if distanceToLine(p1, p0, p2) <= f.Tolerance {
		return append(pts, p2)
	}
	if depth >= f.maxDepth() {
		f.DepthLimited++
		return append(pts, p2)
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)

	pts = f.quad(pts, p0, q0, q2, depth+1)
	return f.quad(pts, q2, q1, p2, depth+1)
}

// cubic recursively subdivides a cubic Bezier curve.
func (f *Flattener) cubic(pts []geom.Point, p0, p1, p2, p3 geom.Point, depth int) []geom.Point {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if dist <= f.Tolerance {
		return append(pts, p3)
	}
	if depth >= f.maxDepth() {
		f.DepthLimited++
		return append(pts, p3)
	}

	// Subdivide the curve using de Casteljau's algorithm
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	pts = f.cubic(pts, p0, q0, r0, s, depth+1)
	return f.cubic(pts, s, r1, q2, p3, depth+1)
}

// distanceToLine calculates the distance from point p to line segment (a, b).
func distanceToLine(p, a, b geom.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-20 {
		return p.Distance(a)
	}

	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}

// Transform maps every contour point through m, returning new contours.
func Transform(contours []Contour, m geom.Matrix) []Contour {
	out := make([]Contour, len(contours))
	for i, c := range contours {
		pts := make([]geom.Point, len(c.Points))
		for j, p := range c.Points {
			pts[j] = m.TransformPoint(p)
		}
		out[i] = Contour{Points: pts, Closed: c.Closed}
	}
	return out
}

// Bounds returns the bounding box of all contour points.
func Bounds(contours []Contour) geom.Rect {
	r := geom.EmptyRect()
	for _, c := range contours {
		for _, p := range c.Points {
			r = r.Extend(p)
		}
	}
	return r
}
