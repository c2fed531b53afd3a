package paint

import (
	"math"

	"github.com/gogpu/svg/internal/color"
	"github.com/gogpu/svg/internal/geom"
)

// Shader produces premultiplied colors for a run of pixels.
type Shader interface {
	// ShadeRow fills out[i] with the color of pixel (x0+i, y).
	ShadeRow(y, x0 int, out []color.RGBA)
}

// Solid is a uniform color.
type Solid struct {
	c color.RGBA // premultiplied
}

// NewSolid returns a shader for the straight color c.
func NewSolid(c color.RGBA) *Solid {
	return &Solid{c: c.Premultiply()}
}

// ShadeRow implements Shader.
func (s *Solid) ShadeRow(_, _ int, out []color.RGBA) {
	for i := range out {
		out[i] = s.c
	}
}

// Linear is a linear gradient. t is the projection of the gradient-space
// point onto the vector from P1 to P2, normalized by its length.
type Linear struct {
	P1, P2 geom.Point
	ramp   *Ramp
	inv    geom.Matrix

	// cached axis: t = dot(p - P1, axis)
	axis geom.Point
}

// NewLinear creates a linear gradient. m maps gradient space to device
// space. ok is false when m is singular or the vector is degenerate, in
// which case callers paint the last stop color.
func NewLinear(p1, p2 geom.Point, m geom.Matrix, ramp *Ramp) (*Linear, bool) {
	inv, ok := m.Invert()
	d := p2.Sub(p1)
	l2 := d.Dot(d)
	if !ok || l2 == 0 {
		return nil, false
	}
	return &Linear{P1: p1, P2: p2, ramp: ramp, inv: inv, axis: d.Mul(1 / l2)}, true
}

// T returns the gradient parameter at device point p.
func (g *Linear) T(p geom.Point) float64 {
	q := g.inv.TransformPoint(p)
	return q.Sub(g.P1).Dot(g.axis)
}

// ShadeRow implements Shader.
func (g *Linear) ShadeRow(y, x0 int, out []color.RGBA) {
	fy := float64(y) + 0.5
	for i := range out {
		out[i] = g.ramp.At(g.T(geom.Point{X: float64(x0+i) + 0.5, Y: fy}))
	}
}

// Radial is a radial gradient from focal point F to the circle (C, R).
type Radial struct {
	C, F geom.Point
	R    float64
	ramp *Ramp
	inv  geom.Matrix
}

// NewRadial creates a radial gradient. A focal point outside the circle
// is moved onto it, slightly inside. ok is false when m is singular or
// the radius is not positive.
func NewRadial(c geom.Point, r float64, f geom.Point, m geom.Matrix, ramp *Ramp) (*Radial, bool) {
	inv, ok := m.Invert()
	if !ok || !(r > 0) {
		return nil, false
	}
	d := f.Sub(c)
	if l := d.Length(); l > r*0.999 {
		f = c.Add(d.Mul(r * 0.999 / l))
	}
	return &Radial{C: c, F: f, R: r, ramp: ramp, inv: inv}, true
}

// T returns the gradient parameter at device point p.
func (g *Radial) T(p geom.Point) float64 {
	q := g.inv.TransformPoint(p)
	if g.F == g.C {
		return q.Distance(g.C) / g.R
	}
	return g.focalT(q)
}

// focalT solves the ray-circle intersection: the ray from F through q hits
// the circle at F + s*(q-F); t is 1/s.
func (g *Radial) focalT(q geom.Point) float64 {
	d := q.Sub(g.F)
	f := g.C.Sub(g.F)

	a := d.Dot(d)
	if a == 0 {
		return 0
	}
	b := -2 * d.Dot(f)
	c := f.Dot(f) - g.R*g.R

	disc := b*b - 4*a*c
	if disc < 0 {
		return 1
	}
	// c < 0 because F is inside the circle, so exactly one root is positive
	s := (-b + math.Sqrt(disc)) / (2 * a)
	if s <= 0 {
		return 0
	}
	return 1 / s
}

// ShadeRow implements Shader.
func (g *Radial) ShadeRow(y, x0 int, out []color.RGBA) {
	fy := float64(y) + 0.5
	for i := range out {
		out[i] = g.ramp.At(g.T(geom.Point{X: float64(x0+i) + 0.5, Y: fy}))
	}
}
