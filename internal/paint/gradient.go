// Package paint evaluates solid colors and gradients at device pixels.
//
// Shaders work in device space: each gradient carries the inverse of the
// matrix that maps gradient space to device pixels, and samples are taken
// at pixel centres.
package paint

import (
	"cmp"
	"math"
	"slices"
	"sort"

	"github.com/gogpu/svg/internal/color"
)

// Spread defines how gradients extend beyond their defined bounds.
type Spread int

const (
	// SpreadPad extends edge colors beyond bounds (default behavior).
	SpreadPad Spread = iota
	// SpreadReflect mirrors the gradient pattern.
	SpreadReflect
	// SpreadRepeat repeats the gradient pattern.
	SpreadRepeat
)

// Stop is a color at a specific position in a gradient.
// Colors are straight (not premultiplied) sRGB.
type Stop struct {
	Offset float64
	Color  color.RGBA
}

// NormalizeStops clamps offsets to [0,1] and sorts the stops by offset.
// Stops with equal offsets keep their document order. The input slice is
// not modified.
func NormalizeStops(stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	for i, s := range stops {
		out[i] = Stop{Offset: clamp01(s.Offset), Color: s.Color}
	}
	slices.SortStableFunc(out, func(a, b Stop) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
	return out
}

// Ramp is a prepared list of stops ready for sampling.
type Ramp struct {
	stops  []Stop       // normalized
	premul []color.RGBA // premultiplied stop colors in the interpolation space
	spread Spread
	space  color.Space
}

// NewRamp prepares stops for sampling. stops must be non-empty.
func NewRamp(stops []Stop, spread Spread, space color.Space) *Ramp {
	n := NormalizeStops(stops)
	r := &Ramp{stops: n, premul: make([]color.RGBA, len(n)), spread: spread, space: space}
	for i, s := range n {
		c := s.Color
		if space == color.SpaceLinear {
			c = c.ToLinear()
		}
		r.premul[i] = c.Premultiply()
	}
	return r
}

// applySpread maps t into [0, 1].
func applySpread(t float64, mode Spread) float64 {
	switch mode {
	case SpreadRepeat:
		t -= math.Floor(t)
	case SpreadReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if math.Mod(period, 2) == 1 {
			t = 1 - t
		}
	default: // SpreadPad
		t = clamp01(t)
	}
	return t
}

// At returns the premultiplied color at gradient parameter t.
func (r *Ramp) At(t float64) color.RGBA {
	stops := r.stops
	if len(stops) == 1 || math.IsNaN(t) {
		return r.out(r.premul[0])
	}
	t = applySpread(t, r.spread)

	// first stop with offset > t; equal offsets step to the later stop
	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset > t
	})
	if idx == 0 {
		return r.out(r.premul[0])
	}
	if idx >= len(stops) {
		return r.out(r.premul[len(stops)-1])
	}

	s0, s1 := stops[idx-1], stops[idx]
	// s1.Offset > t >= s0.Offset, so the span is never empty
	local := float32((t - s0.Offset) / (s1.Offset - s0.Offset))
	return r.out(r.premul[idx-1].Lerp(r.premul[idx], local))
}

// out converts an interpolated premultiplied color back to sRGB.
func (r *Ramp) out(c color.RGBA) color.RGBA {
	if r.space != color.SpaceLinear {
		return c
	}
	return c.Unpremultiply().ToSRGB().Premultiply()
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
