// Package color holds the float color type used by the paint and blend
// stages, CSS color parsing, and sRGB/linear conversions.
package color

// Space selects the color space gradients interpolate in.
type Space uint8

const (
	// SpaceSRGB interpolates gamma-encoded sRGB components (SVG default).
	SpaceSRGB Space = iota
	// SpaceLinear interpolates linear-light components (color-interpolation: linearRGB).
	SpaceLinear
)

// RGBA is a color with float32 components in [0,1].
// Whether RGB is premultiplied by alpha depends on context: parsed colors
// are straight, layer pixels are premultiplied.
// Alpha is always linear (never gamma-encoded).
type RGBA struct {
	R, G, B, A float32
}

// RGBA8 is a straight 8-bit color.
type RGBA8 struct {
	R, G, B, A uint8
}

var (
	// Black is opaque black, the initial fill.
	Black = RGBA{A: 1}
	// White is opaque white, the default background.
	White = RGBA{R: 1, G: 1, B: 1, A: 1}
	// Transparent has zero alpha.
	Transparent = RGBA{}
)

// Premultiply multiplies RGB by alpha.
func (c RGBA) Premultiply() RGBA {
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply divides RGB by alpha. Zero alpha yields transparent.
func (c RGBA) Unpremultiply() RGBA {
	if c.A <= 0 {
		return Transparent
	}
	inv := 1 / c.A
	return RGBA{R: c.R * inv, G: c.G * inv, B: c.B * inv, A: c.A}
}

// MulAlpha scales alpha of a straight color by k.
func (c RGBA) MulAlpha(k float32) RGBA {
	c.A *= k
	return c
}

// Lerp interpolates component-wise between c (t=0) and d (t=1).
func (c RGBA) Lerp(d RGBA, t float32) RGBA {
	return RGBA{
		R: c.R + (d.R-c.R)*t,
		G: c.G + (d.G-c.G)*t,
		B: c.B + (d.B-c.B)*t,
		A: c.A + (d.A-c.A)*t,
	}
}
