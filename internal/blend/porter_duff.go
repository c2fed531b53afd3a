// Package blend composites premultiplied float colors and manages the
// stack of isolated layers used for group opacity.
//
// All colors handled here are premultiplied by alpha, components in [0,1].
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "github.com/gogpu/svg/internal/color"

// SourceOver composites src over dst.
// Formula: S + D*(1-Sa)
func SourceOver(src, dst color.RGBA) color.RGBA {
	inv := 1 - src.A
	return color.RGBA{
		R: src.R + dst.R*inv,
		G: src.G + dst.G*inv,
		B: src.B + dst.B*inv,
		A: src.A + dst.A*inv,
	}
}

// Scale multiplies every component of a premultiplied color by k,
// which scales its opacity.
func Scale(c color.RGBA, k float32) color.RGBA {
	return color.RGBA{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A * k}
}
