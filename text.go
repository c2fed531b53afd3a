package svg

import (
	"github.com/gogpu/svg/internal/blend"
	"github.com/gogpu/svg/internal/color"
	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/paint"
	"github.com/gogpu/svg/internal/render"
)

// TextStamper draws text nodes. The renderer resolves position, anchor
// and paint; the stamper shapes the string and blends glyph coverage into
// the layer through the run's shader.
type TextStamper = render.TextStamper

// TextRun is one anchored line of text handed to a TextStamper.
type TextRun = render.TextRun

// Layer is a premultiplied float RGBA pixel buffer.
type Layer = blend.Layer

// Shader colors a horizontal span of device pixels.
type Shader = paint.Shader

// Matrix is a 2D affine transform: x' = A·x + B·y + C, y' = D·x + E·y + F.
type Matrix = geom.Matrix

// Color is a float RGBA color. Shaders produce premultiplied values.
type Color = color.RGBA
