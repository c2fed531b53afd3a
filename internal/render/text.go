package render

import (
	"github.com/gogpu/svg/internal/blend"
	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/paint"
	"github.com/gogpu/svg/internal/scene"
)

// TextRun is one line of text ready to be stamped.
type TextRun struct {
	Text       string
	FontFamily string
	FontSize   float64
	// Matrix maps text space to device pixels. Text space has its origin
	// at the start of the baseline, x to the right and y down, in user
	// units.
	Matrix geom.Matrix
	// Shader colors the glyph coverage.
	Shader paint.Shader
	// Alpha scales the coverage.
	Alpha float32
}

// TextStamper shapes text and draws it into a layer.
type TextStamper interface {
	// Advance returns the advance width of s in user units.
	Advance(s, family string, fontSize float64) (float64, error)
	// StampText draws run into dst.
	StampText(dst *blend.Layer, run TextRun) error
}

// text anchors a text node and hands it to the stamper. Only the fill is
// drawn.
func (r *renderer) text(t *scene.Text, m geom.Matrix) {
	if r.opts.Text == nil {
		r.warn(&TextWarning{Content: t.Content, Reason: "no text stamper configured"})
		return
	}
	if t.Fill == nil {
		return
	}
	if t.Stroke != nil {
		r.warn(&TextWarning{Content: t.Content, Reason: "text stroke is not supported, drawing fill only"})
	}

	adv, err := r.opts.Text.Advance(t.Content, t.FontFamily, t.FontSize)
	if err != nil {
		r.warn(&TextWarning{Content: t.Content, Reason: "shaping failed", Err: err})
		return
	}
	x := t.X
	switch t.Anchor {
	case scene.AnchorMiddle:
		x -= adv / 2
	case scene.AnchorEnd:
		x -= adv
	}

	// em box estimate: ascent 0.8em, descent 0.2em
	bbox := geom.Rect{
		Min: geom.Pt(x, t.Y-0.8*t.FontSize),
		Max: geom.Pt(x+adv, t.Y+0.2*t.FontSize),
	}
	sh, ok := r.shader(t.Fill, m, bbox)
	if !ok {
		return
	}

	run := TextRun{
		Text:       t.Content,
		FontFamily: t.FontFamily,
		FontSize:   t.FontSize,
		Matrix:     m.Multiply(geom.Translate(x, t.Y)),
		Shader:     sh,
		Alpha:      float32(t.Opacity * t.FillOpacity),
	}
	if err := r.opts.Text.StampText(r.stack.Current(), run); err != nil {
		r.warn(&TextWarning{Content: t.Content, Reason: "stamping failed", Err: err})
	}
}
