// Package render draws a scene graph into premultiplied layers.
//
// Nodes are painted depth-first in document order. A group gets its own
// layer only when its opacity is below one; a leaf is isolated only when
// it has opacity below one and paints both fill and stroke. Otherwise
// opacity is folded into the paint alpha.
package render

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/svg/internal/blend"
	"github.com/gogpu/svg/internal/color"
	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/paint"
	"github.com/gogpu/svg/internal/path"
	"github.com/gogpu/svg/internal/raster"
	"github.com/gogpu/svg/internal/scene"
	"github.com/gogpu/svg/internal/stroke"
)

// Options configures a render.
type Options struct {
	Width, Height int
	// Background is a straight color painted under the document.
	Background color.RGBA
	// Flatness is the curve tolerance in device pixels. Zero means
	// path.DefaultTolerance.
	Flatness float64
	// MaxDepth bounds group nesting. Zero means scene.DefaultMaxDepth.
	MaxDepth int
	// Text draws text nodes. Nil skips them with a TextWarning.
	Text   TextStamper
	Logger *slog.Logger
}

// Stats summarizes one render.
type Stats struct {
	Nodes        int
	Layers       int
	DepthLimited int
}

// TextWarning reports a text node that was not drawn.
type TextWarning struct {
	Content string
	Reason  string
	Err     error
}

func (w *TextWarning) Error() string {
	if w.Err != nil {
		return fmt.Sprintf("svg: text %q not drawn: %s: %v", w.Content, w.Reason, w.Err)
	}
	return fmt.Sprintf("svg: text %q not drawn: %s", w.Content, w.Reason)
}

func (w *TextWarning) Unwrap() error { return w.Err }

// renderer carries the state of one Render call.
type renderer struct {
	opts     Options
	stack    *blend.Stack
	raster   *raster.Rasterizer
	row      []color.RGBA
	warnings []error
	stats    Stats
	logger   *slog.Logger
}

// Render draws doc onto a new Width x Height layer filled with the
// background color. It returns the layer with any non-fatal warnings.
// On error no layer is returned.
func Render(doc *scene.Document, opts Options) (*blend.Layer, []error, error) {
	if opts.Flatness <= 0 {
		opts.Flatness = path.DefaultTolerance
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = scene.DefaultMaxDepth
	}

	base, err := blend.NewLayer(opts.Width, opts.Height)
	if err != nil {
		return nil, nil, err
	}
	base.Fill(opts.Background.Premultiply())

	r := &renderer{
		opts:   opts,
		stack:  blend.NewStack(base),
		raster: raster.NewRasterizer(opts.Width, opts.Height),
		row:    make([]color.RGBA, opts.Width+1),
		logger: loggerOrNop(opts.Logger),
	}

	ctm := doc.Viewport(float64(opts.Width), float64(opts.Height))
	if err := r.node(doc.Root, ctm, 0); err != nil {
		return nil, nil, err
	}

	r.logger.Debug("render finished",
		"width", opts.Width, "height", opts.Height,
		"nodes", r.stats.Nodes, "layers", r.stats.Layers,
		"depth_limited", r.stats.DepthLimited)
	return base, r.warnings, nil
}

func (r *renderer) warn(err error) {
	r.warnings = append(r.warnings, err)
	r.logger.Warn("render degraded", "err", err)
}

func (r *renderer) node(n scene.Node, ctm geom.Matrix, depth int) error {
	if depth > r.opts.MaxDepth {
		return &scene.RecursionLimitError{Limit: r.opts.MaxDepth, Reason: "group nesting"}
	}
	r.stats.Nodes++

	b := n.Common()
	if b.Opacity <= 0 {
		return nil
	}
	m := ctm.Multiply(b.Transform)

	switch n := n.(type) {
	case *scene.Group:
		return r.group(n, m, depth)
	case *scene.Text:
		if !b.Hidden {
			r.text(n, m)
		}
		return nil
	}
	if !b.Hidden {
		r.shape(n, m)
	}
	return nil
}

func (r *renderer) group(g *scene.Group, m geom.Matrix, depth int) error {
	isolated := g.Opacity < 1
	if isolated {
		r.stack.Push()
		r.stats.Layers++
	}
	for _, c := range g.Children {
		if err := r.node(c, m, depth+1); err != nil {
			return err
		}
	}
	if isolated {
		r.stack.Pop(float32(g.Opacity))
	}
	return nil
}

// shape fills and strokes a leaf.
func (r *renderer) shape(n scene.Node, m geom.Matrix) {
	b := n.Common()
	fill := b.Fill
	stk := b.Stroke
	if !(b.StrokeWidth > 0) {
		stk = nil
	}
	if fill == nil && stk == nil {
		return
	}

	elements := Outline(n)
	if len(elements) == 0 {
		return
	}

	tol := path.UserTolerance(r.opts.Flatness, m)
	flat := path.NewFlattener(tol)
	contours := flat.Flatten(elements)
	bbox := path.Bounds(contours)

	alpha := b.Opacity
	isolated := alpha < 1 && fill != nil && stk != nil
	if isolated {
		r.stack.Push()
		r.stats.Layers++
		alpha = 1
	}

	if fill != nil {
		if sh, ok := r.shader(fill, m, bbox); ok {
			r.fill(contours, m, b.FillRule, sh, alpha*b.FillOpacity)
		}
	}
	if stk != nil {
		if sh, ok := r.shader(stk, m, bbox); ok {
			e := stroke.NewExpander(b.StrokeStyle())
			e.SetTolerance(tol)
			r.fill(e.Expand(contours), m, raster.FillRuleNonZero, sh, alpha*b.StrokeOpacity)
		}
	}

	if isolated {
		r.stack.Pop(float32(b.Opacity))
	}

	if flat.DepthLimited > 0 {
		r.stats.DepthLimited += flat.DepthLimited
		r.logger.Debug("flattening hit depth limit", "id", b.ID, "curves", flat.DepthLimited)
	}
}

// fill rasterizes user-space contours transformed by m into the current
// layer.
func (r *renderer) fill(contours []path.Contour, m geom.Matrix, rule raster.FillRule, sh paint.Shader, alpha float64) {
	if alpha <= 0 || len(contours) == 0 {
		return
	}
	r.raster.Reset()
	var pts []geom.Point
	for _, c := range contours {
		pts = pts[:0]
		for _, p := range c.Points {
			pts = append(pts, m.TransformPoint(p))
		}
		r.raster.AddPolygon(pts)
	}

	dst := r.stack.Current()
	a := float32(alpha)
	r.raster.Fill(rule, func(y, x0 int, cov []float32) {
		if a < 1 {
			for i := range cov {
				cov[i] *= a
			}
		}
		src := r.row[:len(cov)]
		sh.ShadeRow(y, x0, src)
		dst.BlendRow(y, x0, cov, src)
	})
}

// shader builds the device-space shader for p. ok is false when the paint
// draws nothing, such as a bounding-box gradient on an empty box.
func (r *renderer) shader(p scene.Paint, m geom.Matrix, bbox geom.Rect) (paint.Shader, bool) {
	switch p := p.(type) {
	case scene.SolidColor:
		return paint.NewSolid(p.Color), true

	case *scene.LinearGradient:
		gm, ok := gradientMatrix(m, p.Units, p.Transform, bbox)
		if !ok {
			return nil, false
		}
		ramp := paint.NewRamp(p.Stops, p.Spread, p.Interp)
		if sh, ok := paint.NewLinear(geom.Pt(p.X1, p.Y1), geom.Pt(p.X2, p.Y2), gm, ramp); ok {
			return sh, true
		}
		return lastStop(p.Stops), true

	case *scene.RadialGradient:
		gm, ok := gradientMatrix(m, p.Units, p.Transform, bbox)
		if !ok {
			return nil, false
		}
		ramp := paint.NewRamp(p.Stops, p.Spread, p.Interp)
		if sh, ok := paint.NewRadial(geom.Pt(p.CX, p.CY), p.R, geom.Pt(p.FX, p.FY), gm, ramp); ok {
			return sh, true
		}
		return lastStop(p.Stops), true
	}
	return nil, false
}

// gradientMatrix composes ctm, the bounding box mapping and the gradient
// transform. Bounding box units on an empty box draw nothing.
func gradientMatrix(ctm geom.Matrix, units scene.Units, gt geom.Matrix, bbox geom.Rect) (geom.Matrix, bool) {
	m := ctm
	if units == scene.ObjectBoundingBox {
		if bbox.Empty() {
			return geom.Matrix{}, false
		}
		m = m.Multiply(geom.Translate(bbox.Min.X, bbox.Min.Y)).
			Multiply(geom.Scale(bbox.Width(), bbox.Height()))
	}
	return m.Multiply(gt), true
}

// lastStop paints a degenerate gradient with its last stop color.
func lastStop(stops []paint.Stop) paint.Shader {
	if len(stops) == 0 {
		return paint.NewSolid(color.Transparent)
	}
	return paint.NewSolid(stops[len(stops)-1].Color)
}
