// Package oksvg registers a backend built on github.com/srwiley/oksvg and
// github.com/srwiley/rasterx.
//
// It covers a smaller subset of SVG than the native renderer (no group
// opacity layers, no text) and reports no warnings. It is useful as a
// fallback and as a reference when comparing output.
package oksvg

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/gogpu/svg"
	"github.com/gogpu/svg/backend"
)

func init() {
	backend.Register(backend.OkSVG, func() svg.Renderer { return Renderer{} })
}

// Renderer implements svg.Renderer with oksvg. Flatness, depth and text
// options are ignored.
type Renderer struct{}

// Render implements svg.Renderer.
func (Renderer) Render(doc []byte, opts ...svg.Option) (*svg.Image, error) {
	cfg := svg.NewConfig(opts...)
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", svg.ErrInvalidSize, cfg.Width, cfg.Height)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(doc), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: oksvg: %w", svg.ErrRender, err)
	}
	w, h, err := size(icon.ViewBox.W, icon.ViewBox.H, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(cfg.Background), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, canvas, canvas.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	out := image.NewNRGBA(canvas.Bounds())
	draw.Draw(out, out.Bounds(), canvas, image.Point{}, draw.Src)

	cfg.Logger.Debug("oksvg render finished", "width", w, "height", h, "paths", len(icon.SVGPaths))
	return &svg.Image{
		Width:  w,
		Height: h,
		Stride: out.Stride,
		Pix:    out.Pix,
	}, nil
}

// size resolves the canvas size the same way svg.Render does.
func size(vbW, vbH float64, w, h int) (int, int, error) {
	if !(vbW > 0 && vbH > 0) && (w == 0 || h == 0) {
		return 0, 0, fmt.Errorf("%w: oksvg: document has no size", svg.ErrRender)
	}
	switch {
	case w == 0 && h == 0:
		w, h = int(math.Ceil(vbW-1e-9)), int(math.Ceil(vbH-1e-9))
	case w == 0:
		w = int(math.Ceil(float64(h)*vbW/vbH - 1e-9))
	case h == 0:
		h = int(math.Ceil(float64(w)*vbH/vbW - 1e-9))
	}
	if !svg.ValidSize(w, h) {
		return 0, 0, fmt.Errorf("%w: %dx%d", svg.ErrInvalidSize, w, h)
	}
	return w, h, nil
}
