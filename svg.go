package svg

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/svg/internal/blend"
	"github.com/gogpu/svg/internal/render"
	"github.com/gogpu/svg/internal/scene"
)

const (
	// MaxDimension bounds each side of the output canvas.
	MaxDimension = 1 << 15
	// MaxPixels bounds the canvas area. Layers hold 16 bytes per pixel,
	// so one layer at this size takes 1 GiB.
	MaxPixels = 1 << 26
)

// Renderer turns SVG documents into images. Render is the built-in
// implementation; the backend package registers alternatives.
type Renderer interface {
	Render(doc []byte, opts ...Option) (*Image, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(doc []byte, opts ...Option) (*Image, error)

// Render calls f.
func (f RendererFunc) Render(doc []byte, opts ...Option) (*Image, error) {
	return f(doc, opts...)
}

// Image is a rendered canvas in straight (non-premultiplied) RGBA8,
// row-major with Stride bytes per row.
type Image struct {
	Width, Height int
	Stride        int
	Pix           []byte
	// Warnings lists every non-fatal condition met while rendering, in
	// document order for parse warnings followed by render warnings.
	Warnings []error
}

// RGBA returns an image.NRGBA sharing Pix, ready for image codecs.
func (img *Image) RGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Pix,
		Stride: img.Stride,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// At returns the straight RGBA8 components of pixel (x, y). Pixels
// outside the canvas are transparent black.
func (img *Image) At(x, y int) (r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return 0, 0, 0, 0
	}
	i := y*img.Stride + x*4
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
}

// Render parses doc and draws it into a new image.
//
// Fatal conditions return a nil image and one of *XMLSyntaxError,
// *UnsupportedRootError, *RecursionLimitError or ErrInvalidSize.
// Non-fatal conditions are collected in Image.Warnings and logged at warn
// level. Render is deterministic and safe for concurrent use.
func Render(doc []byte, opts ...Option) (*Image, error) {
	o := newOptions(opts)
	logger := o.logger
	if logger == nil {
		logger = Logger()
	}
	if o.width < 0 || o.height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.width, o.height)
	}

	d, warnings, err := scene.Parse(doc, scene.Options{MaxDepth: o.maxDepth, Logger: logger})
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("svg: document degraded", "err", w)
	}

	w, h, err := canvasSize(d, o.width, o.height)
	if err != nil {
		return nil, err
	}

	layer, rw, err := render.Render(d, render.Options{
		Width:      w,
		Height:     h,
		Background: o.background,
		Flatness:   o.flatness,
		MaxDepth:   o.maxDepth,
		Text:       o.text,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	return newImage(layer, append(warnings, rw...)), nil
}

// canvasSize resolves the requested size against the document size.
func canvasSize(d *scene.Document, w, h int) (int, int, error) {
	switch {
	case w == 0 && h == 0:
		w, h = ceilPx(d.Width), ceilPx(d.Height)
	case w == 0:
		w = ceilPx(float64(h) * d.Width / d.Height)
	case h == 0:
		h = ceilPx(float64(w) * d.Height / d.Width)
	}
	if !ValidSize(w, h) {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return w, h, nil
}

// ValidSize reports whether a w x h canvas is within MaxDimension and
// MaxPixels.
func ValidSize(w, h int) bool {
	return w > 0 && h > 0 && w <= MaxDimension && h <= MaxDimension && w*h <= MaxPixels
}

// ceilPx rounds a document length up to whole pixels, ignoring float
// noise just above an integer.
func ceilPx(v float64) int {
	if math.IsNaN(v) || v > MaxDimension+1 {
		return MaxDimension + 1
	}
	return int(math.Ceil(v - 1e-9))
}

func newImage(layer *blend.Layer, warnings []error) *Image {
	return &Image{
		Width:    layer.Width(),
		Height:   layer.Height(),
		Stride:   layer.Width() * 4,
		Pix:      layer.NRGBA(),
		Warnings: warnings,
	}
}
