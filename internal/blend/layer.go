package blend

import (
	"errors"

	"github.com/gogpu/svg/internal/color"
)

// ErrInvalidDimensions is returned for non-positive layer sizes.
var ErrInvalidDimensions = errors.New("blend: invalid layer dimensions")

// Layer is a canvas-sized premultiplied RGBA surface.
//
// Thread safety: Layer is not safe for concurrent access.
type Layer struct {
	width, height int
	pix           []color.RGBA
}

// NewLayer allocates a transparent layer.
func NewLayer(width, height int) (*Layer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Layer{width: width, height: height, pix: make([]color.RGBA, width*height)}, nil
}

// Width returns the layer width in pixels.
func (l *Layer) Width() int { return l.width }

// Height returns the layer height in pixels.
func (l *Layer) Height() int { return l.height }

// At returns the premultiplied pixel at (x, y), transparent when out of bounds.
func (l *Layer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return color.Transparent
	}
	return l.pix[y*l.width+x]
}

// Clear resets every pixel to transparent.
func (l *Layer) Clear() {
	for i := range l.pix {
		l.pix[i] = color.Transparent
	}
}

// Fill sets every pixel to the premultiplied color c.
func (l *Layer) Fill(c color.RGBA) {
	for i := range l.pix {
		l.pix[i] = c
	}
}

// BlendPixel composites the premultiplied color src over pixel (x, y).
func (l *Layer) BlendPixel(x, y int, src color.RGBA) {
	if x < 0 || y < 0 || x >= l.width || y >= l.height || src.A <= 0 {
		return
	}
	i := y*l.width + x
	l.pix[i] = SourceOver(src, l.pix[i])
}

// BlendRow composites a run of premultiplied source pixels starting at
// (x0, y), each scaled by its coverage. src and cov have equal length.
func (l *Layer) BlendRow(y, x0 int, cov []float32, src []color.RGBA) {
	if y < 0 || y >= l.height {
		return
	}
	row := l.pix[y*l.width : (y+1)*l.width]
	for i, c := range cov {
		x := x0 + i
		if c <= 0 || x < 0 || x >= l.width {
			continue
		}
		s := src[i]
		if c < 1 {
			s = Scale(s, c)
		}
		if s.A <= 0 {
			continue
		}
		row[x] = SourceOver(s, row[x])
	}
}

// Composite draws src over l with the given opacity applied to src first.
func (l *Layer) Composite(src *Layer, opacity float32) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	n := len(l.pix)
	if len(src.pix) < n {
		n = len(src.pix)
	}
	for i := 0; i < n; i++ {
		s := src.pix[i]
		if s.A <= 0 {
			continue
		}
		if opacity < 1 {
			s = Scale(s, opacity)
		}
		l.pix[i] = SourceOver(s, l.pix[i])
	}
}

// NRGBA returns the layer as straight (non-premultiplied) 8-bit RGBA bytes
// in row-major order, four bytes per pixel.
func (l *Layer) NRGBA() []byte {
	out := make([]byte, 4*len(l.pix))
	for i, p := range l.pix {
		c := p.Unpremultiply().To8()
		out[4*i] = c.R
		out[4*i+1] = c.G
		out[4*i+2] = c.B
		out[4*i+3] = c.A
	}
	return out
}

// Stack manages the nesting of isolated layers above a base surface.
// Popped layers are kept for reuse by later pushes.
//
// Thread safety: Stack is not safe for concurrent access.
type Stack struct {
	base   *Layer
	layers []*Layer
	free   []*Layer
}

// NewStack creates a stack drawing into base.
func NewStack(base *Layer) *Stack {
	return &Stack{base: base, layers: make([]*Layer, 0, 4)}
}

// Push opens a new transparent layer and makes it current.
func (s *Stack) Push() *Layer {
	var l *Layer
	if n := len(s.free); n > 0 {
		l = s.free[n-1]
		s.free = s.free[:n-1]
		l.Clear()
	} else {
		l = &Layer{width: s.base.width, height: s.base.height, pix: make([]color.RGBA, len(s.base.pix))}
	}
	s.layers = append(s.layers, l)
	return l
}

// Pop composites the top layer onto its parent with opacity and returns
// the parent. Pop on an empty stack returns the base unchanged.
func (s *Stack) Pop(opacity float32) *Layer {
	if len(s.layers) == 0 {
		return s.base
	}
	top := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]
	dst := s.Current()
	dst.Composite(top, opacity)
	s.free = append(s.free, top)
	return dst
}

// Current returns the current drawing target (top layer or base).
func (s *Stack) Current() *Layer {
	if len(s.layers) == 0 {
		return s.base
	}
	return s.layers[len(s.layers)-1]
}

// Depth returns the number of layers in the stack (not including base).
func (s *Stack) Depth() int {
	return len(s.layers)
}

// Clear discards all open layers without compositing them.
func (s *Stack) Clear() {
	s.free = append(s.free, s.layers...)
	s.layers = s.layers[:0]
}
