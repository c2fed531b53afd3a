package text

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/svg/internal/blend"
	"github.com/gogpu/svg/internal/cache"
	"github.com/gogpu/svg/internal/color"
	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/path"
	"github.com/gogpu/svg/internal/render"
)

// DefaultFamily is the family name of the built-in Go Regular face.
const DefaultFamily = "Go"

// outlineCacheSize bounds the number of cached glyph outlines.
const outlineCacheSize = 2048

// face is one registered font. The go-text font drives shaping and the
// sfnt font supplies outlines; both are parsed from the same data so glyph
// indices agree.
type face struct {
	id      int
	shaping *font.Font
	outline *sfnt.Font
}

type glyphKey struct {
	face int
	gid  font.GID
	ppem fixed.Int26_6
}

// Stamper implements render.TextStamper. It is safe for concurrent use.
type Stamper struct {
	mu       sync.RWMutex
	faces    map[string]*face
	fallback *face
	nextID   int

	shapers  sync.Pool
	outlines *cache.Cache[glyphKey, []path.Element]
}

var _ render.TextStamper = (*Stamper)(nil)

// New returns a stamper with the Go Regular face registered as
// DefaultFamily and used for unknown families.
func New() (*Stamper, error) {
	s := &Stamper{
		faces: make(map[string]*face),
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		outlines: cache.New[glyphKey, []path.Element](outlineCacheSize),
	}
	if err := s.AddFont(DefaultFamily, goregular.TTF); err != nil {
		return nil, err
	}
	s.fallback = s.faces[familyKey(DefaultFamily)]
	return s, nil
}

// AddFont registers TrueType or OpenType data under family. Family
// matching is case-insensitive. A later registration replaces an earlier
// one.
func (s *Stamper) AddFont(family string, ttf []byte) error {
	if len(ttf) == 0 {
		return ErrEmptyFontData
	}
	shaped, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return fmt.Errorf("text: parse %q: %w", family, err)
	}
	outline, err := sfnt.Parse(ttf)
	if err != nil {
		return fmt.Errorf("text: parse %q outlines: %w", family, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.faces[familyKey(family)] = &face{id: s.nextID, shaping: shaped.Font, outline: outline}
	return nil
}

// Families returns the number of registered faces.
func (s *Stamper) Families() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.faces)
}

func familyKey(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}

func (s *Stamper) lookup(family string) *face {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.faces[familyKey(family)]; ok {
		return f
	}
	return s.fallback
}

// Advance implements render.TextStamper.
func (s *Stamper) Advance(str, family string, fontSize float64) (float64, error) {
	if !(fontSize > 0) || math.IsInf(fontSize, 0) {
		return 0, ErrInvalidFontSize
	}
	if str == "" {
		return 0, nil
	}
	size := floatToFixed(fontSize)
	if size <= 0 {
		return 0, ErrInvalidFontSize
	}
	out := s.shape(s.lookup(family), str, size)
	return fixedToFloat(out.Advance), nil
}

// StampText implements render.TextStamper. Glyphs are loaded at the device
// pixel size implied by run.Matrix so small user units stay sharp.
func (s *Stamper) StampText(dst *blend.Layer, run render.TextRun) error {
	if !(run.FontSize > 0) || math.IsInf(run.FontSize, 0) {
		return ErrInvalidFontSize
	}
	if run.Text == "" || run.Alpha <= 0 || run.Shader == nil {
		return nil
	}
	scale := run.Matrix.MaxScale()
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil
	}
	ppem := floatToFixed(run.FontSize * scale)
	if ppem <= 0 {
		return nil
	}

	f := s.lookup(run.FontFamily)
	out := s.shape(f, run.Text, ppem)
	m := run.Matrix.Multiply(geom.Scale(1/scale, 1/scale))

	var elements []path.Element
	var penX, penY fixed.Int26_6
	for _, g := range out.Glyphs {
		// go-text offsets point up, outlines point down
		origin := geom.Translate(fixedToFloat(penX+g.XOffset), -fixedToFloat(penY+g.YOffset))
		elements = path.TransformElements(elements, s.outline(f, g.GlyphID, ppem), m.Multiply(origin))
		penX += g.XAdvance
		penY += g.YAdvance
	}
	fill(dst, elements, run)
	return nil
}

// outline returns the cached outline of gid at ppem, in pixels with y down
// and the origin on the baseline. Glyphs without an outline yield nil.
func (s *Stamper) outline(f *face, gid font.GID, ppem fixed.Int26_6) []path.Element {
	key := glyphKey{face: f.id, gid: gid, ppem: ppem}
	return s.outlines.GetOrCreate(key, func() []path.Element {
		var buf sfnt.Buffer
		segs, err := f.outline.LoadGlyph(&buf, sfnt.GlyphIndex(gid), ppem, nil)
		if err != nil {
			return nil
		}
		return segmentsToElements(segs)
	})
}

func segmentsToElements(segs sfnt.Segments) []path.Element {
	b := path.NewBuilder()
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				b.Close()
			}
			b.MoveTo(fixedPoint(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			b.LineTo(fixedPoint(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.QuadTo(fixedPoint(seg.Args[0]), fixedPoint(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			b.CubicTo(fixedPoint(seg.Args[0]), fixedPoint(seg.Args[1]), fixedPoint(seg.Args[2]))
		}
	}
	if open {
		b.Close()
	}
	return b.Elements()
}

func fixedPoint(p fixed.Point26_6) geom.Point {
	return geom.Pt(fixedToFloat(p.X), fixedToFloat(p.Y))
}

// fill rasterizes device-space elements with x/image/vector and blends the
// coverage into dst through the run's shader.
func fill(dst *blend.Layer, elements []path.Element, run render.TextRun) {
	if len(elements) == 0 {
		return
	}
	bounds := geom.EmptyRect()
	for _, el := range elements {
		switch e := el.(type) {
		case path.MoveTo:
			bounds = bounds.Extend(e.Point)
		case path.LineTo:
			bounds = bounds.Extend(e.Point)
		case path.QuadTo:
			bounds = bounds.Extend(e.Control).Extend(e.Point)
		case path.CubicTo:
			bounds = bounds.Extend(e.Control1).Extend(e.Control2).Extend(e.Point)
		}
	}
	r := image.Rect(
		int(math.Floor(bounds.Min.X)), int(math.Floor(bounds.Min.Y)),
		int(math.Ceil(bounds.Max.X)), int(math.Ceil(bounds.Max.Y)),
	).Intersect(image.Rect(0, 0, dst.Width(), dst.Height()))
	if r.Empty() {
		return
	}

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	pt := func(p geom.Point) (float32, float32) {
		return float32(p.X - ox), float32(p.Y - oy)
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Src
	for _, el := range elements {
		switch e := el.(type) {
		case path.MoveTo:
			z.MoveTo(pt(e.Point))
		case path.LineTo:
			z.LineTo(pt(e.Point))
		case path.QuadTo:
			cx, cy := pt(e.Control)
			px, py := pt(e.Point)
			z.QuadTo(cx, cy, px, py)
		case path.CubicTo:
			ax, ay := pt(e.Control1)
			bx, by := pt(e.Control2)
			px, py := pt(e.Point)
			z.CubeTo(ax, ay, bx, by, px, py)
		case path.Close:
			z.ClosePath()
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	cov := make([]float32, r.Dx())
	src := make([]color.RGBA, r.Dx())
	for y := 0; y < r.Dy(); y++ {
		line := mask.Pix[y*mask.Stride : y*mask.Stride+r.Dx()]
		inked := false
		for x, a := range line {
			cov[x] = float32(a) / 255 * run.Alpha
			inked = inked || a != 0
		}
		if !inked {
			continue
		}
		run.Shader.ShadeRow(r.Min.Y+y, r.Min.X, src)
		dst.BlendRow(r.Min.Y+y, r.Min.X, cov, src)
	}
}
