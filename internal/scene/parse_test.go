package scene

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/svg/internal/color"
	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/pathdata"
	"github.com/gogpu/svg/internal/raster"
	"github.com/gogpu/svg/internal/stroke"
)

func mustParse(t *testing.T, doc string) (*Document, []error) {
	t.Helper()
	d, warnings, err := Parse([]byte(doc), Options{})
	require.NoError(t, err)
	require.NotNil(t, d)
	return d, warnings
}

func TestParse_Rect(t *testing.T) {
	d, warnings := mustParse(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
		<rect width="10" height="10" fill="#ff0000"/>
	</svg>`)
	assert.Empty(t, warnings)
	assert.Equal(t, 10.0, d.Width)
	assert.Equal(t, 10.0, d.Height)
	require.Len(t, d.Root.Children, 1)

	r, ok := d.Root.Children[0].(*Rect)
	require.True(t, ok)
	assert.Equal(t, 10.0, r.Width)
	assert.Equal(t, SolidColor{Color: color.RGBA{R: 1, A: 1}}, r.Fill)
	assert.Nil(t, r.Stroke)
	assert.Equal(t, raster.FillRuleNonZero, r.FillRule)
	assert.Equal(t, stroke.LineJoinRound, r.Join)
	assert.Equal(t, stroke.LineCapButt, r.Cap)
	assert.Equal(t, 1.0, r.Opacity)
}

func TestParse_RootErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not svg", `<html width="10" height="10"/>`},
		{"no size", `<svg/>`},
		{"percent size", `<svg width="100%" height="100%"/>`},
		{"zero viewBox", `<svg viewBox="0 0 0 10"/>`},
		{"foreign namespace", `<svg xmlns="urn:other" width="1" height="1"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.doc), Options{})
			var re *UnsupportedRootError
			assert.True(t, errors.As(err, &re), "got %v", err)
		})
	}
}

func TestParse_XMLSyntaxError(t *testing.T) {
	_, _, err := Parse([]byte(`<svg width="10" height="10"><rect></svg>`), Options{})
	var xe *XMLSyntaxError
	require.True(t, errors.As(err, &xe), "got %v", err)
	assert.Equal(t, 1, xe.Line)

	_, _, err = Parse([]byte(``), Options{})
	var re *UnsupportedRootError
	assert.True(t, errors.As(err, &re))
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestParse_Size(t *testing.T) {
	tests := []struct {
		doc  string
		w, h float64
	}{
		{`<svg width="20" height="30"/>`, 20, 30},
		{`<svg width="1in" height="72pt"/>`, 96, 96},
		{`<svg viewBox="0 0 40 20"/>`, 40, 20},
		{`<svg width="80" viewBox="0 0 40 20"/>`, 80, 40},
		{`<svg height="10" viewBox="0 0 40 20"/>`, 20, 10},
		{`<svg width="100%" height="50" viewBox="0 0 40 20"/>`, 100, 50},
	}
	for _, tt := range tests {
		d, _ := mustParse(t, tt.doc)
		assert.InDelta(t, tt.w, d.Width, 1e-9, tt.doc)
		assert.InDelta(t, tt.h, d.Height, 1e-9, tt.doc)
	}
}

func TestParse_Inheritance(t *testing.T) {
	d, _ := mustParse(t, `<svg width="10" height="10">
		<g fill="blue" stroke="red" stroke-width="3" fill-rule="evenodd" opacity="0.5" fill-opacity="0.5">
			<rect width="1" height="1"/>
			<rect width="1" height="1" fill="green" opacity="inherit"/>
		</g>
	</svg>`)
	g := d.Root.Children[0].(*Group)
	assert.Equal(t, 0.5, g.Opacity)

	r0 := g.Children[0].(*Rect)
	assert.Equal(t, SolidColor{Color: color.RGBA{B: 1, A: 1}}, r0.Fill)
	assert.Equal(t, SolidColor{Color: color.RGBA{R: 1, A: 1}}, r0.Stroke)
	assert.Equal(t, 3.0, r0.StrokeWidth)
	assert.Equal(t, raster.FillRuleEvenOdd, r0.FillRule)
	// opacity values never inherit
	assert.Equal(t, 1.0, r0.Opacity)
	assert.Equal(t, 1.0, r0.FillOpacity)

	r1 := g.Children[1].(*Rect)
	assert.InDelta(t, 128.0/255, float64(r1.Fill.(SolidColor).Color.G), 1e-6)
	assert.Equal(t, 0.5, r1.Opacity)
}

func TestParse_StyleAttributeOverrides(t *testing.T) {
	d, _ := mustParse(t, `<svg width="10" height="10">
		<rect width="1" height="1" fill="red" style="fill: #00f; stroke:rgb(0,255,0) ; stroke-linejoin: bevel; stroke-linecap:square"/>
	</svg>`)
	r := d.Root.Children[0].(*Rect)
	assert.Equal(t, SolidColor{Color: color.RGBA{B: 1, A: 1}}, r.Fill)
	assert.Equal(t, SolidColor{Color: color.RGBA{G: 1, A: 1}}, r.Stroke)
	assert.Equal(t, stroke.LineJoinBevel, r.Join)
	assert.Equal(t, stroke.LineCapSquare, r.Cap)
}

func TestParse_CurrentColor(t *testing.T) {
	d, _ := mustParse(t, `<svg width="10" height="10" color="red">
		<g color="lime"><rect width="1" height="1" fill="currentColor"/></g>
		<rect width="1" height="1" fill="currentColor"/>
	</svg>`)
	g := d.Root.Children[0].(*Group)
	assert.Equal(t, SolidColor{Color: color.RGBA{G: 1, A: 1}}, g.Children[0].(*Rect).Fill)
	assert.Equal(t, SolidColor{Color: color.RGBA{R: 1, A: 1}}, d.Root.Children[1].(*Rect).Fill)
}

func TestParse_Units(t *testing.T) {
	d, _ := mustParse(t, `<svg width="200" height="100">
		<rect x="1in" y="10%" width="50%" height="2.54cm" rx="10mm"/>
		<circle r="10%" font-size="20"/>
		<rect width="2em" height="1" font-size="20"/>
	</svg>`)
	r := d.Root.Children[0].(*Rect)
	assert.InDelta(t, 96, r.X, 1e-9)
	assert.InDelta(t, 10, r.Y, 1e-9)
	assert.InDelta(t, 100, r.Width, 1e-9)
	assert.InDelta(t, 96, r.Height, 1e-9)
	assert.InDelta(t, 96/2.54, r.RX, 1e-9)
	assert.InDelta(t, r.RX, r.RY, 1e-9, "missing ry copies rx")

	c := d.Root.Children[1].(*Circle)
	assert.InDelta(t, 0.1*math.Sqrt((200*200+100*100)/2.0), c.R, 1e-9)

	r2 := d.Root.Children[2].(*Rect)
	assert.InDelta(t, 40, r2.Width, 1e-9)
}

func TestParse_PercentagesUseViewBox(t *testing.T) {
	d, _ := mustParse(t, `<svg width="1000" height="1000" viewBox="0 0 10 20">
		<rect width="100%" height="50%"/>
	</svg>`)
	r := d.Root.Children[0].(*Rect)
	assert.InDelta(t, 10, r.Width, 1e-9)
	assert.InDelta(t, 10, r.Height, 1e-9)
}

func TestParse_TransformErrorFallsBackToIdentity(t *testing.T) {
	d, warnings := mustParse(t, `<svg width="10" height="10">
		<rect width="1" height="1" transform="rotate(10"/>
		<rect width="1" height="1" transform="translate(3,4)"/>
	</svg>`)
	require.Len(t, warnings, 1)
	var te *geom.TransformSyntaxError
	assert.True(t, errors.As(warnings[0], &te))

	assert.True(t, d.Root.Children[0].(*Rect).Transform.IsIdentity())
	assert.Equal(t, geom.Translate(3, 4), d.Root.Children[1].(*Rect).Transform)
}

func TestParse_PathSyntaxErrorKeepsSiblings(t *testing.T) {
	d, warnings := mustParse(t, `<svg width="10" height="10">
		<path id="bad" d="M 0 0 L 5 x"/>
		<path d="M0 0 H5 V5 Z"/>
	</svg>`)
	require.Len(t, warnings, 1)
	var pe *PathSyntaxError
	require.True(t, errors.As(warnings[0], &pe))
	assert.Equal(t, "bad", pe.ID)
	var se *pathdata.SyntaxError
	assert.True(t, errors.As(warnings[0], &se))

	require.Len(t, d.Root.Children, 2)
	assert.Empty(t, d.Root.Children[0].(*Path).Segments)
	assert.Len(t, d.Root.Children[1].(*Path).Segments, 4)
}

func TestParse_UnsupportedFeatures(t *testing.T) {
	d, warnings := mustParse(t, `<svg width="10" height="10">
		<filter id="f"/>
		<image width="5" height="5"/>
		<rect width="1" height="1" filter="url(#f)"/>
		<blink/>
	</svg>`)
	require.Len(t, d.Root.Children, 1)

	var got []string
	for _, w := range warnings {
		var uf *UnsupportedFeatureWarning
		require.True(t, errors.As(w, &uf), "got %v", w)
		got = append(got, uf.Element+":"+uf.Attribute)
	}
	assert.Equal(t, []string{"filter:", "image:", "rect:filter", "blink:"}, got)
}

func TestParse_UnknownAttributes(t *testing.T) {
	d, warnings := mustParse(t, `<svg width="10" height="10" xmlns="http://www.w3.org/2000/svg"
			xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">
		<rect id="a" width="10" height="10" bogus-attr="1" class="x" stroke-dashoffset="3" xml:space="preserve" inkscape:label="r"/>
		<circle r="2" class="y" style="fill:red; paint-order:stroke"/>
		<use xlink:href="#a" x="1"/>
	</svg>`)
	require.Len(t, d.Root.Children, 3)

	var got []string
	for _, w := range warnings {
		var uf *UnsupportedFeatureWarning
		require.True(t, errors.As(w, &uf), "got %v", w)
		got = append(got, uf.Element+":"+uf.Attribute)
	}
	// sorted per element, each name once per document
	assert.Equal(t, []string{
		"rect:bogus-attr", "rect:class", "rect:stroke-dashoffset",
		"circle:paint-order",
	}, got)
}

func TestParse_SkippedElements(t *testing.T) {
	d, warnings := mustParse(t, `<svg width="10" height="10" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">
		<title>t</title>
		<defs><rect id="r" width="1" height="1"/></defs>
		<g display="none"><rect width="1" height="1"/></g>
		<rect width="0" height="1"/>
		<inkscape:grid/>
		<rect width="1" height="1" visibility="hidden"/>
	</svg>`)
	assert.Empty(t, warnings)
	require.Len(t, d.Root.Children, 1)
	assert.True(t, d.Root.Children[0].(*Rect).Hidden)
}

func TestParse_NegativeSize(t *testing.T) {
	d, warnings := mustParse(t, `<svg width="10" height="10">
		<rect width="-1" height="1"/>
		<circle r="-2"/>
	</svg>`)
	assert.Empty(t, d.Root.Children)
	require.Len(t, warnings, 2)
	var ia *InvalidAttributeWarning
	require.True(t, errors.As(warnings[0], &ia))
	assert.Equal(t, "width", ia.Attribute)
}

func TestParse_Shapes(t *testing.T) {
	d, _ := mustParse(t, `<svg width="10" height="10">
		<circle cx="5" cy="6" r="2"/>
		<ellipse cx="1" cy="2" rx="3" ry="4"/>
		<line x1="1" y1="2" x2="3" y2="4"/>
		<polyline points="0,0 1,1 2,0 5"/>
		<polygon points="0 0 1 1 2 0"/>
		<text x="1 2" y="3" font-size="12" text-anchor="middle" font-family="'Go', sans-serif">Hi <tspan>there</tspan>
		  !</text>
	</svg>`)
	require.Len(t, d.Root.Children, 6)
	assert.Equal(t, 2.0, d.Root.Children[0].(*Circle).R)
	assert.Equal(t, 4.0, d.Root.Children[1].(*Ellipse).RY)
	assert.Equal(t, 4.0, d.Root.Children[2].(*Line).Y2)
	assert.Len(t, d.Root.Children[3].(*Polyline).Points, 3)
	assert.Len(t, d.Root.Children[4].(*Polygon).Points, 3)

	txt := d.Root.Children[5].(*Text)
	assert.Equal(t, "Hi there !", txt.Content)
	assert.Equal(t, 1.0, txt.X)
	assert.Equal(t, 3.0, txt.Y)
	assert.Equal(t, 12.0, txt.FontSize)
	assert.Equal(t, AnchorMiddle, txt.Anchor)
	assert.Equal(t, "Go", txt.FontFamily)
}

func TestParse_LinearGradient(t *testing.T) {
	d, warnings := mustParse(t, `<svg width="100" height="100">
		<rect width="10" height="10" fill="url(#g2)"/>
		<defs>
			<linearGradient id="g1" x2="50%" spreadMethod="reflect">
				<stop offset="0.8" stop-color="red"/>
				<stop offset="20%" style="stop-color:blue;stop-opacity:0.5"/>
				<stop offset="1.5" stop-color="lime"/>
			</linearGradient>
			<linearGradient id="g2" href="#g1" gradientTransform="scale(2)" color-interpolation="linearRGB"/>
		</defs>
	</svg>`)
	assert.Empty(t, warnings)

	g, ok := d.Root.Children[0].(*Rect).Fill.(*LinearGradient)
	require.True(t, ok)
	require.Len(t, g.Stops, 3)
	assert.Equal(t, 0.8, g.Stops[0].Offset)
	assert.Equal(t, 0.8, g.Stops[1].Offset, "offsets are made non-decreasing")
	assert.Equal(t, 1.0, g.Stops[2].Offset, "offsets are clamped")
	assert.InDelta(t, 0.5, float64(g.Stops[1].Color.A), 1e-6)

	assert.Equal(t, ObjectBoundingBox, g.Units)
	assert.Equal(t, 0.5, g.X2)
	assert.Equal(t, 0.0, g.Y2)
	assert.Equal(t, geom.Scale(2, 2), g.Transform)
	assert.Equal(t, color.SpaceLinear, g.Interp)
}

func TestParse_RadialGradientUserSpace(t *testing.T) {
	d, _ := mustParse(t, `<svg width="200" height="100">
		<radialGradient id="r" gradientUnits="userSpaceOnUse" cx="50%" r="10" fx="20">
			<stop offset="0" stop-color="red"/>
			<stop offset="1" stop-color="blue"/>
		</radialGradient>
		<circle r="5" fill="url(#r)"/>
	</svg>`)
	g := d.Root.Children[0].(*Circle).Fill.(*RadialGradient)
	assert.Equal(t, UserSpaceOnUse, g.Units)
	assert.Equal(t, 100.0, g.CX)
	assert.Equal(t, 50.0, g.CY)
	assert.Equal(t, 10.0, g.R)
	assert.Equal(t, 20.0, g.FX)
	assert.Equal(t, 50.0, g.FY, "fy defaults to cy")
}

func TestParse_GradientStopCounts(t *testing.T) {
	d, warnings := mustParse(t, `<svg width="10" height="10">
		<linearGradient id="none"/>
		<linearGradient id="one"><stop stop-color="blue"/></linearGradient>
		<rect width="1" height="1" fill="url(#none)"/>
		<rect width="1" height="1" fill="url(#one)"/>
		<rect width="1" height="1" fill="url(#missing) green"/>
		<rect width="1" height="1" fill="url(#missing)"/>
	</svg>`)
	assert.Nil(t, d.Root.Children[0].(*Rect).Fill)
	assert.Equal(t, SolidColor{Color: color.RGBA{B: 1, A: 1}}, d.Root.Children[1].(*Rect).Fill)
	assert.Equal(t, SolidColor{Color: color.RGBA{G: 128.0 / 255, A: 1}}, d.Root.Children[2].(*Rect).Fill)
	assert.Nil(t, d.Root.Children[3].(*Rect).Fill)

	require.Len(t, warnings, 1)
	var pr *PaintReferenceWarning
	assert.True(t, errors.As(warnings[0], &pr))
}

func TestParse_GradientHrefCycle(t *testing.T) {
	d, _ := mustParse(t, `<svg width="10" height="10">
		<linearGradient id="a" href="#b"/>
		<linearGradient id="b" href="#a"/>
		<rect width="1" height="1" fill="url(#a)"/>
	</svg>`)
	assert.Nil(t, d.Root.Children[0].(*Rect).Fill)
}

func TestParse_Use(t *testing.T) {
	d, _ := mustParse(t, `<svg width="10" height="10" xmlns:xlink="http://www.w3.org/1999/xlink">
		<defs><rect id="r" width="2" height="2"/></defs>
		<use xlink:href="#r" x="3" y="4" fill="red"/>
		<use href="#r" transform="scale(2)"/>
	</svg>`)
	require.Len(t, d.Root.Children, 2)

	u := d.Root.Children[0].(*Group)
	assert.Equal(t, geom.Translate(3, 4), u.Transform)
	require.Len(t, u.Children, 1)
	r := u.Children[0].(*Rect)
	assert.Equal(t, SolidColor{Color: color.RGBA{R: 1, A: 1}}, r.Fill, "use passes style to the copy")

	u2 := d.Root.Children[1].(*Group)
	assert.Equal(t, geom.Scale(2, 2), u2.Transform)
	assert.NotSame(t, r, u2.Children[0], "each use gets its own copy")
}

func TestParse_UseSymbol(t *testing.T) {
	d, _ := mustParse(t, `<svg width="100" height="100">
		<symbol id="s" viewBox="0 0 10 10"><rect width="10" height="10"/></symbol>
		<use href="#s" width="50" height="50"/>
	</svg>`)
	u := d.Root.Children[0].(*Group)
	sym := u.Children[0].(*Group)
	assert.True(t, sym.Transform.ApproxEqual(geom.Scale(5, 5), 1e-12))
}

func TestParse_UseErrors(t *testing.T) {
	_, warnings := mustParse(t, `<svg width="10" height="10"><use href="#nope"/></svg>`)
	require.Len(t, warnings, 1)
	var ia *InvalidAttributeWarning
	assert.True(t, errors.As(warnings[0], &ia))

	_, _, err := Parse([]byte(`<svg width="10" height="10">
		<g id="a"><use href="#a"/></g>
	</svg>`), Options{})
	var rl *RecursionLimitError
	assert.True(t, errors.As(err, &rl), "got %v", err)
}

func TestParse_NestedSVG(t *testing.T) {
	d, _ := mustParse(t, `<svg width="100" height="100">
		<svg x="10" y="20" width="50" height="20" viewBox="0 0 10 10">
			<rect width="100%" height="100%"/>
		</svg>
	</svg>`)
	g := d.Root.Children[0].(*Group)
	// meet: scale 2, centred horizontally in the 50 wide viewport
	want := geom.Translate(10, 20).Multiply(geom.Translate(15, 0)).Multiply(geom.Scale(2, 2))
	assert.True(t, g.Transform.ApproxEqual(want, 1e-12), "got %+v", g.Transform)
	assert.Equal(t, 10.0, g.Children[0].(*Rect).Width)
}

func TestParse_RecursionLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<svg width="10" height="10">`)
	for i := 0; i < 20; i++ {
		b.WriteString("<g>")
	}
	for i := 0; i < 20; i++ {
		b.WriteString("</g>")
	}
	b.WriteString("</svg>")

	_, _, err := Parse([]byte(b.String()), Options{MaxDepth: 10})
	var rl *RecursionLimitError
	require.True(t, errors.As(err, &rl), "got %v", err)
	assert.Equal(t, 10, rl.Limit)

	_, _, err = Parse([]byte(b.String()), Options{MaxDepth: 30})
	assert.NoError(t, err)
}

func TestDocument_Viewport(t *testing.T) {
	d, _ := mustParse(t, `<svg viewBox="10 10 20 10"/>`)
	m := d.Viewport(40, 40)
	// meet: scale 2, centred vertically
	assert.Equal(t, geom.Pt(0, 10), m.TransformPoint(geom.Pt(10, 10)))
	assert.Equal(t, geom.Pt(40, 30), m.TransformPoint(geom.Pt(30, 20)))

	d2, _ := mustParse(t, `<svg viewBox="0 0 20 10" preserveAspectRatio="none"/>`)
	m2 := d2.Viewport(40, 40)
	assert.Equal(t, geom.Pt(40, 40), m2.TransformPoint(geom.Pt(20, 10)))

	d3, _ := mustParse(t, `<svg width="10" height="20"/>`)
	assert.Equal(t, geom.Scale(2, 1), d3.Viewport(20, 20))
}

func TestParseAspectRatio(t *testing.T) {
	tests := []struct {
		in   string
		want AspectRatio
	}{
		{"", AspectRatio{X: AlignMid, Y: AlignMid}},
		{"none", AspectRatio{None: true, X: AlignMid, Y: AlignMid}},
		{"xMinYMax slice", AspectRatio{X: AlignMin, Y: AlignMax, Slice: true}},
		{"defer xMaxYMin", AspectRatio{X: AlignMax, Y: AlignMin}},
		{"bogus", AspectRatio{X: AlignMid, Y: AlignMid}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseAspectRatio(tt.in), tt.in)
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want length
		ok   bool
	}{
		{"10", length{10, ""}, true},
		{" 2.5px ", length{2.5, "px"}, true},
		{"1e1mm", length{10, "mm"}, true},
		{"1em", length{1, "em"}, true},
		{"50%", length{50, "%"}, true},
		{"abc", length{}, false},
		{"10 px", length{10, "px"}, true},
		{"10furlongs", length{}, false},
	}
	for _, tt := range tests {
		got, ok := parseLength(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
