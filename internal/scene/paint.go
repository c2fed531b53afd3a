package scene

import (
	"strings"

	"github.com/gogpu/svg/internal/color"
	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/paint"
)

// resolvePaint turns a fill or stroke value into a Paint. nil means none.
func (b *builder) resolvePaint(el *element, property, value string, s *style, vp viewport) Paint {
	v := strings.TrimSpace(value)
	switch v {
	case "", "none":
		return nil
	case "currentColor", "currentcolor":
		return SolidColor{Color: s.color}
	}

	if strings.HasPrefix(v, "url(") {
		end := strings.IndexByte(v, ')')
		if end < 0 {
			b.warn(&PaintReferenceWarning{Element: el.name, Property: property, Value: v, Reason: "unterminated url"})
			return nil
		}
		ref := strings.Trim(strings.TrimSpace(v[4:end]), `"'`)
		fallback := strings.TrimSpace(v[end+1:])

		if p, ok := b.paintServer(ref, s, vp); ok {
			return p
		}
		if fallback != "" {
			return b.resolvePaint(el, property, fallback, s, vp)
		}
		b.warn(&PaintReferenceWarning{Element: el.name, Property: property, Value: v, Reason: "unresolved reference"})
		return nil
	}

	c, err := color.Parse(v)
	if err != nil {
		b.warn(&PaintReferenceWarning{Element: el.name, Property: property, Value: v, Reason: "invalid color"})
		return nil
	}
	return SolidColor{Color: c}
}

// paintServer resolves "#id" to a gradient. ok is false when the
// reference does not name a gradient. A resolved gradient without stops
// is none (ok with nil Paint).
func (b *builder) paintServer(ref string, s *style, vp viewport) (Paint, bool) {
	if !strings.HasPrefix(ref, "#") {
		return nil, false
	}
	el, ok := b.ids[ref[1:]]
	if !ok {
		return nil, false
	}
	switch el.name {
	case "linearGradient", "radialGradient":
	case "pattern":
		b.warn(&UnsupportedFeatureWarning{Element: "pattern"})
		return nil, false
	default:
		return nil, false
	}

	chain := b.gradientChain(el)
	stops := b.gradientStops(chain)
	switch len(stops) {
	case 0:
		return nil, true
	case 1:
		return SolidColor{Color: stops[0].Color}, true
	}

	g := gradientAttrs{chain: chain, vp: vp, fontSize: s.fontSize}
	g.units = ObjectBoundingBox
	if v, ok := g.attr("gradientUnits"); ok && v == "userSpaceOnUse" {
		g.units = UserSpaceOnUse
	}

	m := geom.Identity()
	if v, ok := g.attr("gradientTransform"); ok {
		var err error
		if m, err = geom.ParseTransform(v); err != nil {
			b.warn(err)
		}
	}

	spread := paint.SpreadPad
	if v, ok := g.attr("spreadMethod"); ok {
		switch v {
		case "reflect":
			spread = paint.SpreadReflect
		case "repeat":
			spread = paint.SpreadRepeat
		}
	}

	interp := color.SpaceSRGB
	if v, ok := g.attr("color-interpolation"); ok && v == "linearRGB" {
		interp = color.SpaceLinear
	}

	if el.name == "linearGradient" {
		return &LinearGradient{
			Stops:     stops,
			X1:        g.coord("x1", "0%", axisX),
			Y1:        g.coord("y1", "0%", axisY),
			X2:        g.coord("x2", "100%", axisX),
			Y2:        g.coord("y2", "0%", axisY),
			Transform: m,
			Units:     g.units,
			Spread:    spread,
			Interp:    interp,
		}, true
	}

	cx := g.coord("cx", "50%", axisX)
	cy := g.coord("cy", "50%", axisY)
	r := g.coord("r", "50%", axisOther)
	fx, fy := cx, cy
	if _, ok := g.attr("fx"); ok {
		fx = g.coord("fx", "50%", axisX)
	}
	if _, ok := g.attr("fy"); ok {
		fy = g.coord("fy", "50%", axisY)
	}
	if r < 0 {
		r = 0
	}
	return &RadialGradient{
		Stops:     stops,
		CX:        cx,
		CY:        cy,
		R:         r,
		FX:        fx,
		FY:        fy,
		Transform: m,
		Units:     g.units,
		Spread:    spread,
		Interp:    interp,
	}, true
}

// gradientChain follows href links from el through gradient elements,
// stopping at the first repeated element.
func (b *builder) gradientChain(el *element) []*element {
	chain := []*element{el}
	seen := map[*element]bool{el: true}
	for {
		href, ok := el.attr("href")
		if !ok || !strings.HasPrefix(href, "#") {
			return chain
		}
		next, ok := b.ids[href[1:]]
		if !ok || seen[next] || (next.name != "linearGradient" && next.name != "radialGradient") {
			return chain
		}
		seen[next] = true
		chain = append(chain, next)
		el = next
	}
}

// gradientStops returns the stops of the first element in chain that has
// any, normalized.
func (b *builder) gradientStops(chain []*element) []paint.Stop {
	for _, el := range chain {
		var stops []paint.Stop
		for _, c := range el.children {
			if c.name == "stop" {
				stops = append(stops, stopOf(c))
			}
		}
		if len(stops) > 0 {
			return paint.NormalizeStops(stops)
		}
	}
	return nil
}

func stopOf(el *element) paint.Stop {
	props := properties(el)

	var offset float64
	if v, ok := el.attr("offset"); ok {
		if l, ok := parseLength(v); ok {
			offset = l.value
			if l.unit == "%" {
				offset /= 100
			}
		}
	}

	c := color.Black
	if v, ok := props["stop-color"]; ok {
		if v == "currentColor" {
			if cc, err := color.Parse(props["color"]); err == nil {
				c = cc
			}
		} else if pc, err := color.Parse(v); err == nil {
			c = pc
		}
	}
	c.A *= float32(opacityProperty(props["stop-opacity"], 1))
	return paint.Stop{Offset: offset, Color: c}
}

// gradientAttrs looks up attributes along an href chain.
type gradientAttrs struct {
	chain    []*element
	units    Units
	vp       viewport
	fontSize float64
}

func (g *gradientAttrs) attr(name string) (string, bool) {
	for _, el := range g.chain {
		if v, ok := el.attr(name); ok {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// coord resolves a gradient coordinate. Bounding box units take plain
// fractions; percentages there are divided by 100.
func (g *gradientAttrs) coord(name, def string, a axis) float64 {
	v, ok := g.attr(name)
	l, valid := parseLength(v)
	if !ok || !valid {
		l, _ = parseLength(def)
	}
	if g.units == ObjectBoundingBox {
		if l.unit == "%" {
			return l.value / 100
		}
		return l.value
	}
	return l.resolve(a, g.vp, g.fontSize)
}
