package scene

import (
	"slices"
	"strings"

	"github.com/aymerick/douceur/parser"

	"github.com/gogpu/svg/internal/color"
	"github.com/gogpu/svg/internal/raster"
	"github.com/gogpu/svg/internal/stroke"
)

// defaultFontSize is the initial font-size in px.
const defaultFontSize = 16

// style holds computed property values. The inherited part is copied from
// the parent; opacity values and display belong to the element alone.
type style struct {
	// raw paint values, resolved per painted element
	fill   string
	stroke string

	strokeWidth float64
	fillRule    raster.FillRule
	cap         stroke.LineCap
	join        stroke.LineJoin
	miterLimit  float64
	color       color.RGBA
	fontSize    float64
	fontFamily  string
	anchor      TextAnchor
	hidden      bool

	opacity       float64
	fillOpacity   float64
	strokeOpacity float64
	display       bool
}

func initialStyle() style {
	return style{
		fill:          "black",
		stroke:        "none",
		strokeWidth:   1,
		fillRule:      raster.FillRuleNonZero,
		cap:           stroke.LineCapButt,
		join:          stroke.LineJoinRound,
		miterLimit:    4,
		color:         color.Black,
		fontSize:      defaultFontSize,
		opacity:       1,
		fillOpacity:   1,
		strokeOpacity: 1,
		display:       true,
	}
}

// styleProperties are the names looked up in attributes and in the style
// attribute.
var styleProperties = []string{
	"fill", "stroke", "stroke-width", "fill-rule", "stroke-linecap",
	"stroke-linejoin", "stroke-miterlimit", "color", "font-size",
	"font-family", "text-anchor", "visibility", "opacity", "fill-opacity",
	"stroke-opacity", "display", "stop-color", "stop-opacity",
	"filter", "clip-path", "mask", "stroke-dasharray", "marker-start",
	"marker-mid", "marker-end",
}

// elementAttributes lists the geometry and linking attributes read per
// element, besides id, style, transform and the style properties.
var elementAttributes = map[string][]string{
	"svg":      {"x", "y", "width", "height", "viewBox", "preserveAspectRatio", "version", "baseProfile"},
	"symbol":   {"x", "y", "width", "height", "viewBox", "preserveAspectRatio"},
	"use":      {"x", "y", "width", "height", "href"},
	"a":        {"href", "target"},
	"rect":     {"x", "y", "width", "height", "rx", "ry"},
	"circle":   {"cx", "cy", "r"},
	"ellipse":  {"cx", "cy", "rx", "ry"},
	"line":     {"x1", "y1", "x2", "y2"},
	"polyline": {"points"},
	"polygon":  {"points"},
	"path":     {"d"},
	"text":     {"x", "y"},
}

// knownAttribute reports whether name on element is read by the parser.
func knownAttribute(element, name string) bool {
	switch name {
	case "id", "style", "transform":
		return true
	}
	return slices.Contains(styleProperties, name) ||
		slices.Contains(elementAttributes[element], name)
}

// checkAttributes warns about attributes and style declarations that
// are not understood. Each name is reported once per document.
func (b *builder) checkAttributes(el *element, props map[string]string) {
	var unknown []string
	for name := range el.attrs {
		if !knownAttribute(el.name, name) {
			unknown = append(unknown, name)
		}
	}
	for name := range props {
		if !slices.Contains(styleProperties, name) {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	for _, name := range unknown {
		if b.reported[name] {
			continue
		}
		b.reported[name] = true
		b.warn(&UnsupportedFeatureWarning{Element: el.name, Attribute: name})
	}
}

// unsupportedProperties are skipped with a warning unless set to none.
var unsupportedProperties = []string{
	"filter", "clip-path", "mask", "stroke-dasharray",
	"marker-start", "marker-mid", "marker-end",
}

// properties returns the presentation attributes of el overridden by the
// declarations of its style attribute.
func properties(el *element) map[string]string {
	props := make(map[string]string)
	for _, name := range styleProperties {
		if v, ok := el.attrs[name]; ok {
			props[name] = strings.TrimSpace(v)
		}
	}
	css := strings.TrimSpace(el.attrs["style"])
	if css == "" {
		return props
	}
	// the last declaration is dropped unless terminated
	if !strings.HasSuffix(css, ";") {
		css += ";"
	}
	decls, err := parser.ParseDeclarations(css)
	if err != nil {
		return props
	}
	for _, d := range decls {
		if d.Value != "" {
			props[strings.ToLower(d.Property)] = d.Value
		}
	}
	return props
}

// computeStyle derives the style of el from its parent's.
func (b *builder) computeStyle(el *element, parent *style, vp viewport) style {
	props := properties(el)
	s := *parent
	s.opacity, s.fillOpacity, s.strokeOpacity = 1, 1, 1
	s.display = true

	get := func(name string) (string, bool) {
		v, ok := props[name]
		if !ok || v == "" || v == "inherit" {
			return "", false
		}
		return v, true
	}

	if v, ok := get("font-size"); ok {
		if l, ok := parseLength(v); ok {
			size := l.resolve(axisOther, vp, parent.fontSize)
			if l.unit == "%" {
				size = l.value / 100 * parent.fontSize
			}
			if size > 0 {
				s.fontSize = size
			}
		}
	}
	if v, ok := get("color"); ok {
		if c, err := color.Parse(v); err == nil {
			s.color = c
		}
	}
	if v, ok := get("fill"); ok {
		s.fill = v
	}
	if v, ok := get("stroke"); ok {
		s.stroke = v
	}
	if v, ok := get("stroke-width"); ok {
		if l, ok := parseLength(v); ok {
			s.strokeWidth = l.resolve(axisOther, vp, s.fontSize)
		}
	}
	if v, ok := get("fill-rule"); ok {
		switch v {
		case "nonzero":
			s.fillRule = raster.FillRuleNonZero
		case "evenodd":
			s.fillRule = raster.FillRuleEvenOdd
		}
	}
	if v, ok := get("stroke-linecap"); ok {
		switch v {
		case "butt":
			s.cap = stroke.LineCapButt
		case "round":
			s.cap = stroke.LineCapRound
		case "square":
			s.cap = stroke.LineCapSquare
		}
	}
	if v, ok := get("stroke-linejoin"); ok {
		switch v {
		case "miter", "miter-clip", "arcs":
			s.join = stroke.LineJoinMiter
		case "round":
			s.join = stroke.LineJoinRound
		case "bevel":
			s.join = stroke.LineJoinBevel
		}
	}
	if v, ok := get("stroke-miterlimit"); ok {
		if l, ok := parseLength(v); ok && l.unit == "" && l.value >= 1 {
			s.miterLimit = l.value
		}
	}
	if v, ok := get("font-family"); ok {
		// first family of the list
		family, _, _ := strings.Cut(v, ",")
		s.fontFamily = strings.Trim(family, `"' `)
	}
	if v, ok := get("text-anchor"); ok {
		switch v {
		case "start":
			s.anchor = AnchorStart
		case "middle":
			s.anchor = AnchorMiddle
		case "end":
			s.anchor = AnchorEnd
		}
	}
	if v, ok := get("visibility"); ok {
		s.hidden = v == "hidden" || v == "collapse"
	}

	s.opacity = opacityProperty(props["opacity"], parent.opacity)
	s.fillOpacity = opacityProperty(props["fill-opacity"], parent.fillOpacity)
	s.strokeOpacity = opacityProperty(props["stroke-opacity"], parent.strokeOpacity)
	if v, ok := props["display"]; ok && v == "none" {
		s.display = false
	}

	b.checkAttributes(el, props)
	for _, name := range unsupportedProperties {
		if v, ok := props[name]; ok && v != "none" && v != "" {
			b.warn(&UnsupportedFeatureWarning{Element: el.name, Attribute: name})
		}
	}
	return s
}

// opacityProperty parses a number or percentage clamped to [0,1]. The
// keyword inherit copies the parent value; anything unparsable gives 1.
func opacityProperty(v string, parent float64) float64 {
	if v == "inherit" {
		return parent
	}
	if v == "" {
		return 1
	}
	l, ok := parseLength(v)
	if !ok {
		return 1
	}
	o := l.value
	switch l.unit {
	case "%":
		o /= 100
	case "":
	default:
		return 1
	}
	return clamp01(o)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
