package scene

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/pathdata"
)

const (
	// DefaultMaxDepth bounds element nesting and use expansion.
	DefaultMaxDepth = 256
	// maxNodes bounds the number of nodes built, use copies included.
	maxNodes = 1 << 20
)

// Options configures Parse.
type Options struct {
	// MaxDepth limits nesting depth. Zero means DefaultMaxDepth.
	MaxDepth int
	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// builder carries the state of one Parse call.
type builder struct {
	ids       map[string]*element
	warnings  []error
	maxDepth  int
	nodes     int
	expanding map[*element]bool
	reported  map[string]bool // unknown attribute names already warned about
	logger    *slog.Logger
}

// Parse builds the scene graph of doc. Non-fatal problems are returned as
// warnings in document order; err is set only for fatal ones
// (*XMLSyntaxError, *UnsupportedRootError, *RecursionLimitError).
func Parse(doc []byte, opts Options) (*Document, []error, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	root, err := parseDOM(doc, maxDepth)
	if err != nil {
		return nil, nil, err
	}
	if root.name != "svg" || (root.space != "" && root.space != svgNamespace) {
		return nil, nil, &UnsupportedRootError{Element: root.name, Reason: "root element must be svg"}
	}

	b := &builder{
		ids:       indexIDs(root),
		maxDepth:  maxDepth,
		expanding: make(map[*element]bool),
		reported:  make(map[string]bool),
		logger:    logger,
	}

	d, err := rootSize(root)
	if err != nil {
		return nil, nil, err
	}

	vp := viewport{w: d.Width, h: d.Height}
	if d.HasViewBox {
		vp = viewport{w: d.ViewBox.Width(), h: d.ViewBox.Height()}
	}
	parent := initialStyle()
	s := b.computeStyle(root, &parent, vp)
	g, err := b.group(root, &s, vp, 0)
	if err != nil {
		return nil, nil, err
	}
	d.Root = g

	logger.Debug("scene parsed",
		"width", d.Width, "height", d.Height,
		"nodes", b.nodes, "warnings", len(b.warnings))
	return d, b.warnings, nil
}

func (b *builder) warn(err error) {
	b.warnings = append(b.warnings, err)
}

// indexIDs maps every id to its first element in document order.
func indexIDs(root *element) map[string]*element {
	ids := make(map[string]*element)
	stack := []*element{root}
	for len(stack) > 0 {
		el := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id, ok := el.attrs["id"]; ok && id != "" {
			if _, dup := ids[id]; !dup {
				ids[id] = el
			}
		}
		for i := len(el.children) - 1; i >= 0; i-- {
			stack = append(stack, el.children[i])
		}
	}
	return ids
}

// rootSize determines the intrinsic size and viewBox of the root element.
func rootSize(root *element) (*Document, error) {
	d := &Document{Aspect: parseAspectRatio(root.attrs["preserveAspectRatio"])}
	if v, ok := root.attr("viewBox"); ok {
		d.ViewBox, d.HasViewBox = parseViewBox(v)
	}
	w, wok := absoluteLength(root.attrs["width"])
	h, hok := absoluteLength(root.attrs["height"])

	vw, vh := d.ViewBox.Width(), d.ViewBox.Height()
	switch {
	case wok && hok:
	case d.HasViewBox && wok:
		h = w * vh / vw
	case d.HasViewBox && hok:
		w = h * vw / vh
	case d.HasViewBox:
		w, h = vw, vh
	default:
		return nil, &UnsupportedRootError{Element: root.name, Reason: "no definite size: width and height or a viewBox are required"}
	}
	if !(w > 0) || !(h > 0) {
		return nil, &UnsupportedRootError{Element: root.name, Reason: "canvas size must be positive"}
	}
	d.Width, d.Height = w, h
	return d, nil
}

// absoluteLength resolves a length that does not depend on a viewport.
func absoluteLength(v string) (float64, bool) {
	l, ok := parseLength(v)
	if !ok || !l.absolute() {
		return 0, false
	}
	return l.resolve(axisOther, viewport{}, defaultFontSize), true
}

// build creates the node for el. A nil node with a nil error means the
// element paints nothing.
func (b *builder) build(el *element, parent *style, vp viewport, depth int) (Node, error) {
	if el.space != "" && el.space != svgNamespace {
		return nil, nil
	}
	if depth > b.maxDepth {
		return nil, &RecursionLimitError{Limit: b.maxDepth, Reason: "group nesting"}
	}
	b.nodes++
	if b.nodes > maxNodes {
		return nil, &RecursionLimitError{Limit: maxNodes, Reason: "too many nodes"}
	}

	switch el.name {
	case "defs", "symbol", "linearGradient", "radialGradient", "stop",
		"title", "desc", "metadata", "tspan":
		return nil, nil
	case "filter", "clipPath", "mask", "image", "pattern", "style",
		"marker", "foreignObject", "script", "textPath":
		b.warn(&UnsupportedFeatureWarning{Element: el.name})
		return nil, nil
	}

	s := b.computeStyle(el, parent, vp)
	if !s.display {
		return nil, nil
	}

	switch el.name {
	case "g", "a":
		return b.group(el, &s, vp, depth)
	case "switch":
		return b.switchGroup(el, &s, vp, depth)
	case "svg":
		return b.nestedSVG(el, &s, vp, depth)
	case "use":
		return b.use(el, &s, vp, depth)
	case "text":
		return b.text(el, &s, vp), nil
	case "rect", "circle", "ellipse", "line", "polyline", "polygon", "path":
		return b.shape(el, &s, vp), nil
	}
	b.warn(&UnsupportedFeatureWarning{Element: el.name})
	return nil, nil
}

// base fills the shared properties of a node. Paints are resolved only
// for elements that paint themselves.
func (b *builder) base(el *element, s *style, vp viewport, painted bool) Base {
	base := defaultBase()
	base.ID = el.attrs["id"]
	if v, ok := el.attr("transform"); ok {
		m, err := geom.ParseTransform(v)
		if err != nil {
			b.warn(err)
		}
		base.Transform = m
	}
	base.Fill, base.Stroke = nil, nil
	if painted {
		base.Fill = b.resolvePaint(el, "fill", s.fill, s, vp)
		base.Stroke = b.resolvePaint(el, "stroke", s.stroke, s, vp)
	}
	base.StrokeWidth = s.strokeWidth
	base.FillRule = s.fillRule
	base.Cap = s.cap
	base.Join = s.join
	base.MiterLimit = s.miterLimit
	base.Opacity = s.opacity
	base.FillOpacity = s.fillOpacity
	base.StrokeOpacity = s.strokeOpacity
	base.Hidden = s.hidden
	return base
}

func (b *builder) group(el *element, s *style, vp viewport, depth int) (*Group, error) {
	g := &Group{Base: b.base(el, s, vp, false)}
	for _, c := range el.children {
		n, err := b.build(c, s, vp, depth+1)
		if err != nil {
			return nil, err
		}
		if n != nil {
			g.Children = append(g.Children, n)
		}
	}
	return g, nil
}

// switchGroup renders only the first child that produces a node.
func (b *builder) switchGroup(el *element, s *style, vp viewport, depth int) (*Group, error) {
	g := &Group{Base: b.base(el, s, vp, false)}
	for _, c := range el.children {
		n, err := b.build(c, s, vp, depth+1)
		if err != nil {
			return nil, err
		}
		if n != nil {
			g.Children = append(g.Children, n)
			break
		}
	}
	return g, nil
}

// nestedSVG maps an inner svg element's viewBox onto its x, y, width,
// height rectangle.
func (b *builder) nestedSVG(el *element, s *style, vp viewport, depth int) (Node, error) {
	x := b.length(el, "x", axisX, vp, s, "0")
	y := b.length(el, "y", axisY, vp, s, "0")
	w := b.length(el, "width", axisX, vp, s, "100%")
	h := b.length(el, "height", axisY, vp, s, "100%")
	if !(w > 0) || !(h > 0) {
		return nil, nil
	}
	return b.viewportGroup(el, el.children, s, x, y, w, h, depth)
}

// viewportGroup builds children into a group establishing a new viewport
// of size w x h at (x, y).
func (b *builder) viewportGroup(el *element, children []*element, s *style, x, y, w, h float64, depth int) (Node, error) {
	inner := viewport{w: w, h: h}
	m := geom.Translate(x, y)
	if v, ok := el.attr("viewBox"); ok {
		if vb, ok := parseViewBox(v); ok {
			ar := parseAspectRatio(el.attrs["preserveAspectRatio"])
			m = m.Multiply(ar.Transform(vb, w, h))
			inner = viewport{w: vb.Width(), h: vb.Height()}
		}
	}

	g := &Group{Base: b.base(el, s, inner, false)}
	g.Transform = g.Transform.Multiply(m)
	for _, c := range children {
		n, err := b.build(c, s, inner, depth+1)
		if err != nil {
			return nil, err
		}
		if n != nil {
			g.Children = append(g.Children, n)
		}
	}
	return g, nil
}

// use instantiates a copy of the referenced element.
func (b *builder) use(el *element, s *style, vp viewport, depth int) (Node, error) {
	href := strings.TrimSpace(el.attrs["href"])
	target, ok := b.ids[strings.TrimPrefix(href, "#")]
	if !strings.HasPrefix(href, "#") || !ok {
		b.warn(&InvalidAttributeWarning{Element: el.name, Attribute: "href", Value: href})
		return nil, nil
	}
	if b.expanding[target] {
		return nil, &RecursionLimitError{Limit: b.maxDepth, Reason: "circular reference to " + href}
	}
	b.expanding[target] = true
	defer delete(b.expanding, target)

	x := b.length(el, "x", axisX, vp, s, "0")
	y := b.length(el, "y", axisY, vp, s, "0")

	g := &Group{Base: b.base(el, s, vp, false)}
	g.Transform = g.Transform.Multiply(geom.Translate(x, y))

	var child Node
	var err error
	if target.name == "symbol" {
		w := b.length(el, "width", axisX, vp, s, "100%")
		h := b.length(el, "height", axisY, vp, s, "100%")
		if !(w > 0) || !(h > 0) {
			return nil, nil
		}
		ts := b.computeStyle(target, s, vp)
		if !ts.display {
			return nil, nil
		}
		child, err = b.viewportGroup(target, target.children, &ts, 0, 0, w, h, depth+1)
	} else {
		child, err = b.build(target, s, vp, depth+1)
	}
	if err != nil {
		return nil, err
	}
	if child != nil {
		g.Children = append(g.Children, child)
	}
	return g, nil
}

// length resolves a length attribute, falling back to def when the
// attribute is missing or malformed.
func (b *builder) length(el *element, name string, a axis, vp viewport, s *style, def string) float64 {
	l, ok := parseLength(el.attrs[name])
	if !ok {
		l, _ = parseLength(def)
	}
	return l.resolve(a, vp, s.fontSize)
}

// optionalLength is like length but reports whether the attribute was
// present and valid.
func (b *builder) optionalLength(el *element, name string, a axis, vp viewport, s *style) (float64, bool) {
	l, ok := parseLength(el.attrs[name])
	if !ok {
		return 0, false
	}
	return l.resolve(a, vp, s.fontSize), true
}

// nonNegative reports whether v may be rendered, warning about negative
// values.
func (b *builder) nonNegative(el *element, name string, v float64) bool {
	if v < 0 {
		b.warn(&InvalidAttributeWarning{Element: el.name, Attribute: name, Value: el.attrs[name]})
		return false
	}
	return true
}

func (b *builder) shape(el *element, s *style, vp viewport) Node {
	base := b.base(el, s, vp, true)

	switch el.name {
	case "rect":
		x := b.length(el, "x", axisX, vp, s, "0")
		y := b.length(el, "y", axisY, vp, s, "0")
		w := b.length(el, "width", axisX, vp, s, "0")
		h := b.length(el, "height", axisY, vp, s, "0")
		rx, hasRX := b.optionalLength(el, "rx", axisX, vp, s)
		ry, hasRY := b.optionalLength(el, "ry", axisY, vp, s)
		if !b.nonNegative(el, "width", w) || !b.nonNegative(el, "height", h) ||
			!b.nonNegative(el, "rx", rx) || !b.nonNegative(el, "ry", ry) {
			return nil
		}
		switch {
		case hasRX && !hasRY:
			ry = rx
		case hasRY && !hasRX:
			rx = ry
		}
		if w == 0 || h == 0 {
			return nil
		}
		return &Rect{Base: base, X: x, Y: y, Width: w, Height: h, RX: rx, RY: ry}

	case "circle":
		r := b.length(el, "r", axisOther, vp, s, "0")
		if !b.nonNegative(el, "r", r) || r == 0 {
			return nil
		}
		return &Circle{
			Base: base,
			CX:   b.length(el, "cx", axisX, vp, s, "0"),
			CY:   b.length(el, "cy", axisY, vp, s, "0"),
			R:    r,
		}

	case "ellipse":
		rx := b.length(el, "rx", axisX, vp, s, "0")
		ry := b.length(el, "ry", axisY, vp, s, "0")
		if !b.nonNegative(el, "rx", rx) || !b.nonNegative(el, "ry", ry) || rx == 0 || ry == 0 {
			return nil
		}
		return &Ellipse{
			Base: base,
			CX:   b.length(el, "cx", axisX, vp, s, "0"),
			CY:   b.length(el, "cy", axisY, vp, s, "0"),
			RX:   rx,
			RY:   ry,
		}

	case "line":
		return &Line{
			Base: base,
			X1:   b.length(el, "x1", axisX, vp, s, "0"),
			Y1:   b.length(el, "y1", axisY, vp, s, "0"),
			X2:   b.length(el, "x2", axisX, vp, s, "0"),
			Y2:   b.length(el, "y2", axisY, vp, s, "0"),
		}

	case "polyline", "polygon":
		pts := parsePoints(el.attrs["points"])
		if len(pts) < 2 {
			return nil
		}
		if el.name == "polygon" {
			return &Polygon{Base: base, Points: pts}
		}
		return &Polyline{Base: base, Points: pts}

	case "path":
		d := el.attrs["d"]
		if strings.TrimSpace(d) == "" {
			return nil
		}
		segs, err := pathdata.Parse(d)
		if err != nil {
			b.warn(&PathSyntaxError{ID: base.ID, Err: err})
			segs = nil
		}
		return &Path{Base: base, Segments: segs}
	}
	return nil
}

func (b *builder) text(el *element, s *style, vp viewport) Node {
	content := textContent(el)
	if content == "" {
		return nil
	}
	t := &Text{
		Base:       b.base(el, s, vp, true),
		Content:    content,
		FontSize:   s.fontSize,
		FontFamily: s.fontFamily,
		Anchor:     s.anchor,
	}
	t.X = firstLength(el.attrs["x"], axisX, vp, s)
	t.Y = firstLength(el.attrs["y"], axisY, vp, s)
	return t
}

// firstLength resolves the first entry of a length list such as text x.
func firstLength(v string, a axis, vp viewport, s *style) float64 {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return 0
	}
	l, ok := parseLength(fields[0])
	if !ok {
		return 0
	}
	return l.resolve(a, vp, s.fontSize)
}
