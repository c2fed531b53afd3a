package scene

import (
	"math"
	"strings"

	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/lex"
)

// Unit conversion factors to user units (px at 96 dpi).
const (
	pxPerIn = 96.0
	pxPerPt = pxPerIn / 72
	pxPerPc = pxPerIn / 6
	pxPerMm = pxPerIn / 25.4
	pxPerCm = pxPerIn / 2.54
)

// axis selects what a percentage resolves against.
type axis int

const (
	axisX axis = iota
	axisY
	axisOther
)

// length is a parsed <length>: a number with a unit suffix.
type length struct {
	value float64
	unit  string
}

// parseLength parses a number followed by an optional unit. Surrounding
// whitespace is allowed; anything else after the unit is an error.
func parseLength(s string) (length, bool) {
	sc := lex.NewScanner(strings.TrimSpace(s))
	v, ok := sc.Number()
	if !ok {
		return length{}, false
	}
	unit := strings.ToLower(strings.TrimSpace(sc.Rest()))
	switch unit {
	case "", "px", "pt", "pc", "mm", "cm", "in", "em", "ex", "%":
		return length{value: v, unit: unit}, true
	}
	return length{}, false
}

// viewport is the size percentages resolve against.
type viewport struct {
	w, h float64
}

func (vp viewport) diagonal() float64 {
	return math.Sqrt((vp.w*vp.w + vp.h*vp.h) / 2)
}

// resolve converts l to user units.
func (l length) resolve(a axis, vp viewport, fontSize float64) float64 {
	switch l.unit {
	case "pt":
		return l.value * pxPerPt
	case "pc":
		return l.value * pxPerPc
	case "mm":
		return l.value * pxPerMm
	case "cm":
		return l.value * pxPerCm
	case "in":
		return l.value * pxPerIn
	case "em":
		return l.value * fontSize
	case "ex":
		return l.value * fontSize / 2
	case "%":
		switch a {
		case axisX:
			return l.value / 100 * vp.w
		case axisY:
			return l.value / 100 * vp.h
		default:
			return l.value / 100 * vp.diagonal()
		}
	}
	return l.value
}

// absolute reports whether l can be resolved without a viewport.
func (l length) absolute() bool {
	return l.unit != "%"
}

// parsePoints parses a points attribute. An odd trailing coordinate is
// dropped, as is everything after the first malformed number.
func parsePoints(s string) []geom.Point {
	nums, _ := lex.Numbers(s)
	pts := make([]geom.Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pts = append(pts, geom.Pt(nums[i], nums[i+1]))
	}
	return pts
}

// parseViewBox parses "min-x min-y width height". Width and height must
// be positive.
func parseViewBox(s string) (geom.Rect, bool) {
	nums, ok := lex.Numbers(s)
	if !ok || len(nums) != 4 || !(nums[2] > 0) || !(nums[3] > 0) {
		return geom.Rect{}, false
	}
	return geom.Rect{
		Min: geom.Pt(nums[0], nums[1]),
		Max: geom.Pt(nums[0]+nums[2], nums[1]+nums[3]),
	}, true
}

// Align is one axis of preserveAspectRatio alignment.
type Align int

// Alignments: xMin/YMin, xMid/YMid and xMax/YMax.
const (
	AlignMin Align = iota
	AlignMid
	AlignMax
)

// AspectRatio is a parsed preserveAspectRatio value.
type AspectRatio struct {
	// None stretches the viewBox to the viewport non-uniformly.
	None  bool
	X, Y  Align
	Slice bool
}

// DefaultAspectRatio is xMidYMid meet.
func DefaultAspectRatio() AspectRatio {
	return AspectRatio{X: AlignMid, Y: AlignMid}
}

// parseAspectRatio parses a preserveAspectRatio attribute. Unknown values
// give the default.
func parseAspectRatio(s string) AspectRatio {
	fields := strings.Fields(s)
	if len(fields) > 0 && fields[0] == "defer" {
		fields = fields[1:]
	}
	ar := DefaultAspectRatio()
	if len(fields) == 0 {
		return ar
	}
	align := fields[0]
	if align == "none" {
		ar.None = true
	} else if len(align) == 8 && align[0] == 'x' && align[4] == 'Y' {
		x, okX := parseAlign(align[1:4])
		y, okY := parseAlign(align[5:8])
		if !okX || !okY {
			return DefaultAspectRatio()
		}
		ar.X, ar.Y = x, y
	} else {
		return ar
	}
	if len(fields) > 1 && fields[1] == "slice" {
		ar.Slice = true
	}
	return ar
}

func parseAlign(s string) (Align, bool) {
	switch s {
	case "Min":
		return AlignMin, true
	case "Mid":
		return AlignMid, true
	case "Max":
		return AlignMax, true
	}
	return AlignMin, false
}

// Transform returns the matrix mapping vb onto a width x height viewport
// at the origin.
func (ar AspectRatio) Transform(vb geom.Rect, width, height float64) geom.Matrix {
	vw, vh := vb.Width(), vb.Height()
	if !(vw > 0) || !(vh > 0) {
		return geom.Identity()
	}
	sx, sy := width/vw, height/vh
	if ar.None {
		return geom.Scale(sx, sy).Multiply(geom.Translate(-vb.Min.X, -vb.Min.Y))
	}

	s := math.Min(sx, sy)
	if ar.Slice {
		s = math.Max(sx, sy)
	}
	tx := alignOffset(ar.X, width-vw*s)
	ty := alignOffset(ar.Y, height-vh*s)
	return geom.Translate(tx, ty).
		Multiply(geom.Scale(s, s)).
		Multiply(geom.Translate(-vb.Min.X, -vb.Min.Y))
}

func alignOffset(a Align, free float64) float64 {
	switch a {
	case AlignMid:
		return free / 2
	case AlignMax:
		return free
	}
	return 0
}
