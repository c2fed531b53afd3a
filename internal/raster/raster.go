// Package raster converts device-space polygons into per-pixel coverage
// with a scanline active-edge-list algorithm.
//
// Each pixel row is sampled by SubScanlines horizontal lines placed at
// y + (k+0.5)/SubScanlines. Along every sample line the spans selected by
// the fill rule contribute their exact horizontal pixel overlap, so the
// final coverage is a box-filtered area estimate: exact in x, sampled in y.
package raster

import (
	"math"
	"sort"

	"github.com/gogpu/svg/internal/geom"
)

// SubScanlines is the number of sample rows per pixel row. A power of two
// keeps interior coverage sums exact in floating point.
const SubScanlines = 16

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// String returns the SVG keyword for the rule.
func (f FillRule) String() string {
	if f == FillRuleEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// RowFunc receives the coverage of one pixel row: cov[i] belongs to pixel
// (x0+i, y). The slice is reused between calls and must not be retained.
type RowFunc func(y, x0 int, cov []float32)

// Rasterizer performs scanline rasterization.
// A Rasterizer is reusable but not safe for concurrent use.
type Rasterizer struct {
	width  int
	height int
	edges  []Edge
	aet    *ActiveEdgeTable

	// row accumulators, width+1 long: area holds partial pixel coverage,
	// span is a difference array for fully covered runs
	area []float32
	span []float32
}

// NewRasterizer creates a new rasterizer for the given dimensions.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		width:  width,
		height: height,
		aet:    NewActiveEdgeTable(),
		area:   make([]float32, width+1),
		span:   make([]float32, width+1),
	}
}

// Reset discards all edges.
func (r *Rasterizer) Reset() {
	r.edges = r.edges[:0]
}

// EdgeCount returns the number of non-horizontal edges collected so far.
func (r *Rasterizer) EdgeCount() int {
	return len(r.edges)
}

// AddEdge adds one directed edge.
func (r *Rasterizer) AddEdge(p0, p1 geom.Point) {
	if e, ok := NewEdge(p0, p1); ok {
		r.edges = append(r.edges, e)
	}
}

// AddPolygon adds the closed polygon through pts. The closing edge from the
// last point back to the first is implied.
func (r *Rasterizer) AddPolygon(pts []geom.Point) {
	if len(pts) < 2 {
		return
	}
	for i := 0; i+1 < len(pts); i++ {
		r.AddEdge(pts[i], pts[i+1])
	}
	r.AddEdge(pts[len(pts)-1], pts[0])
}

// Fill computes coverage for all collected edges under rule and reports
// every row that may contain non-zero coverage to emit.
func (r *Rasterizer) Fill(rule FillRule, emit RowFunc) {
	if len(r.edges) == 0 || r.width <= 0 || r.height <= 0 {
		return
	}

	sort.SliceStable(r.edges, func(i, j int) bool { return r.edges[i].y0 < r.edges[j].y0 })

	yMin := math.Inf(1)
	yMax := math.Inf(-1)
	for i := range r.edges {
		yMin = math.Min(yMin, r.edges[i].y0)
		yMax = math.Max(yMax, r.edges[i].y1)
	}
	h := float64(r.height)
	if yMin >= h || yMax <= 0 {
		return
	}
	// clamp in float: edges far off canvas overflow int
	rowStart := int(math.Min(h, math.Max(0, math.Floor(yMin))))
	rowEnd := int(math.Max(0, math.Min(h, math.Ceil(yMax))))

	r.aet.Clear()
	next := 0
	const step = 1.0 / SubScanlines
	weight := float32(step)

	for y := rowStart; y < rowEnd; y++ {
		lo, hi := r.width, -1
		for k := 0; k < SubScanlines; k++ {
			sy := float64(y) + (float64(k)+0.5)*step

			r.aet.Remove(sy)
			for next < len(r.edges) && r.edges[next].y0 <= sy {
				if sy < r.edges[next].y1 {
					r.aet.AddAtY(&r.edges[next], sy)
				}
				next++
			}
			if r.aet.Len() == 0 {
				continue
			}
			r.aet.UpdateAtY(sy)
			r.aet.Sort()

			if rule == FillRuleEvenOdd {
				lo, hi = r.spansEvenOdd(weight, lo, hi)
			} else {
				lo, hi = r.spansNonZero(weight, lo, hi)
			}
		}
		if hi < lo {
			continue
		}
		r.emitRow(y, lo, hi, emit)
	}
}

// spansNonZero accumulates spans where the winding number is non-zero.
func (r *Rasterizer) spansNonZero(w float32, lo, hi int) (int, int) {
	edges := r.aet.Edges()
	winding := 0
	var x1 float64
	for i := range edges {
		if winding == 0 {
			x1 = edges[i].x
		}
		winding += edges[i].Dir()
		if winding == 0 {
			lo, hi = r.addSpan(x1, edges[i].x, w, lo, hi)
		}
	}
	return lo, hi
}

// spansEvenOdd accumulates spans between alternate crossings.
func (r *Rasterizer) spansEvenOdd(w float32, lo, hi int) (int, int) {
	edges := r.aet.Edges()
	for i := 0; i+1 < len(edges); i += 2 {
		lo, hi = r.addSpan(edges[i].x, edges[i+1].x, w, lo, hi)
	}
	return lo, hi
}

// addSpan adds the exact horizontal overlap of [xa, xb) with every pixel,
// scaled by w. It returns the widened dirty pixel range.
func (r *Rasterizer) addSpan(xa, xb float64, w float32, lo, hi int) (int, int) {
	xa = math.Max(xa, 0)
	xb = math.Min(xb, float64(r.width))
	if !(xb > xa) {
		return lo, hi
	}
	ia := int(xa)
	ib := int(xb)
	if ib >= r.width {
		ib = r.width - 1
	}
	if ia == ib {
		r.area[ia] += float32(xb-xa) * w
	} else {
		r.area[ia] += float32(float64(ia+1)-xa) * w
		// pixels ia+1 .. ib-1 are fully covered
		r.span[ia+1] += w
		r.span[ib] -= w
		r.area[ib] += float32(xb-float64(ib)) * w
	}
	if ia < lo {
		lo = ia
	}
	if ib > hi {
		hi = ib
	}
	return lo, hi
}

// emitRow resolves the accumulators of pixels lo..hi, clears them and
// hands the coverage to emit.
func (r *Rasterizer) emitRow(y, lo, hi int, emit RowFunc) {
	cov := r.area[lo : hi+1]
	var run float32
	for i := lo; i <= hi; i++ {
		run += r.span[i]
		r.span[i] = 0
		c := r.area[i] + run
		if c > 1 {
			c = 1
		} else if c < 0 {
			c = 0
		}
		r.area[i] = c
	}
	r.span[hi+1] = 0
	emit(y, lo, cov)
	for i := lo; i <= hi; i++ {
		r.area[i] = 0
	}
}
