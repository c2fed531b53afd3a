package raster

import (
	"math"
	"testing"

	"github.com/gogpu/svg/internal/geom"
)

// coverageGrid rasterizes the polygons and returns a width*height grid.
func coverageGrid(w, h int, rule FillRule, polys ...[]geom.Point) []float32 {
	r := NewRasterizer(w, h)
	for _, p := range polys {
		r.AddPolygon(p)
	}
	grid := make([]float32, w*h)
	r.Fill(rule, func(y, x0 int, cov []float32) {
		copy(grid[y*w+x0:], cov)
	})
	return grid
}

func rect(x0, y0, x1, y1 float64) []geom.Point {
	return []geom.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func TestNewEdge(t *testing.T) {
	tests := []struct {
		name    string
		p0, p1  geom.Point
		wantOK  bool
		wantDir int
	}{
		{"downward", geom.Pt(0, 0), geom.Pt(10, 10), true, 1},
		{"upward", geom.Pt(10, 10), geom.Pt(0, 0), true, -1},
		{"horizontal", geom.Pt(0, 5), geom.Pt(10, 5), false, 0},
		{"nan", geom.Pt(math.NaN(), 0), geom.Pt(1, 1), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := NewEdge(tt.p0, tt.p1)
			if ok != tt.wantOK {
				t.Fatalf("NewEdge ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if e.Dir() != tt.wantDir {
				t.Errorf("Dir() = %d, want %d", e.Dir(), tt.wantDir)
			}
			if y0, y1 := e.YRange(); y0 >= y1 {
				t.Errorf("YRange() = %v,%v, want y0 < y1", y0, y1)
			}
			if x := e.XAtY(5); x != 5 {
				t.Errorf("XAtY(5) = %v, want 5", x)
			}
		})
	}
}

func TestActiveEdgeTableSort(t *testing.T) {
	edges := []Edge{}
	for _, x := range []float64{7, 3, 5, 1} {
		e, _ := NewEdge(geom.Pt(x, 0), geom.Pt(x, 10))
		edges = append(edges, e)
	}
	aet := NewActiveEdgeTable()
	for i := range edges {
		aet.AddAtY(&edges[i], 1)
	}
	aet.Sort()
	prev := math.Inf(-1)
	for _, ae := range aet.Edges() {
		if ae.X() < prev {
			t.Fatalf("edges not sorted: %v after %v", ae.X(), prev)
		}
		prev = ae.X()
	}
	aet.Remove(10)
	if aet.Len() != 0 {
		t.Errorf("Len() after Remove(10) = %d, want 0", aet.Len())
	}
}

func TestFillPixelAlignedRectIsExact(t *testing.T) {
	const w, h = 8, 8
	grid := coverageGrid(w, h, FillRuleNonZero, rect(2, 2, 6, 5))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := float32(0)
			if x >= 2 && x < 6 && y >= 2 && y < 5 {
				want = 1
			}
			if got := grid[y*w+x]; got != want {
				t.Errorf("coverage(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillFractionalCoverage(t *testing.T) {
	tests := []struct {
		name string
		poly []geom.Point
		x, y int
		want float32
	}{
		{"half pixel horizontally", rect(0.5, 0, 1, 1), 0, 0, 0.5},
		{"quarter pixel", rect(0, 0, 0.5, 0.5), 0, 0, 0.25},
		{"three quarters vertically", rect(0, 0.25, 1, 1), 0, 0, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := coverageGrid(2, 2, FillRuleNonZero, tt.poly)
			if got := grid[tt.y*2+tt.x]; math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("coverage = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFillTriangleArea(t *testing.T) {
	const w, h = 32, 32
	tri := []geom.Point{{X: 3.3, Y: 2.1}, {X: 28.7, Y: 9.4}, {X: 11.2, Y: 29.9}}
	grid := coverageGrid(w, h, FillRuleNonZero, tri)
	var sum float64
	for _, c := range grid {
		if c < 0 || c > 1 {
			t.Fatalf("coverage %v out of [0,1]", c)
		}
		sum += float64(c)
	}
	a, b, c := tri[0], tri[1], tri[2]
	area := math.Abs(b.Sub(a).Cross(c.Sub(a))) / 2
	if math.Abs(sum-area) > area*0.01 {
		t.Errorf("total coverage = %v, want about %v", sum, area)
	}
}

func TestFillRuleStar(t *testing.T) {
	const w, h = 64, 64
	star := make([]geom.Point, 5)
	for i := range star {
		a := -math.Pi/2 + float64(i)*4*math.Pi/5
		star[i] = geom.Pt(32+28*math.Cos(a), 32+28*math.Sin(a))
	}
	nz := coverageGrid(w, h, FillRuleNonZero, star)
	eo := coverageGrid(w, h, FillRuleEvenOdd, star)

	var sumNZ, sumEO float64
	for i := range nz {
		sumNZ += float64(nz[i])
		sumEO += float64(eo[i])
		if eo[i] > nz[i]+1e-6 {
			t.Fatalf("evenodd coverage exceeds nonzero at %d: %v > %v", i, eo[i], nz[i])
		}
	}
	if !(sumNZ > sumEO) {
		t.Errorf("nonzero area %v should exceed evenodd area %v", sumNZ, sumEO)
	}
	// the pentagon in the middle is covered under nonzero only
	if nz[32*w+32] != 1 || eo[32*w+32] != 0 {
		t.Errorf("centre coverage nonzero=%v evenodd=%v, want 1 and 0", nz[32*w+32], eo[32*w+32])
	}
}

func TestFillWindingCancels(t *testing.T) {
	// two overlapping rectangles with opposite orientation cancel under nonzero
	outer := rect(0, 0, 8, 8)
	inner := []geom.Point{{X: 2, Y: 2}, {X: 2, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 2}}
	grid := coverageGrid(8, 8, FillRuleNonZero, outer, inner)
	if got := grid[4*8+4]; got != 0 {
		t.Errorf("hole coverage = %v, want 0", got)
	}
	if got := grid[0]; got != 1 {
		t.Errorf("ring coverage = %v, want 1", got)
	}
}

func TestFillClipsToCanvas(t *testing.T) {
	grid := coverageGrid(4, 4, FillRuleNonZero, rect(-10, -10, 100, 100))
	for i, c := range grid {
		if c != 1 {
			t.Fatalf("coverage[%d] = %v, want 1", i, c)
		}
	}
}

func TestFillFarOffCanvas(t *testing.T) {
	tests := []struct {
		name string
		poly []geom.Point
	}{
		{"below", rect(0, 1e19, 10, 1e19+1e6)},
		{"above", rect(0, -1e19-1e6, 10, -1e19)},
		{"right", rect(1e19, 0, 1e19+1e6, 10)},
		{"past int range", rect(0, 9.3e18, 10, 9.4e18)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRasterizer(10, 10)
			r.AddPolygon(tt.poly)
			rows := 0
			r.Fill(FillRuleNonZero, func(y, x0 int, cov []float32) { rows++ })
			if rows != 0 {
				t.Errorf("emitted %d rows, want 0", rows)
			}
		})
	}
}

func TestFillHugeSpanCoversCanvas(t *testing.T) {
	grid := coverageGrid(4, 4, FillRuleNonZero, rect(-1e19, -1e19, 1e19, 1e19))
	for i, c := range grid {
		if c != 1 {
			t.Fatalf("coverage[%d] = %v, want 1", i, c)
		}
	}
}
