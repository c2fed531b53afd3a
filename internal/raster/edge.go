package raster

import (
	"math"

	"github.com/gogpu/svg/internal/geom"
)

// Edge represents a line segment for scanline rasterization.
// Endpoints are stored with y0 < y1; dir keeps the original orientation.
type Edge struct {
	x0, y0 float64 // Start point
	x1, y1 float64 // End point
	dx     float64 // dx/dy slope
	dir    int     // Direction: +1 downward, -1 upward
}

// NewEdge creates a new edge from two points.
// ok is false for horizontal or non-finite edges, which never cross a
// sample row.
func NewEdge(p0, p1 geom.Point) (e Edge, ok bool) {
	if !finite(p0) || !finite(p1) || p0.Y == p1.Y {
		return Edge{}, false
	}
	// Determine direction BEFORE swap (for non-zero winding rule)
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0 // Swap to ensure y0 < y1
	}

	return Edge{
		x0:  p0.X,
		y0:  p0.Y,
		x1:  p1.X,
		y1:  p1.Y,
		dx:  (p1.X - p0.X) / (p1.Y - p0.Y),
		dir: dir,
	}, true
}

// Dir returns the winding contribution of the edge.
func (e *Edge) Dir() int { return e.dir }

// YRange returns the half-open vertical span [y0, y1) the edge covers.
func (e *Edge) YRange() (y0, y1 float64) { return e.y0, e.y1 }

// XAtY calculates the x coordinate at the given y coordinate.
func (e *Edge) XAtY(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dx
}

func finite(p geom.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// ActiveEdgeTable holds the edges crossing the current sample row.
type ActiveEdgeTable struct {
	edges []ActiveEdge
}

// ActiveEdge is an edge being processed by the rasterizer.
type ActiveEdge struct {
	x    float64 // x position at the current sample row
	edge *Edge
}

// X returns the crossing position at the last sample row.
func (a ActiveEdge) X() float64 { return a.x }

// Dir returns the winding direction.
func (a ActiveEdge) Dir() int { return a.edge.dir }

// NewActiveEdgeTable creates a new active edge table.
func NewActiveEdgeTable() *ActiveEdgeTable {
	return &ActiveEdgeTable{
		edges: make([]ActiveEdge, 0, 32),
	}
}

// AddAtY adds an edge with x computed for the given y.
func (aet *ActiveEdgeTable) AddAtY(edge *Edge, y float64) {
	aet.edges = append(aet.edges, ActiveEdge{
		x:    edge.XAtY(y),
		edge: edge,
	})
}

// Remove drops edges whose span ends at or above y.
func (aet *ActiveEdgeTable) Remove(y float64) {
	j := 0
	for i := range aet.edges {
		if y < aet.edges[i].edge.y1 {
			aet.edges[j] = aet.edges[i]
			j++
		}
	}
	aet.edges = aet.edges[:j]
}

// UpdateAtY recomputes every crossing for sample row y.
func (aet *ActiveEdgeTable) UpdateAtY(y float64) {
	for i := range aet.edges {
		aet.edges[i].x = aet.edges[i].edge.XAtY(y)
	}
}

// Sort sorts edges by x coordinate (insertion sort for small lists).
// The list is nearly sorted between consecutive rows.
func (aet *ActiveEdgeTable) Sort() {
	for i := 1; i < len(aet.edges); i++ {
		key := aet.edges[i]
		j := i - 1
		for j >= 0 && aet.edges[j].x > key.x {
			aet.edges[j+1] = aet.edges[j]
			j--
		}
		aet.edges[j+1] = key
	}
}

// Edges returns the active edges.
func (aet *ActiveEdgeTable) Edges() []ActiveEdge {
	return aet.edges
}

// Len returns the number of active edges.
func (aet *ActiveEdgeTable) Len() int {
	return len(aet.edges)
}

// Clear clears all edges.
func (aet *ActiveEdgeTable) Clear() {
	aet.edges = aet.edges[:0]
}
