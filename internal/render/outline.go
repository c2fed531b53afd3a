package render

import (
	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/path"
	"github.com/gogpu/svg/internal/scene"
)

// Outline returns the user-space path of a shape node. Groups and text
// have no outline.
func Outline(n scene.Node) []path.Element {
	switch n := n.(type) {
	case *scene.Rect:
		return path.Rect(n.X, n.Y, n.Width, n.Height, n.RX, n.RY)
	case *scene.Circle:
		return path.Ellipse(n.CX, n.CY, n.R, n.R)
	case *scene.Ellipse:
		return path.Ellipse(n.CX, n.CY, n.RX, n.RY)
	case *scene.Line:
		return path.Polyline([]geom.Point{geom.Pt(n.X1, n.Y1), geom.Pt(n.X2, n.Y2)}, false)
	case *scene.Polyline:
		return path.Polyline(n.Points, false)
	case *scene.Polygon:
		return path.Polyline(n.Points, true)
	case *scene.Path:
		return path.FromSegments(n.Segments)
	}
	return nil
}
