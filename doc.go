// Package svg rasterizes SVG documents into RGBA pixel buffers in pure Go.
//
// # Quick Start
//
//	import "github.com/gogpu/svg"
//
//	img, err := svg.Render(data, svg.WithSize(256, 0))
//	if err != nil {
//		return err
//	}
//	for _, w := range img.Warnings {
//		log.Println(w)
//	}
//	png.Encode(f, img.RGBA())
//
// # Pipeline
//
// A document goes through five stages, each in its own internal package:
//
//   - scene: XML is decoded into a typed scene graph with styles,
//     transforms, units and paint servers resolved
//   - pathdata and path: path data is parsed and curves are flattened
//     adaptively to polylines within a device-pixel tolerance
//   - stroke: strokes are expanded into fillable outlines
//   - raster and paint: polygons are scan converted with analytic
//     horizontal and 16x vertical anti-aliasing and shaded
//   - blend and render: shapes are composited source-over into
//     premultiplied layers, with a new layer per translucent group
//
// # Errors
//
// Malformed markup, a root element without a canvas size and runaway
// nesting are fatal: Render returns an error and no image. Everything
// else (bad transforms, bad path data, unknown elements, unresolved
// paint references, undrawn text) is collected in Image.Warnings and the
// rest of the document is drawn. All error types are exported from this
// package so errors.As works on them directly.
//
// # Text
//
// Text is drawn only when a TextStamper is configured. The text
// subpackage provides one backed by go-text shaping and the Go fonts:
//
//	ts, _ := text.New()
//	img, err := svg.Render(data, svg.WithTextStamper(ts))
//
// # Coordinate System
//
// Origin (0,0) is the top-left corner, x grows right and y grows down.
// Pixel (x, y) covers the square [x, x+1) x [y, y+1).
//
// # Unsupported Features
//
// CSS style sheets and selectors, filters, clipping, masking, markers,
// dashing, patterns and embedded images are not drawn. Documents using
// them render partially and each skipped feature is reported.
package svg

// Version is the current version of the library.
const Version = "0.1.0"
