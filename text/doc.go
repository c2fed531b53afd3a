// Package text draws SVG text runs with real font outlines.
//
// A Stamper shapes a run with the HarfBuzz port from go-text/typesetting,
// loads the glyph outlines through golang.org/x/image/font/sfnt, and
// rasterizes them with golang.org/x/image/vector. The coverage is then
// painted with the run's shader, so gradients and opacity apply to text
// the same way they apply to shapes.
//
// The Go Regular face is always available as the fallback family.
// Further faces are registered by family name:
//
//	ts, err := text.New()
//	if err != nil {
//		return err
//	}
//	if err := ts.AddFont("DejaVu Sans", ttf); err != nil {
//		return err
//	}
//	img, err := svg.Render(doc, svg.WithTextStamper(ts))
//
// Only horizontal left-to-right layout on a single line is supported.
package text
