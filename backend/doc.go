// Package backend provides a registry of interchangeable SVG renderers.
//
// Every backend implements svg.Renderer. The native backend wraps
// svg.Render and is registered on import of this package. The oksvg
// backend lives in a subpackage and registers itself when imported:
//
//	import _ "github.com/gogpu/svg/backend/oksvg"
//
// # Backend Selection
//
// Use Get to request a backend by name, or Auto for a renderer that tries
// the registered backends in priority order and returns the first
// success:
//
//	r, err := backend.Get(backend.Auto)
//	if err != nil {
//		return err
//	}
//	img, err := r.Render(doc, svg.WithSize(128, 128))
package backend
