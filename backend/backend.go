package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/svg"
)

// Backend names.
const (
	// Native is the built-in pure Go renderer.
	Native = "native"
	// OkSVG is the renderer built on srwiley/oksvg and rasterx.
	OkSVG = "oksvg"
	// Auto tries every registered backend in priority order.
	Auto = "auto"
)

// ErrBackendNotAvailable is returned when a requested backend is not
// registered.
var ErrBackendNotAvailable = errors.New("backend: not available")

func init() {
	Register(Native, func() svg.Renderer {
		return svg.RendererFunc(svg.Render)
	})
}

// fallback tries backends in order. A fatal error from one backend moves
// on to the next; invalid sizes are reported at once since every backend
// would reject them.
type fallback struct {
	names []string
}

func (f fallback) Render(doc []byte, opts ...svg.Option) (*svg.Image, error) {
	logger := svg.NewConfig(opts...).Logger
	var errs []error
	for _, name := range f.names {
		r, err := Get(name)
		if err != nil {
			continue
		}
		img, err := r.Render(doc, opts...)
		if err == nil {
			return img, nil
		}
		if errors.Is(err, svg.ErrInvalidSize) {
			return nil, err
		}
		logger.Warn("backend failed, trying next", "backend", name, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	if len(errs) == 0 {
		return nil, ErrBackendNotAvailable
	}
	return nil, fmt.Errorf("%w: %w", svg.ErrRender, errors.Join(errs...))
}
