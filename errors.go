package svg

import (
	"errors"

	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/render"
	"github.com/gogpu/svg/internal/scene"
)

// Sentinel errors.
var (
	// ErrInvalidSize is returned for a negative or oversized canvas.
	ErrInvalidSize = errors.New("svg: invalid canvas size")

	// ErrRender wraps fatal errors reported by a Renderer backend.
	ErrRender = errors.New("svg: render failed")

	// ErrNoRoot is wrapped by UnsupportedRootError for an empty document.
	ErrNoRoot = scene.ErrNoRoot
)

// Fatal errors. Render returns no image when it reports one of these.
type (
	// XMLSyntaxError reports malformed markup.
	XMLSyntaxError = scene.XMLSyntaxError
	// UnsupportedRootError reports a root that is not <svg> or has no
	// resolvable canvas size.
	UnsupportedRootError = scene.UnsupportedRootError
	// RecursionLimitError reports nesting or use expansion past the limit.
	RecursionLimitError = scene.RecursionLimitError
)

// Warnings. They are collected in Image.Warnings.
type (
	TransformSyntaxError      = geom.TransformSyntaxError
	PathSyntaxError           = scene.PathSyntaxError
	UnsupportedFeatureWarning = scene.UnsupportedFeatureWarning
	InvalidAttributeWarning   = scene.InvalidAttributeWarning
	PaintReferenceWarning     = scene.PaintReferenceWarning
	TextWarning               = render.TextWarning
)
