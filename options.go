package svg

import (
	imgcolor "image/color"
	"log/slog"

	"github.com/gogpu/svg/internal/color"
)

// Option configures a Render call.
//
// Example:
//
//	img, err := svg.Render(doc,
//		svg.WithSize(512, 0),
//		svg.WithBackground(color.Transparent),
//	)
type Option func(*options)

// options holds the resolved configuration of one Render call.
type options struct {
	width, height int
	background    color.RGBA
	flatness      float64
	maxDepth      int
	text          TextStamper
	logger        *slog.Logger
}

// defaultOptions returns the configuration used when no option is given:
// document size, opaque white background, 0.25px flatness and a nesting
// limit of 256.
func defaultOptions() options {
	return options{
		background: color.White,
		flatness:   0.25,
		maxDepth:   256,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// WithSize sets the output size in pixels. Zero derives that dimension
// from the document: both zero uses the document size rounded up, one
// zero keeps the document aspect ratio.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithBackground sets the color painted under the document. The default
// is opaque white. A nil color means transparent.
func WithBackground(c imgcolor.Color) Option {
	return func(o *options) {
		if c == nil {
			o.background = color.Transparent
			return
		}
		n := imgcolor.NRGBAModel.Convert(c).(imgcolor.NRGBA)
		o.background = color.From8(color.RGBA8{R: n.R, G: n.G, B: n.B, A: n.A})
	}
}

// WithFlatness sets the maximum distance in device pixels between a curve
// and its polygon approximation. Values that are not positive are
// ignored.
func WithFlatness(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.flatness = px
		}
	}
}

// WithMaxDepth sets the element nesting limit. Deeper documents fail with
// a RecursionLimitError. Values that are not positive are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithTextStamper enables text rendering. Without one, text nodes are
// skipped with a TextWarning.
func WithTextStamper(ts TextStamper) Option {
	return func(o *options) {
		o.text = ts
	}
}

// WithLogger sets the logger for this call, overriding the package
// logger set with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Config is the resolved form of a list of options. It lets Renderer
// implementations outside this package honor the same options.
type Config struct {
	// Width and Height are the requested size; zero derives it from the
	// document.
	Width, Height int
	Background    imgcolor.NRGBA
	Flatness      float64
	MaxDepth      int
	Text          TextStamper
	// Logger is never nil; it falls back to the package logger.
	Logger *slog.Logger
}

// NewConfig applies opts to the defaults.
func NewConfig(opts ...Option) Config {
	o := newOptions(opts)
	bg := o.background.To8()
	logger := o.logger
	if logger == nil {
		logger = Logger()
	}
	return Config{
		Width:      o.width,
		Height:     o.height,
		Background: imgcolor.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: bg.A},
		Flatness:   o.flatness,
		MaxDepth:   o.maxDepth,
		Text:       o.text,
		Logger:     logger,
	}
}
