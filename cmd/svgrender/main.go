// Command svgrender rasterizes SVG files to PNG or JPEG.
//
// Usage:
//
//	svgrender [flags] input.svg...
//
// With one input, -o names the output file ("-" writes PNG to stdout).
// Otherwise each input.svg becomes input.png, in -dir when given. Flag
// defaults come from SVGRENDER_* environment variables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/svg"
	"github.com/gogpu/svg/backend"
	_ "github.com/gogpu/svg/backend/oksvg"
	"github.com/gogpu/svg/internal/config"
	"github.com/gogpu/svg/internal/parallel"
	"github.com/gogpu/svg/text"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

var errUnsupportedFormat = errors.New("unsupported output format")

// job is one input/output pair.
type job struct {
	in, out string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "svgrender: %v\n", err)
		return 2
	}

	fs := flag.NewFlagSet("svgrender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		output   = fs.String("o", "", "output file for a single input (\"-\" for stdout)")
		dir      = fs.String("dir", "", "output directory for batch conversion")
		width    = fs.Int("w", 0, "output width in pixels (0 derives it from the document)")
		height   = fs.Int("h", 0, "output height in pixels (0 derives it from the document)")
		bg       = fs.String("bg", cfg.Background, "background color (e.g. white, #ff0000, transparent)")
		engine   = fs.String("backend", cfg.Backend, "rendering backend: "+strings.Join(append([]string{backend.Auto}, backend.Available()...), ", "))
		flatness = fs.Float64("flatness", cfg.Flatness, "curve flatness in device pixels")
		maxDepth = fs.Int("max-depth", cfg.MaxDepth, "maximum element nesting depth")
		workers  = fs.Int("j", cfg.Workers, "parallel renders (0 uses GOMAXPROCS)")
		drawText = fs.Bool("text", cfg.Text, "draw text with the built-in Go fonts")
		verbose  = fs.Bool("v", false, "log debug information")
		version  = fs.Bool("version", false, "print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *version {
		fmt.Fprintf(stdout, "svgrender %s\n", svg.Version)
		return 0
	}

	level := slog.LevelWarn
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		fmt.Fprintf(stderr, "svgrender: log level: %v\n", err)
		return 2
	}
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	svg.SetLogger(logger)

	inputs := fs.Args()
	if len(inputs) == 0 {
		fs.Usage()
		return 2
	}
	if *output != "" && len(inputs) > 1 {
		fmt.Fprintln(stderr, "svgrender: -o requires a single input")
		return 2
	}

	background, err := config.ParseBackground(*bg)
	if err != nil {
		fmt.Fprintf(stderr, "svgrender: %v\n", err)
		return 2
	}
	renderer, err := backend.Get(*engine)
	if err != nil {
		fmt.Fprintf(stderr, "svgrender: %v\n", err)
		return 2
	}

	opts := []svg.Option{
		svg.WithSize(*width, *height),
		svg.WithBackground(background),
		svg.WithFlatness(*flatness),
		svg.WithMaxDepth(*maxDepth),
		svg.WithLogger(logger),
	}
	if *drawText {
		ts, err := text.New()
		if err != nil {
			fmt.Fprintf(stderr, "svgrender: %v\n", err)
			return 1
		}
		opts = append(opts, svg.WithTextStamper(ts))
	}

	jobs := make([]job, len(inputs))
	for i, in := range inputs {
		jobs[i] = job{in: in, out: outputPath(in, *output, *dir)}
	}

	pool := parallel.NewPool(*workers)
	defer pool.Close()

	tasks := make([]parallel.Job, len(jobs))
	for i, j := range jobs {
		tasks[i] = func(context.Context) error {
			return convert(renderer, j, stdin, stdout, opts)
		}
	}

	failed := 0
	for i, err := range pool.Run(context.Background(), tasks) {
		if err != nil {
			failed++
			fmt.Fprintf(stderr, "svgrender: %s: %v\n", jobs[i].in, err)
			continue
		}
		logger.Info("rendered", "input", jobs[i].in, "output", jobs[i].out)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

// outputPath picks the output for in: the -o value, or in with its
// extension replaced by .png, moved into dir when dir is set.
func outputPath(in, output, dir string) string {
	if output != "" {
		return output
	}
	if in == "-" {
		return "-"
	}
	out := strings.TrimSuffix(in, filepath.Ext(in)) + ".png"
	if dir != "" {
		out = filepath.Join(dir, filepath.Base(out))
	}
	return out
}

func convert(r svg.Renderer, j job, stdin io.Reader, stdout io.Writer, opts []svg.Option) error {
	var (
		doc []byte
		err error
	)
	if j.in == "-" {
		doc, err = io.ReadAll(stdin)
	} else {
		doc, err = os.ReadFile(j.in)
	}
	if err != nil {
		return err
	}
	enc := encodePNG
	if j.out != "-" {
		if enc, err = encoderFor(j.out); err != nil {
			return err
		}
	}

	img, err := r.Render(doc, opts...)
	if err != nil {
		return err
	}

	if j.out == "-" {
		return enc(stdout, img.RGBA())
	}
	f, err := os.Create(j.out)
	if err != nil {
		return err
	}
	if err := enc(f, img.RGBA()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type encoder func(io.Writer, image.Image) error

func encodePNG(w io.Writer, m image.Image) error {
	return png.Encode(w, m)
}

func encodeJPEG(w io.Writer, m image.Image) error {
	return jpeg.Encode(w, m, &jpeg.Options{Quality: 90})
}

// encoderFor picks the image format from the file extension.
func encoderFor(name string) (encoder, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".png":
		return encodePNG, nil
	case ".jpg", ".jpeg":
		return encodeJPEG, nil
	default:
		return nil, fmt.Errorf("%w %q", errUnsupportedFormat, ext)
	}
}
