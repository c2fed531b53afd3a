package color

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/svg/internal/lex"
)

// ErrInvalidColor is wrapped by every Parse failure.
var ErrInvalidColor = errors.New("invalid color")

// Parse parses a CSS color value: hex forms (#rgb, #rgba, #rrggbb,
// #rrggbbaa), rgb()/rgba() with numbers or percentages, hsl()/hsla(),
// the SVG named colors and "transparent". The keywords "none" and
// "currentColor" are paint concerns and are rejected here.
func Parse(s string) (RGBA, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return RGBA{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	low := strings.ToLower(v)

	switch {
	case low[0] == '#':
		return parseHex(low[1:], s)
	case strings.HasPrefix(low, "rgb"):
		return parseFunc(low, "rgb", s)
	case strings.HasPrefix(low, "hsl"):
		return parseFunc(low, "hsl", s)
	case low == "transparent":
		return Transparent, nil
	}
	if c, ok := colornames.Map[low]; ok {
		return From8(RGBA8{R: c.R, G: c.G, B: c.B, A: c.A}), nil
	}
	return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(h, orig string) (RGBA, error) {
	var d [8]uint8
	for i := 0; i < len(h); i++ {
		c := h[i]
		switch {
		case c >= '0' && c <= '9':
			c -= '0'
		case c >= 'a' && c <= 'f':
			c = c - 'a' + 10
		default:
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		if i < len(d) {
			d[i] = c
		}
	}
	var c RGBA8
	switch len(h) {
	case 3, 4:
		c = RGBA8{R: d[0] * 17, G: d[1] * 17, B: d[2] * 17, A: 255}
		if len(h) == 4 {
			c.A = d[3] * 17
		}
	case 6, 8:
		c = RGBA8{R: d[0]<<4 | d[1], G: d[2]<<4 | d[3], B: d[4]<<4 | d[5], A: 255}
		if len(h) == 8 {
			c.A = d[6]<<4 | d[7]
		}
	default:
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	return From8(c), nil
}

// parseFunc handles rgb(), rgba(), hsl() and hsla() in both the legacy
// comma syntax and the space syntax with an optional "/ alpha".
func parseFunc(low, kind, orig string) (RGBA, error) {
	open := strings.IndexByte(low, '(')
	if open < 0 || !strings.HasSuffix(low, ")") {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	name := strings.TrimSpace(low[:open])
	if name != kind && name != kind+"a" {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}

	body := strings.ReplaceAll(low[open+1:len(low)-1], "/", ",")
	sc := lex.NewScanner(body)
	var vals [4]float64
	var pct [4]bool
	n := 0
	for !sc.Done() {
		if n == len(vals) {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		v, ok := sc.Number()
		if !ok {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		switch sc.Peek() {
		case '%':
			sc.Next()
			pct[n] = true
		case 'd':
			// hue unit "deg"
			if !strings.HasPrefix(sc.Rest(), "deg") {
				return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
			}
			for i := 0; i < 3; i++ {
				sc.Next()
			}
		}
		vals[n] = v
		n++
		sc.SkipSeparator()
	}
	if n != 3 && n != 4 {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}

	alpha := float32(1)
	if n == 4 {
		a := vals[3]
		if pct[3] {
			a /= 100
		}
		alpha = clamp01(a)
	}

	if kind == "rgb" {
		comp := func(i int) float32 {
			if pct[i] {
				return clamp01(vals[i] / 100)
			}
			return clamp01(vals[i] / 255)
		}
		return RGBA{R: comp(0), G: comp(1), B: comp(2), A: alpha}, nil
	}

	h := math.Mod(vals[0], 360)
	if h < 0 {
		h += 360
	}
	r, g, b := hslToRGB(h/360, float64(clamp01(vals[1]/100)), float64(clamp01(vals[2]/100)))
	return RGBA{R: float32(r), G: float32(g), B: float32(b), A: alpha}, nil
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return hueToRGB(p, q, h+1.0/3), hueToRGB(p, q, h), hueToRGB(p, q, h-1.0/3)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func clamp01(v float64) float32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return float32(v)
}
