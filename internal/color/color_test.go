package color

import (
	"errors"
	"math"
	"testing"
)

// TestSRGBToLinearEdgeCases tests edge cases for sRGB to linear conversion.
func TestSRGBToLinearEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.04045, 0.04045 / 12.92},
		{"mid gray", 0.5, float32(math.Pow((0.5+0.055)/1.055, 2.4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SRGBToLinear(tt.input)
			if !floatNear(got, tt.want, 1e-6) {
				t.Errorf("SRGBToLinear(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Maximum error should be less than 1/255 to preserve 8-bit precision.
func TestRoundTripSRGBLinear(t *testing.T) {
	const maxError = 1.0 / 255.0
	for i := 0; i <= 255; i++ {
		c := RGBA{R: float32(i) / 255, A: 1}
		got := c.ToLinear().ToSRGB()
		if !floatNear(got.R, c.R, maxError) {
			t.Errorf("round trip of %v = %v", c.R, got.R)
		}
		if got.A != 1 {
			t.Errorf("round trip changed alpha to %v", got.A)
		}
	}
}

func TestTo8Rounding(t *testing.T) {
	tests := []struct {
		name  string
		input RGBA
		want  RGBA8
	}{
		{"black", RGBA{}, RGBA8{}},
		{"white", White, RGBA8{255, 255, 255, 255}},
		{"mid values", RGBA{R: 0.5, G: 0.25, B: 0.75, A: 1}, RGBA8{128, 64, 191, 255}},
		{"clamp below", RGBA{R: -0.1}, RGBA8{}},
		{"clamp above", RGBA{R: 1.5, A: 2}, RGBA8{R: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.To8(); got != tt.want {
				t.Errorf("%v.To8() = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoundTrip8(t *testing.T) {
	for v := 0; v <= 255; v++ {
		c := RGBA8{R: uint8(v), G: uint8(255 - v), B: 7, A: uint8(v)}
		if got := From8(c).To8(); got != c {
			t.Errorf("From8(%v).To8() = %v", c, got)
		}
	}
}

func TestPremultiply(t *testing.T) {
	c := RGBA{R: 1, G: 0.5, B: 0, A: 0.5}
	p := c.Premultiply()
	if want := (RGBA{R: 0.5, G: 0.25, B: 0, A: 0.5}); p != want {
		t.Errorf("Premultiply() = %v, want %v", p, want)
	}
	if got := p.Unpremultiply(); !colorNear(got, c, 1e-6) {
		t.Errorf("Unpremultiply() = %v, want %v", got, c)
	}
	if got := (RGBA{R: 1, A: 0}).Unpremultiply(); got != Transparent {
		t.Errorf("Unpremultiply of zero alpha = %v, want transparent", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA8
	}{
		{"#f00", RGBA8{255, 0, 0, 255}},
		{"#F00", RGBA8{255, 0, 0, 255}},
		{"#0f08", RGBA8{0, 255, 0, 136}},
		{"#336699", RGBA8{0x33, 0x66, 0x99, 255}},
		{"#33669980", RGBA8{0x33, 0x66, 0x99, 0x80}},
		{"red", RGBA8{255, 0, 0, 255}},
		{"  CornflowerBlue ", RGBA8{100, 149, 237, 255}},
		{"transparent", RGBA8{}},
		{"rgb(255, 128, 0)", RGBA8{255, 128, 0, 255}},
		{"rgb(100%,0%,50%)", RGBA8{255, 0, 128, 255}},
		{"rgba(0,0,255,0.5)", RGBA8{0, 0, 255, 128}},
		{"rgb(0 0 255 / 50%)", RGBA8{0, 0, 255, 128}},
		{"rgb(300,-5,0)", RGBA8{255, 0, 0, 255}},
		{"hsl(120, 100%, 50%)", RGBA8{0, 255, 0, 255}},
		{"hsl(0deg 100% 50%)", RGBA8{255, 0, 0, 255}},
		{"hsla(240,100%,50%,0.25)", RGBA8{0, 0, 255, 64}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if got8 := got.To8(); got8 != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got8, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#ggg", "rgb(1,2)", "rgb(1,2,3", "blurple", "none", "currentColor", "rgb(a,b,c)"} {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); !errors.Is(err, ErrInvalidColor) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidColor", in, err)
			}
		})
	}
}

func floatNear(a, b, epsilon float32) bool {
	return math.Abs(float64(a-b)) < float64(epsilon)
}

func colorNear(a, b RGBA, epsilon float32) bool {
	return floatNear(a.R, b.R, epsilon) &&
		floatNear(a.G, b.G, epsilon) &&
		floatNear(a.B, b.B, epsilon) &&
		floatNear(a.A, b.A, epsilon)
}
