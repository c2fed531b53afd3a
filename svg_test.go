package svg

import (
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRender(t *testing.T, doc string, opts ...Option) *Image {
	t.Helper()
	img, err := Render([]byte(doc), opts...)
	require.NoError(t, err)
	require.NotNil(t, img)
	return img
}

func pixel(img *Image, x, y int) [4]uint8 {
	r, g, b, a := img.At(x, y)
	return [4]uint8{r, g, b, a}
}

func TestRender_SolidFillExact(t *testing.T) {
	img := mustRender(t, `<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`,
		WithSize(10, 10), WithBackground(color.Transparent))

	assert.Empty(t, img.Warnings)
	require.Equal(t, 10, img.Width)
	require.Equal(t, 10, img.Height)
	require.Equal(t, 40, img.Stride)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			require.Equal(t, [4]uint8{255, 0, 0, 255}, pixel(img, x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestRender_DefaultBackgroundIsWhite(t *testing.T) {
	img := mustRender(t, `<svg width="4" height="4"/>`)
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img, 2, 2))
}

func TestRender_NestedOpacity(t *testing.T) {
	img := mustRender(t, `<svg width="10" height="10">
		<g opacity="0.5"><g opacity="0.5"><rect width="10" height="10" fill="red"/></g></g>
	</svg>`)
	assert.Equal(t, [4]uint8{255, 191, 191, 255}, pixel(img, 5, 5))
}

func TestRender_TransformOrder(t *testing.T) {
	a := mustRender(t, `<svg width="40" height="40"><rect width="5" height="5" transform="translate(10 0) scale(2)"/></svg>`)
	b := mustRender(t, `<svg width="40" height="40"><rect width="5" height="5" transform="scale(2) translate(10 0)"/></svg>`)

	// translate then scale: x in [10, 20); scale then translate: x in [20, 30)
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, pixel(a, 15, 5))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(b, 15, 5))
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, pixel(b, 25, 5))
	assert.NotEqual(t, a.Pix, b.Pix)
}

func TestRender_Size(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		opts  []Option
		wantW int
		wantH int
	}{
		{"document size", `<svg width="10" height="5"/>`, nil, 10, 5},
		{"rounds up", `<svg width="10.2" height="4.5"/>`, nil, 11, 5},
		{"viewBox only", `<svg viewBox="0 0 30 20"/>`, nil, 30, 20},
		{"explicit", `<svg width="10" height="5"/>`, []Option{WithSize(7, 3)}, 7, 3},
		{"width keeps aspect", `<svg width="10" height="5"/>`, []Option{WithSize(20, 0)}, 20, 10},
		{"height keeps aspect", `<svg width="10" height="5"/>`, []Option{WithSize(0, 10)}, 20, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := mustRender(t, tt.doc, tt.opts...)
			assert.Equal(t, tt.wantW, img.Width)
			assert.Equal(t, tt.wantH, img.Height)
			assert.Len(t, img.Pix, tt.wantW*tt.wantH*4)
		})
	}
}

func TestRender_InvalidSize(t *testing.T) {
	_, err := Render([]byte(`<svg width="10" height="10"/>`), WithSize(-1, 0))
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Render([]byte(`<svg width="100000" height="10"/>`))
	assert.ErrorIs(t, err, ErrInvalidSize)

	// each side fits, the area does not
	_, err = Render([]byte(`<svg width="10" height="10"/>`), WithSize(MaxDimension, MaxDimension))
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestValidSize(t *testing.T) {
	assert.True(t, ValidSize(1, 1))
	assert.True(t, ValidSize(MaxDimension, MaxPixels/MaxDimension))
	assert.False(t, ValidSize(MaxDimension, MaxPixels/MaxDimension+1))
	assert.False(t, ValidSize(MaxDimension+1, 1))
	assert.False(t, ValidSize(0, 10))
}

func TestRender_FarOffCanvasGeometry(t *testing.T) {
	docs := []string{
		`<svg viewBox="0 0 10 10"><rect y="1e19" width="10" height="1e6"/></svg>`,
		`<svg viewBox="0 0 10 10"><rect y="-1e19" width="10" height="1e6"/></svg>`,
		`<svg viewBox="0 0 10 10"><path d="M0 9.3e18 L10 9.3e18 L10 9.4e18 Z"/></svg>`,
	}
	for _, doc := range docs {
		done := make(chan *Image, 1)
		go func() {
			img, err := Render([]byte(doc), WithBackground(color.Transparent))
			if err != nil {
				img = nil
			}
			done <- img
		}()
		select {
		case img := <-done:
			require.NotNil(t, img, doc)
			assert.Equal(t, [4]uint8{0, 0, 0, 0}, pixel(img, 5, 5), doc)
		case <-time.After(10 * time.Second):
			t.Fatalf("Render did not return: %s", doc)
		}
	}
}

func TestRender_FatalErrors(t *testing.T) {
	img, err := Render([]byte(`<svg width="10" height="10"><rect></svg>`))
	assert.Nil(t, img)
	var syntax *XMLSyntaxError
	assert.True(t, errors.As(err, &syntax), "got %v", err)

	_, err = Render([]byte(`<svg/>`))
	var root *UnsupportedRootError
	assert.True(t, errors.As(err, &root), "got %v", err)

	_, err = Render(nil)
	assert.ErrorIs(t, err, ErrNoRoot)

	_, err = Render([]byte(`<svg width="10" height="10"><g><g><g/></g></g></svg>`), WithMaxDepth(2))
	var limit *RecursionLimitError
	assert.True(t, errors.As(err, &limit), "got %v", err)
}

func TestRender_Warnings(t *testing.T) {
	img := mustRender(t, `<svg width="20" height="20">
		<rect width="5" height="5" transform="rotate("/>
		<path d="M 0 0 L"/>
		<filter id="f"/>
		<rect width="5" height="5" fill="url(#missing)"/>
		<text x="1" y="10">hi</text>
		<rect x="10" y="10" width="10" height="10" fill="blue"/>
	</svg>`)

	var (
		transform *TransformSyntaxError
		pathErr   *PathSyntaxError
		feature   *UnsupportedFeatureWarning
		ref       *PaintReferenceWarning
		txt       *TextWarning
	)
	targets := []any{&transform, &pathErr, &feature, &ref, &txt}
	for _, target := range targets {
		found := false
		for _, w := range img.Warnings {
			if errors.As(w, target) {
				found = true
				break
			}
		}
		assert.True(t, found, "no warning of type %T in %v", target, img.Warnings)
	}

	// the rest of the document still renders
	assert.Equal(t, [4]uint8{0, 0, 255, 255}, pixel(img, 15, 15))
}

func TestRender_Deterministic(t *testing.T) {
	doc := `<svg viewBox="0 0 64 64" width="64" height="64">
		<linearGradient id="g" spreadMethod="reflect" x2="0.3"><stop offset="0" stop-color="#f80"/><stop offset="1" stop-color="teal"/></linearGradient>
		<g opacity="0.8" transform="rotate(20 32 32)">
			<ellipse cx="32" cy="32" rx="28" ry="16" fill="url(#g)" stroke="#222" stroke-width="2.5"/>
			<path d="M8 8 Q 32 60 56 8 T 8 40" fill="none" stroke="crimson" stroke-linecap="round"/>
		</g>
	</svg>`
	a := mustRender(t, doc)
	b := mustRender(t, doc)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestRender_Concurrent(t *testing.T) {
	doc := []byte(`<svg width="32" height="32"><circle cx="16" cy="16" r="12" fill="green" opacity="0.5"/></svg>`)
	want, err := Render(doc)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Image, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = Render(doc)
		}()
	}
	wg.Wait()
	for i, img := range results {
		require.NotNil(t, img, "render %d", i)
		assert.Equal(t, want.Pix, img.Pix, "render %d", i)
	}
}

func TestImage_RGBA(t *testing.T) {
	img := mustRender(t, `<svg width="3" height="2"><rect width="1" height="1" fill="lime"/></svg>`,
		WithBackground(color.NRGBA{0, 0, 255, 128}))

	rgba := img.RGBA()
	assert.Equal(t, 3, rgba.Bounds().Dx())
	assert.Equal(t, 2, rgba.Bounds().Dy())
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, rgba.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{0, 0, 255, 128}, rgba.NRGBAAt(2, 1))

	r, g, b, a := img.At(-1, 0)
	assert.Zero(t, uint32(r)+uint32(g)+uint32(b)+uint32(a))
}

func TestRendererFunc(t *testing.T) {
	var r Renderer = RendererFunc(Render)
	img, err := r.Render([]byte(`<svg width="2" height="2"/>`))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
}

func TestOptions(t *testing.T) {
	o := newOptions(nil)
	assert.Equal(t, defaultOptions(), o)

	o = newOptions([]Option{WithFlatness(-1), WithMaxDepth(0), nil})
	assert.Equal(t, 0.25, o.flatness)
	assert.Equal(t, 256, o.maxDepth)

	o = newOptions([]Option{WithFlatness(0.1), WithMaxDepth(8), WithBackground(nil)})
	assert.Equal(t, 0.1, o.flatness)
	assert.Equal(t, 8, o.maxDepth)
	assert.Zero(t, o.background.A)
}

func TestNewConfig(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, c.Background)
	assert.Equal(t, 0, c.Width)
	assert.NotNil(t, c.Logger)

	c = NewConfig(WithSize(3, 4), WithBackground(color.NRGBA{10, 20, 30, 255}), WithMaxDepth(9))
	assert.Equal(t, 3, c.Width)
	assert.Equal(t, 4, c.Height)
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, c.Background)
	assert.Equal(t, 9, c.MaxDepth)
}
