package oksvg

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/svg"
	"github.com/gogpu/svg/backend"
)

func TestRegistered(t *testing.T) {
	assert.True(t, backend.IsRegistered(backend.OkSVG))
	r, err := backend.Get(backend.OkSVG)
	require.NoError(t, err)
	assert.IsType(t, Renderer{}, r)
}

func TestRender(t *testing.T) {
	doc := []byte(`<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`)
	img, err := Renderer{}.Render(doc, svg.WithBackground(color.Transparent))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Width)
	assert.Equal(t, 10, img.Height)
	assert.Len(t, img.Pix, 400)

	r, g, b, a := img.At(5, 5)
	assert.Equal(t, []uint8{255, 0, 0, 255}, []uint8{r, g, b, a})
}

func TestRenderBackground(t *testing.T) {
	doc := []byte(`<svg width="20" height="10"><rect width="5" height="5" fill="blue"/></svg>`)
	img, err := Renderer{}.Render(doc, svg.WithSize(40, 0))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 20, img.Height)

	r, g, b, a := img.At(30, 15)
	assert.Equal(t, []uint8{255, 255, 255, 255}, []uint8{r, g, b, a})
}

func TestRenderErrors(t *testing.T) {
	_, err := Renderer{}.Render([]byte(`<svg viewBox="0 0 10 10">`), svg.WithSize(-1, 0))
	assert.ErrorIs(t, err, svg.ErrInvalidSize)

	_, err = Renderer{}.Render([]byte(`<svg/>`))
	assert.ErrorIs(t, err, svg.ErrRender)
}

func TestSize(t *testing.T) {
	tests := []struct {
		vbW, vbH     float64
		w, h         int
		wantW, wantH int
	}{
		{10, 5, 0, 0, 10, 5},
		{10.5, 5, 0, 0, 11, 5},
		{10, 5, 20, 0, 20, 10},
		{10, 5, 0, 20, 40, 20},
		{0, 0, 8, 8, 8, 8},
	}
	for _, tt := range tests {
		w, h, err := size(tt.vbW, tt.vbH, tt.w, tt.h)
		require.NoError(t, err)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}

	_, _, err := size(0, 0, 8, 0)
	assert.ErrorIs(t, err, svg.ErrRender)
	_, _, err = size(1e6, 1, 0, 0)
	assert.ErrorIs(t, err, svg.ErrInvalidSize)
}
