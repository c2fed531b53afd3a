package svg_test

import (
	"fmt"
	"image/color"

	"github.com/gogpu/svg"
)

func ExampleRender() {
	doc := []byte(`<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`)

	img, err := svg.Render(doc, svg.WithSize(10, 10), svg.WithBackground(color.Transparent))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(img.Width, img.Height, len(img.Warnings))
	fmt.Println(img.At(5, 5))
	// Output:
	// 10 10 0
	// 255 0 0 255
}

func ExampleRender_warnings() {
	doc := []byte(`<svg width="10" height="10"><rect width="10" height="10" filter="url(#blur)"/></svg>`)

	img, err := svg.Render(doc)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, w := range img.Warnings {
		fmt.Println(w)
	}
}
