package text

import "errors"

var (
	// ErrInvalidFontSize is returned for a font size that is not positive.
	ErrInvalidFontSize = errors.New("text: invalid font size")

	// ErrEmptyFontData is returned by AddFont for empty font data.
	ErrEmptyFontData = errors.New("text: empty font data")
)
