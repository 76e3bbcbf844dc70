package render

import "image/color"

// Menu palette.
var (
	Foreground = color.RGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF}
	Background = color.RGBA{R: 0x10, G: 0x18, B: 0x30, A: 0xFF}
	Highlight  = color.RGBA{R: 0x2A, G: 0x5C, B: 0xB0, A: 0xFF}
	Dim        = color.RGBA{R: 0x8A, G: 0x94, B: 0xA8, A: 0xFF}
	TipPanel   = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	TipText    = color.RGBA{R: 0xFF, G: 0xDC, B: 0x00, A: 0xFF}
)
