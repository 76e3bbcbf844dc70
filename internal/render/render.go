package render

import (
	"image"
	"image/color"
)

// Drawer is what screens draw with. It hides fonts and pixel formats behind
// a few primitives over the back buffer.
type Drawer interface {
	// Size returns the drawable size in pixels.
	Size() (width int, height int)

	FillBackground()
	FillRect(rect image.Rectangle, c color.Color)

	// Generic text primitives.
	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y int, style TextStyle) TextMetrics

	// Generic image primitives.
	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// Family selects a typeface.
type Family int

const (
	FamilyRegular Family = iota
	FamilyMono
	// FamilyTip is the italic face used for help text.
	FamilyTip
)

// TextStyle describes how to render text.
// Coordinates for DrawText use a top-left anchor for Y.
// For X, Align controls how x is interpreted.
type TextStyle struct {
	Color  color.Color
	Size   int // pixel height; 0 means the painter's default
	Align  TextAlign
	Family Family
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
}

type ScaleMode int

const (
	ScaleModeFit ScaleMode = iota
	ScaleModeFill
	ScaleModeStretch
)
