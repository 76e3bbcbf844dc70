package graphics

import (
	"image"
	"image/color"
)

// Canvas is a draw.Image over a 32bpp frame in RGBX or BGRX order. Alpha is
// not stored; every pixel reads back opaque.
type Canvas struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
	Format PixelFormat
}

func NewCanvas(pix []byte, mode ModeInfo) *Canvas {
	return &Canvas{
		Pix:    pix,
		Stride: mode.Stride(),
		Rect:   image.Rect(0, 0, mode.Width, mode.Height),
		Format: mode.Format,
	}
}

func (c *Canvas) ColorModel() color.Model { return color.RGBAModel }
func (c *Canvas) Bounds() image.Rectangle { return c.Rect }

func (c *Canvas) offset(x, y int) int {
	return (y-c.Rect.Min.Y)*c.Stride + (x-c.Rect.Min.X)*bytesPerPixel
}

func (c *Canvas) At(x, y int) color.Color {
	return c.RGBAAt(x, y)
}

func (c *Canvas) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return color.RGBA{}
	}
	i := c.offset(x, y)
	p := c.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	if c.Format == PixelBGRX {
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: 0xFF}
	}
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: 0xFF}
}

func (c *Canvas) Set(x, y int, col color.Color) {
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return
	}
	c.SetRGBA(x, y, color.RGBAModel.Convert(col).(color.RGBA))
}

func (c *Canvas) SetRGBA(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return
	}
	i := c.offset(x, y)
	c.put(c.Pix[i:i+bytesPerPixel:i+bytesPerPixel], col)
}

func (c *Canvas) put(p []byte, col color.RGBA) {
	if c.Format == PixelBGRX {
		p[0], p[1], p[2] = col.B, col.G, col.R
	} else {
		p[0], p[1], p[2] = col.R, col.G, col.B
	}
	p[3] = 0
}

// Fill paints rect (clipped to the canvas) with a solid color.
func (c *Canvas) Fill(rect image.Rectangle, col color.Color) {
	rect = rect.Intersect(c.Rect)
	if rect.Empty() {
		return
	}
	rgba := color.RGBAModel.Convert(col).(color.RGBA)
	var px [bytesPerPixel]byte
	c.put(px[:], rgba)

	rowBytes := rect.Dx() * bytesPerPixel
	first := c.offset(rect.Min.X, rect.Min.Y)
	row := c.Pix[first : first+rowBytes]
	for i := 0; i < rowBytes; i += bytesPerPixel {
		copy(row[i:], px[:])
	}
	for y := rect.Min.Y + 1; y < rect.Max.Y; y++ {
		o := c.offset(rect.Min.X, y)
		copy(c.Pix[o:o+rowBytes], row)
	}
}

// Clear fills the whole canvas.
func (c *Canvas) Clear(col color.Color) { c.Fill(c.Rect, col) }

// ToRGBA decodes a frame in the given mode into a new RGBA image.
func ToRGBA(frame []byte, mode ModeInfo) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, mode.Width, mode.Height))
	ToRGBAInto(img, frame, mode)
	return img
}

// ToRGBAInto decodes a frame into dst, which must have the mode's geometry.
func ToRGBAInto(dst *image.RGBA, frame []byte, mode ModeInfo) {
	stride := mode.Stride()
	for y := 0; y < mode.Height; y++ {
		src := frame[y*stride:]
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < mode.Width; x++ {
			s := src[x*bytesPerPixel : x*bytesPerPixel+bytesPerPixel]
			d := out[x*4 : x*4+4]
			if mode.Format == PixelBGRX {
				d[0], d[1], d[2] = s[2], s[1], s[0]
			} else {
				d[0], d[1], d[2] = s[0], s[1], s[2]
			}
			d[3] = 0xFF
		}
	}
}
