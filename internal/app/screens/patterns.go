package screens

import (
	"fmt"
	"image"
	"image/color"

	"github.com/HyperNiki/umt/internal/app"
	"github.com/HyperNiki/umt/internal/render"
	"github.com/HyperNiki/umt/internal/resource"
)

// Pattern is a full-screen test image with variants cycled by Left/Right.
type Pattern struct {
	kit     *Kit
	name    resource.StringID
	tip     resource.StringID
	count   int
	variant int
	frame   frame

	paint func(d *render.Painter, variant int)
	label func(c *app.Context, variant int) string
}

func (p *Pattern) Init(c *app.Context) { p.variant = 0 }

func (p *Pattern) Doit(c *app.Context) {
	if key, ok := p.kit.poll(c); ok {
		backToMenu(c, key)
	}
	if c.Actions() != app.ActionBundle(p) {
		// Left for the menu; it draws from the next tick.
		return
	}
	type patternFrame struct {
		variant int
		tip     bool
	}
	if !p.frame.stale(c, patternFrame{p.variant, c.ShowTip}) {
		return
	}
	p.paint(p.kit.drawer(c), p.variant)
	if c.ShowTip {
		p.Tip(c)
	}
}

func (p *Pattern) Tip(c *app.Context) {
	caption := str(c, p.name)
	if p.label != nil {
		caption = fmt.Sprintf("%s: %s (%d/%d)", caption, p.label(c, p.variant), p.variant+1, p.count)
	}
	p.kit.drawTip(c, caption, str(c, p.tip), str(c, "tip.pattern"))
}

func (p *Pattern) KeyRight(c *app.Context) { p.variant = (p.variant + 1) % p.count }
func (p *Pattern) KeyLeft(c *app.Context)  { p.variant = (p.variant + p.count - 1) % p.count }

// Variant reports the pattern currently shown.
func (p *Pattern) Variant() int { return p.variant }

type namedColor struct {
	name  resource.StringID
	color color.RGBA
}

var solidColors = []namedColor{
	{"color.red", color.RGBA{R: 0xFF, A: 0xFF}},
	{"color.green", color.RGBA{G: 0xFF, A: 0xFF}},
	{"color.blue", color.RGBA{B: 0xFF, A: 0xFF}},
	{"color.white", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
	{"color.black", color.RGBA{A: 0xFF}},
	{"color.gray", color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}},
}

func NewSolidColors(kit *Kit) *Pattern {
	return &Pattern{
		kit:   kit,
		name:  "screen.solid",
		tip:   "tip.solid",
		count: len(solidColors),
		paint: func(d *render.Painter, variant int) {
			w, h := d.Size()
			d.FillRect(image.Rect(0, 0, w, h), solidColors[variant].color)
		},
		label: func(c *app.Context, variant int) string { return str(c, solidColors[variant].name) },
	}
}

var grayscaleSteps = []int{8, 16, 32, 64}

func NewGrayscale(kit *Kit) *Pattern {
	return &Pattern{
		kit:   kit,
		name:  "screen.grayscale",
		tip:   "tip.grayscale",
		count: len(grayscaleSteps),
		paint: func(d *render.Painter, variant int) {
			w, h := d.Size()
			paintSteps(d, image.Rect(0, 0, w, h), grayscaleSteps[variant])
		},
		label: func(c *app.Context, variant int) string { return fmt.Sprintf("%d", grayscaleSteps[variant]) },
	}
}

// paintSteps fills rect with n vertical bars from black to white.
func paintSteps(d *render.Painter, rect image.Rectangle, n int) {
	for i := 0; i < n; i++ {
		x0 := rect.Min.X + rect.Dx()*i/n
		x1 := rect.Min.X + rect.Dx()*(i+1)/n
		v := uint8(255 * i / (n - 1))
		d.FillRect(image.Rect(x0, rect.Min.Y, x1, rect.Max.Y), color.RGBA{R: v, G: v, B: v, A: 0xFF})
	}
}

var gradientChannels = []namedColor{
	{"color.red", color.RGBA{R: 0xFF, A: 0xFF}},
	{"color.green", color.RGBA{G: 0xFF, A: 0xFF}},
	{"color.blue", color.RGBA{B: 0xFF, A: 0xFF}},
	{"color.white", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
}

func NewGradients(kit *Kit) *Pattern {
	return &Pattern{
		kit:   kit,
		name:  "screen.gradients",
		tip:   "tip.gradients",
		count: len(gradientChannels),
		paint: func(d *render.Painter, variant int) {
			w, h := d.Size()
			paintGradient(d, image.Rect(0, 0, w, h), gradientChannels[variant].color)
		},
		label: func(c *app.Context, variant int) string { return str(c, gradientChannels[variant].name) },
	}
}

// paintGradient ramps each channel set in full from 0 at the left edge to
// its full value at the right edge.
func paintGradient(d *render.Painter, rect image.Rectangle, full color.RGBA) {
	w := rect.Dx()
	for x := 0; x < w; x++ {
		scale := func(v uint8) uint8 {
			if w == 1 {
				return v
			}
			return uint8(int(v) * x / (w - 1))
		}
		c := color.RGBA{R: scale(full.R), G: scale(full.G), B: scale(full.B), A: 0xFF}
		d.FillRect(image.Rect(rect.Min.X+x, rect.Min.Y, rect.Min.X+x+1, rect.Max.Y), c)
	}
}

var chessboardCells = []int{1, 2, 4, 8, 16, 32, 64}

func NewChessboard(kit *Kit) *Pattern {
	return &Pattern{
		kit:   kit,
		name:  "screen.chessboard",
		tip:   "tip.chessboard",
		count: len(chessboardCells),
		paint: func(d *render.Painter, variant int) {
			w, h := d.Size()
			paintChessboard(d, image.Rect(0, 0, w, h), chessboardCells[variant])
		},
		label: func(c *app.Context, variant int) string { return fmt.Sprintf("%d px", chessboardCells[variant]) },
	}
}

// paintChessboard alternates white and black cells of size px, white in the
// top-left corner.
func paintChessboard(d *render.Painter, rect image.Rectangle, size int) {
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	d.FillRect(rect, color.RGBA{A: 0xFF})
	for y := rect.Min.Y; y < rect.Max.Y; y += size {
		row := (y - rect.Min.Y) / size
		for x := rect.Min.X + (row%2)*size; x < rect.Max.X; x += 2 * size {
			d.FillRect(image.Rect(x, y, x+size, y+size), white)
		}
	}
}
