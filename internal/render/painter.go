package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

type faceKey struct {
	family Family
	size   int
}

// Painter implements Drawer on any draw.Image, normally the back buffer
// canvas. Faces are created on first use per family and size.
type Painter struct {
	Logger logger

	dst     draw.Image
	regular *opentype.Font
	mono    *opentype.Font
	tip     *truetype.Font
	faces   map[faceKey]font.Face
}

// NewPainter parses the embedded Go fonts. A font that fails to parse falls
// back to basicfont.
func NewPainter(dst draw.Image, log logger) *Painter {
	p := &Painter{Logger: log, dst: dst, faces: make(map[faceKey]font.Face)}

	if f, err := opentype.Parse(goregular.TTF); err != nil {
		p.logError("regular font parse failed, using basicfont: %v", err)
	} else {
		p.regular = f
	}
	if f, err := opentype.Parse(gomono.TTF); err != nil {
		p.logError("mono font parse failed, using basicfont: %v", err)
	} else {
		p.mono = f
	}
	// Help text goes through the freetype rasterizer.
	if f, err := truetype.Parse(goitalic.TTF); err != nil {
		p.logError("truetype parse failed, using basicfont: %v", err)
	} else {
		p.tip = f
	}
	return p
}

func (p *Painter) logError(format string, args ...interface{}) {
	if p.Logger != nil {
		p.Logger.Errorf("render", format, args...)
	}
}

// Target points the painter at another image of any size.
func (p *Painter) Target(dst draw.Image) { p.dst = dst }

func (p *Painter) Size() (int, int) {
	b := p.dst.Bounds()
	return b.Dx(), b.Dy()
}

// DefaultTextSize scales with the target height.
func (p *Painter) DefaultTextSize() int {
	_, h := p.Size()
	size := h / 28
	if size < 10 {
		size = 10
	}
	return size
}

type filler interface {
	Fill(rect image.Rectangle, c color.Color)
}

func (p *Painter) FillRect(rect image.Rectangle, c color.Color) {
	if f, ok := p.dst.(filler); ok {
		f.Fill(rect, c)
		return
	}
	draw.Draw(p.dst, rect.Intersect(p.dst.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (p *Painter) FillBackground() {
	p.FillRect(p.dst.Bounds(), Background)
}

func (p *Painter) face(style TextStyle) font.Face {
	size := style.Size
	if size <= 0 {
		size = p.DefaultTextSize()
	}
	key := faceKey{family: style.Family, size: size}
	if f, ok := p.faces[key]; ok {
		return f
	}

	var (
		face font.Face
		err  error
	)
	switch style.Family {
	case FamilyTip:
		if p.tip != nil {
			face = truetype.NewFace(p.tip, &truetype.Options{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
		}
	case FamilyMono:
		if p.mono != nil {
			face, err = opentype.NewFace(p.mono, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
		}
	default:
		if p.regular != nil {
			face, err = opentype.NewFace(p.regular, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
		}
	}
	if err != nil {
		p.logError("font face %d@%d failed, using basicfont: %v", style.Family, size, err)
	}
	if face == nil {
		face = basicfont.Face7x13
	}
	p.faces[key] = face
	return face
}

func (p *Painter) MeasureText(text string, style TextStyle) TextMetrics {
	face := p.face(style)
	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return TextMetrics{
		Width:      width,
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: metrics.Height.Ceil(),
	}
}

func (p *Painter) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	m := p.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	fg := style.Color
	if fg == nil {
		fg = Foreground
	}
	drawer := &font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(fg),
		Face: p.face(style),
		Dot:  fixed.P(x, y+m.Ascent),
	}
	drawer.DrawString(text)
	return m
}

// DrawImageInRect scales img into rect with nearest-neighbour sampling, which
// keeps QR modules and test patterns crisp.
func (p *Painter) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() {
		return
	}
	src := img.Bounds()
	target := rect
	switch mode {
	case ScaleModeFit, ScaleModeFill:
		sw, sh := src.Dx(), src.Dy()
		if sw == 0 || sh == 0 {
			return
		}
		scaleW := float64(rect.Dx()) / float64(sw)
		scaleH := float64(rect.Dy()) / float64(sh)
		scale := scaleW
		if (mode == ScaleModeFit && scaleH < scale) || (mode == ScaleModeFill && scaleH > scale) {
			scale = scaleH
		}
		w := int(float64(sw) * scale)
		h := int(float64(sh) * scale)
		x := rect.Min.X + (rect.Dx()-w)/2
		y := rect.Min.Y + (rect.Dy()-h)/2
		target = image.Rect(x, y, x+w, y+h)
	}
	clip := target.Intersect(p.dst.Bounds()).Intersect(rect)
	if clip.Empty() {
		return
	}
	if clip == target {
		xdraw.NearestNeighbor.Scale(p.dst, target, img, src, xdraw.Over, nil)
		return
	}
	temp := image.NewRGBA(target)
	xdraw.NearestNeighbor.Scale(temp, target, img, src, xdraw.Src, nil)
	draw.Draw(p.dst, clip, temp, clip.Min, draw.Over)
}

// Close releases cached faces.
func (p *Painter) Close() error {
	for key, f := range p.faces {
		if f != basicfont.Face7x13 {
			_ = f.Close()
		}
		delete(p.faces, key)
	}
	return nil
}
