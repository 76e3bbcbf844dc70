package screens

import (
	"fmt"
	"image"

	"github.com/HyperNiki/umt/internal/app"
	"github.com/HyperNiki/umt/internal/render"
	"github.com/HyperNiki/umt/internal/render/layout"
)

// DisplayInfo prints the negotiated mode next to a QR code of the same
// facts. Left/Right switch between that view and a full-screen code.
type DisplayInfo struct {
	kit      *Kit
	fullCode bool
	frame    frame

	payload string
	code    image.Image
}

func NewDisplayInfo(kit *Kit) *DisplayInfo { return &DisplayInfo{kit: kit} }

func (s *DisplayInfo) Init(c *app.Context) { s.fullCode = false }

// Payload is the text encoded in the QR code.
func (s *DisplayInfo) Payload(c *app.Context) string {
	m := c.Graphics.Mode
	return fmt.Sprintf("umt mode=%d %dx%d stride=%d format=%s buffer=%d lang=%s",
		m.Index, m.Width, m.Height, m.PixelsPerScanLine, m.Format, c.Graphics.BufferSize(), languageOf(c))
}

func (s *DisplayInfo) qr(c *app.Context) image.Image {
	payload := s.Payload(c)
	if payload == s.payload && s.code != nil {
		return s.code
	}
	code, err := render.QRCode(payload, 0)
	if err != nil {
		s.kit.logError("qr code for %q: %v", payload, err)
		return nil
	}
	s.payload = payload
	s.code = code
	return code
}

func (s *DisplayInfo) Doit(c *app.Context) {
	if key, ok := s.kit.poll(c); ok {
		backToMenu(c, key)
	}
	if c.Actions() != app.ActionBundle(s) {
		return
	}
	type infoFrame struct {
		full, tip bool
	}
	if !s.frame.stale(c, infoFrame{s.fullCode, c.ShowTip}) {
		return
	}

	d := s.kit.drawer(c)
	w, h := d.Size()
	d.FillBackground()
	area := layout.Inset(image.Rect(0, 0, w, h), h/20)
	code := s.qr(c)

	if s.fullCode {
		d.DrawImageInRect(code, layout.CenterIn(area, area.Dy(), area.Dy()), render.ScaleModeFit)
	} else {
		text, right := layout.SplitVertical(area, area.Dx()*3/5)
		s.drawFacts(c, d, text)
		d.DrawImageInRect(code, layout.FitSquare(layout.Inset(right, h/40)), render.ScaleModeFit)
	}

	if c.ShowTip {
		s.Tip(c)
	}
}

func (s *DisplayInfo) drawFacts(c *app.Context, d *render.Painter, rect image.Rectangle) {
	m := c.Graphics.Mode
	title := d.DrawText(str(c, "screen.info"), rect.Min.X, rect.Min.Y, render.TextStyle{Size: d.DefaultTextSize() * 3 / 2})

	facts := [][2]string{
		{str(c, "info.resolution"), fmt.Sprintf("%d x %d", m.Width, m.Height)},
		{str(c, "info.stride"), fmt.Sprintf("%d", m.PixelsPerScanLine)},
		{str(c, "info.format"), m.Format.String()},
		{str(c, "info.buffer"), fmt.Sprintf("%d %s", c.Graphics.BufferSize(), str(c, "info.bytes"))},
		{str(c, "info.language"), languageOf(c)},
	}
	label := render.TextStyle{Color: render.Dim}
	value := render.TextStyle{Family: render.FamilyMono}
	lineHeight := d.MeasureText("Ag", label).LineHeight * 3 / 2
	labels, values := layout.SplitVertical(rect, rect.Dx()/2)
	y := rect.Min.Y + title.LineHeight*2
	for _, f := range facts {
		d.DrawText(f[0], labels.Min.X, y, label)
		d.DrawText(f[1], values.Min.X, y, value)
		y += lineHeight
	}
}

func (s *DisplayInfo) Tip(c *app.Context) {
	s.kit.drawTip(c, str(c, "tip.info"), str(c, "tip.pattern"))
}

func (s *DisplayInfo) KeyRight(c *app.Context) { s.fullCode = !s.fullCode }
func (s *DisplayInfo) KeyLeft(c *app.Context)  { s.fullCode = !s.fullCode }
