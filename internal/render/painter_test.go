package render

import (
	"image"
	"image/color"
	"testing"
)

type spyFill struct {
	*image.RGBA
	fills int
}

func (s *spyFill) Fill(rect image.Rectangle, c color.Color) { s.fills++ }

func TestFillRectPrefersFastPath(t *testing.T) {
	dst := &spyFill{RGBA: image.NewRGBA(image.Rect(0, 0, 8, 8))}
	p := NewPainter(dst, nil)
	p.FillBackground()
	if dst.fills != 1 {
		t.Fatalf("fast fills = %d; want 1", dst.fills)
	}
}

func TestFillRectClipsOnPlainImage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	p := NewPainter(dst, nil)
	red := color.RGBA{R: 0xFF, A: 0xFF}
	p.FillRect(image.Rect(2, 2, 10, 10), red)
	if dst.RGBAAt(3, 3) != red || dst.RGBAAt(1, 1) == red {
		t.Fatal("fill not clipped to the requested rect")
	}
}

func TestDrawTextMarksPixels(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 200, 60))
	p := NewPainter(dst, nil)
	defer p.Close()

	for _, family := range []Family{FamilyRegular, FamilyMono, FamilyTip} {
		p.FillRect(dst.Bounds(), color.Black)
		style := TextStyle{Color: color.White, Size: 24, Family: family}
		m := p.DrawText("Monitor", 4, 4, style)
		if m.Width <= 0 || m.Height <= 0 {
			t.Fatalf("family %d: empty metrics %+v", family, m)
		}
		lit := 0
		for y := 0; y < 60; y++ {
			for x := 0; x < 200; x++ {
				if dst.RGBAAt(x, y).R > 0x80 {
					lit++
				}
			}
		}
		if lit == 0 {
			t.Fatalf("family %d: no pixels drawn", family)
		}
	}
}

func TestCenteredTextIsNarrowerThanCanvas(t *testing.T) {
	p := NewPainter(image.NewRGBA(image.Rect(0, 0, 640, 480)), nil)
	if size := p.DefaultTextSize(); size != 480/28 {
		t.Fatalf("DefaultTextSize = %d", size)
	}
	m := p.MeasureText("Monitor Test", TextStyle{})
	if m.Width <= 0 || m.Width >= 640 {
		t.Fatalf("width = %d", m.Width)
	}
}

func TestDrawImageInRectFitKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, color.White)
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, 40, 20))
	p := NewPainter(dst, nil)
	p.DrawImageInRect(src, dst.Bounds(), ScaleModeFit)

	// A 20x20 square centered horizontally: x in [10,30).
	if dst.RGBAAt(9, 10).A != 0 || dst.RGBAAt(10, 10).R != 0xFF || dst.RGBAAt(29, 19).R != 0xFF || dst.RGBAAt(30, 10).A != 0 {
		t.Fatal("fit did not center a square image")
	}
}

func TestQRCode(t *testing.T) {
	img, err := QRCode("", 64)
	if err != nil || img != nil {
		t.Fatalf("empty payload = %v, %v", img, err)
	}
	img, err = QRCode("umt mode=0 640x480", 128)
	if err != nil {
		t.Fatalf("QRCode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("size = %v", b)
	}
}
