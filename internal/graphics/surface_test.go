package graphics

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

type memFront struct {
	buf    []byte
	size   int
	writes int
	err    error
}

func (f *memFront) Len() int {
	if f.size > 0 {
		return f.size
	}
	return len(f.buf)
}

func (f *memFront) CopyFrom(frame []byte) error {
	if f.err != nil {
		return f.err
	}
	copy(f.buf, frame)
	f.writes++
	return nil
}

type fakeProvider struct {
	mode       ModeInfo
	started    bool
	queryErr   error
	setModeErr error
	setCalls   []int
	front      *memFront
}

func newFakeProvider(w, h int, format PixelFormat) *fakeProvider {
	mode := ModeInfo{Width: w, Height: h, PixelsPerScanLine: w, Format: format}
	return &fakeProvider{mode: mode, started: true, front: &memFront{buf: make([]byte, mode.BufferSize())}}
}

func (p *fakeProvider) QueryMode() (ModeInfo, error) {
	if p.queryErr != nil {
		return ModeInfo{}, p.queryErr
	}
	if !p.started {
		return ModeInfo{}, ErrNotStarted
	}
	return p.mode, nil
}

func (p *fakeProvider) SetMode(index int) error {
	p.setCalls = append(p.setCalls, index)
	if p.setModeErr != nil {
		return p.setModeErr
	}
	p.started = true
	return nil
}

func (p *fakeProvider) FrontBuffer() FrontBuffer { return p.front }

func TestPrepareSizesBothBuffers(t *testing.T) {
	p := newFakeProvider(64, 48, PixelBGRX)
	s, err := Prepare(p)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	want := 64 * 48 * 4
	if s.BufferSize() != want {
		t.Fatalf("buffer size = %d, want %d", s.BufferSize(), want)
	}
	if len(s.BackBuffer()) != want || s.Front().Len() != want {
		t.Fatalf("len(back)=%d len(front)=%d, want %d", len(s.BackBuffer()), s.Front().Len(), want)
	}
	if len(p.setCalls) != 0 {
		t.Fatalf("SetMode called on a started display: %v", p.setCalls)
	}
}

func TestPrepareStartsDisplayWithModeZero(t *testing.T) {
	p := newFakeProvider(32, 32, PixelRGBX)
	p.started = false

	s, err := Prepare(p)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if len(p.setCalls) != 1 || p.setCalls[0] != 0 {
		t.Fatalf("SetMode calls = %v, want [0]", p.setCalls)
	}
	if s.Mode.Width != 32 {
		t.Fatalf("mode width = %d", s.Mode.Width)
	}
}

func TestPrepareErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *fakeProvider)
		want  error
	}{
		{"set mode fails", func(p *fakeProvider) { p.started = false; p.setModeErr = errors.New("device busy") }, ErrDisplayMode},
		{"query fails", func(p *fakeProvider) { p.queryErr = errors.New("io") }, ErrDisplayMode},
		{"blt only", func(p *fakeProvider) { p.mode.Format = PixelBltOnly }, ErrDisplayMode},
		{"empty geometry", func(p *fakeProvider) { p.mode.Height = 0 }, ErrDisplayMode},
		{"front size mismatch", func(p *fakeProvider) { p.front.buf = p.front.buf[:10] }, ErrDisplayMode},
		{"too large", func(p *fakeProvider) {
			p.mode = ModeInfo{Width: 100000, Height: 100000, PixelsPerScanLine: 100000, Format: PixelBGRX}
			p.front = &memFront{size: p.mode.BufferSize()}
		}, ErrAllocation},
		{"size wraps around", func(p *fakeProvider) {
			// The byte count overflows int and comes out negative.
			p.mode = ModeInfo{Width: 16, Height: math.MaxInt / 2, PixelsPerScanLine: 16, Format: PixelBGRX}
			p.front = &memFront{size: 0}
		}, ErrAllocation},
		{"huge scan line", func(p *fakeProvider) {
			p.mode = ModeInfo{Width: 16, Height: 16, PixelsPerScanLine: math.MaxInt, Format: PixelBGRX}
		}, ErrAllocation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakeProvider(16, 16, PixelBGRX)
			tt.setup(p)
			if _, err := Prepare(p); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPrepareNilProvider(t *testing.T) {
	if _, err := Prepare(nil); !errors.Is(err, ErrDisplayNotFound) {
		t.Fatalf("err = %v, want ErrDisplayNotFound", err)
	}
}

func TestAllocateRejectsOversizedBuffer(t *testing.T) {
	if _, err := allocate(MaxBufferSize + 1); !errors.Is(err, ErrAllocation) {
		t.Fatalf("err = %v, want ErrAllocation", err)
	}
	if _, err := allocate(0); !errors.Is(err, ErrAllocation) {
		t.Fatalf("err = %v, want ErrAllocation", err)
	}
}

func TestSwapCopiesWholeBackBuffer(t *testing.T) {
	p := newFakeProvider(8, 4, PixelBGRX)
	s, err := Prepare(p)
	if err != nil {
		t.Fatal(err)
	}
	for i := range s.BackBuffer() {
		s.BackBuffer()[i] = byte(i)
	}
	if err := s.Swap(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p.front.buf, s.BackBuffer()) {
		t.Fatal("front buffer differs from back buffer after swap")
	}
}

func TestForgetKeepsFrontBuffer(t *testing.T) {
	p := newFakeProvider(4, 4, PixelRGBX)
	s, err := Prepare(p)
	if err != nil {
		t.Fatal(err)
	}
	s.Canvas().Clear(color.RGBA{R: 9, A: 0xFF})
	if err := s.Swap(); err != nil {
		t.Fatal(err)
	}
	s.Forget()
	s.Forget()

	if s.BackBuffer() != nil || s.Canvas() != nil {
		t.Fatal("back buffer survived Forget")
	}
	if p.front.Len() != 64 || p.front.buf[0] != 9 {
		t.Fatal("front buffer touched by Forget")
	}
	if err := s.Swap(); !errors.Is(err, ErrReleased) {
		t.Fatalf("swap after forget: %v", err)
	}
}

func TestCanvasPixelOrder(t *testing.T) {
	tests := []struct {
		format PixelFormat
		want   []byte
	}{
		{PixelRGBX, []byte{0x10, 0x20, 0x30, 0}},
		{PixelBGRX, []byte{0x30, 0x20, 0x10, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			mode := ModeInfo{Width: 3, Height: 2, PixelsPerScanLine: 4, Format: tt.format}
			pix := make([]byte, mode.BufferSize())
			c := NewCanvas(pix, mode)
			c.Set(1, 1, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF})

			off := 1*mode.Stride() + 1*4
			if !bytes.Equal(pix[off:off+4], tt.want) {
				t.Fatalf("pixel bytes = %v, want %v", pix[off:off+4], tt.want)
			}
			if got := c.RGBAAt(1, 1); got != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}) {
				t.Fatalf("RGBAAt = %v", got)
			}
			c.Set(3, 0, color.White)
			if pix[3*4] != 0 {
				t.Fatal("write into scan line padding")
			}
		})
	}
}

func TestCanvasFillClips(t *testing.T) {
	mode := ModeInfo{Width: 4, Height: 4, PixelsPerScanLine: 4, Format: PixelBGRX}
	c := NewCanvas(make([]byte, mode.BufferSize()), mode)
	c.Fill(image.Rect(2, 2, 10, 10), color.RGBA{G: 0xAA, A: 0xFF})

	if got := c.RGBAAt(3, 3); got.G != 0xAA {
		t.Fatalf("inside fill: %v", got)
	}
	if got := c.RGBAAt(1, 1); got.G != 0 {
		t.Fatalf("outside fill: %v", got)
	}

	img := ToRGBA(c.Pix, mode)
	if img.RGBAAt(2, 2).G != 0xAA || img.RGBAAt(0, 0).A != 0xFF {
		t.Fatalf("ToRGBA mismatch: %v %v", img.RGBAAt(2, 2), img.RGBAAt(0, 0))
	}
}
