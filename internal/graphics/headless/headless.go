// Package headless provides an in-memory display for tests, CI runs and the
// simulator. Its front buffer can be observed from other goroutines.
package headless

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"

	"github.com/HyperNiki/umt/internal/graphics"
)

type Config struct {
	Width  int
	Height int
	Format graphics.PixelFormat

	// Stopped makes the display report graphics.ErrNotStarted until SetMode.
	Stopped bool
}

// Snapshot is a consistent view of the display state.
type Snapshot struct {
	Mode    graphics.ModeInfo
	Started bool
	Swaps   uint64
}

type Provider struct {
	mu      sync.RWMutex
	mode    graphics.ModeInfo
	started bool
	buf     []byte
	swaps   uint64
}

func New(cfg Config) *Provider {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	mode := graphics.ModeInfo{
		Width:             cfg.Width,
		Height:            cfg.Height,
		PixelsPerScanLine: cfg.Width,
		Format:            cfg.Format,
	}
	return &Provider{
		mode:    mode,
		started: !cfg.Stopped,
		buf:     make([]byte, mode.BufferSize()),
	}
}

func (p *Provider) QueryMode() (graphics.ModeInfo, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.started {
		return graphics.ModeInfo{}, graphics.ErrNotStarted
	}
	return p.mode, nil
}

// SetMode starts the display. Only mode 0 exists.
func (p *Provider) SetMode(index int) error {
	if index != 0 {
		return fmt.Errorf("headless: no mode %d", index)
	}
	p.mu.Lock()
	p.started = true
	p.mu.Unlock()
	return nil
}

func (p *Provider) FrontBuffer() graphics.FrontBuffer { return (*front)(p) }

func (p *Provider) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{Mode: p.mode, Started: p.started, Swaps: p.swaps}
}

// Frame returns a copy of the front buffer.
func (p *Provider) Frame() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]byte, len(p.buf))
	copy(out, p.buf)
	return out
}

func (p *Provider) Image() *image.RGBA {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return graphics.ToRGBA(p.buf, p.mode)
}

func (p *Provider) WritePNG(w io.Writer) error {
	return png.Encode(w, p.Image())
}

type front Provider

func (f *front) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.buf)
}

func (f *front) CopyFrom(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(frame) != len(f.buf) {
		return fmt.Errorf("headless: frame is %d bytes, want %d", len(frame), len(f.buf))
	}
	copy(f.buf, frame)
	f.swaps++
	return nil
}
