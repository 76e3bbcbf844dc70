//go:build linux

// Package fbdev drives a Linux framebuffer device as the display.
package fbdev

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sync"

	fb "github.com/gonutz/framebuffer"

	"github.com/HyperNiki/umt/internal/graphics"
)

const DefaultDevice = "/dev/fb0"

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Provider is a graphics.Provider backed by /dev/fbN. The device is opened
// lazily by SetMode(0), so a fresh Provider reports graphics.ErrNotStarted.
type Provider struct {
	Path   string
	Logger logger

	mu   sync.Mutex
	dev  *fb.Device
	mode graphics.ModeInfo
}

// Locate returns a provider for path if the device node exists.
func Locate(path string) (*Provider, error) {
	if path == "" {
		path = DefaultDevice
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", graphics.ErrDisplayNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", graphics.ErrDisplayNotFound, err)
	}
	return &Provider{Path: path}, nil
}

func (p *Provider) QueryMode() (graphics.ModeInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev == nil {
		return graphics.ModeInfo{}, graphics.ErrNotStarted
	}
	return p.mode, nil
}

// SetMode opens the device. The kernel exposes a single mode, index 0.
func (p *Provider) SetMode(index int) error {
	if index != 0 {
		return fmt.Errorf("fbdev: no mode %d", index)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev != nil {
		return nil
	}

	dev, err := fb.Open(p.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", p.Path, err)
	}
	bounds := dev.Bounds()
	p.dev = dev
	p.mode = graphics.ModeInfo{
		Width:             bounds.Dx(),
		Height:            bounds.Dy(),
		PixelsPerScanLine: bounds.Dx(),
		Format:            graphics.PixelBGRX,
	}
	if p.Logger != nil {
		p.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	return nil
}

func (p *Provider) FrontBuffer() graphics.FrontBuffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev == nil {
		return nil
	}
	return &frontBuffer{dev: p.dev, mode: p.mode}
}

// Close releases the device. It is the provider's job, never the surface's.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev != nil {
		p.dev.Close()
		p.dev = nil
	}
	return nil
}

// frontBuffer forwards whole frames to the device, converting each pixel to
// the device's native layout through Set.
type frontBuffer struct {
	dev  *fb.Device
	mode graphics.ModeInfo
}

func (f *frontBuffer) Len() int { return f.mode.BufferSize() }

func (f *frontBuffer) CopyFrom(frame []byte) error {
	if len(frame) != f.Len() {
		return fmt.Errorf("fbdev: frame is %d bytes, want %d", len(frame), f.Len())
	}
	bounds := f.dev.Bounds()
	stride := f.mode.Stride()
	for y := 0; y < f.mode.Height; y++ {
		row := frame[y*stride:]
		for x := 0; x < f.mode.Width; x++ {
			px := row[x*4 : x*4+4]
			f.dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: px[2], G: px[1], B: px[0], A: 0xFF})
		}
	}
	return nil
}
