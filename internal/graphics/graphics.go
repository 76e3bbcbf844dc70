package graphics

import (
	"errors"
	"fmt"
)

var (
	// ErrNotStarted is reported by a provider whose display has no active mode yet.
	ErrNotStarted = errors.New("display not started")

	ErrDisplayNotFound = errors.New("display not found")
	ErrDisplayMode     = errors.New("display mode unavailable")
	ErrAllocation      = errors.New("back buffer allocation failed")
	ErrReleased        = errors.New("surface already released")
)

// PixelFormat is the byte layout of one pixel in a mode's frame buffer.
type PixelFormat uint8

const (
	// PixelRGBX is 32bpp: red, green, blue, reserved.
	PixelRGBX PixelFormat = iota
	// PixelBGRX is 32bpp: blue, green, red, reserved.
	PixelBGRX
	// PixelBitMask is a mask-described layout. Not supported by Surface.
	PixelBitMask
	// PixelBltOnly has no addressable frame buffer. Not supported by Surface.
	PixelBltOnly
)

const bytesPerPixel = 4

func (f PixelFormat) String() string {
	switch f {
	case PixelRGBX:
		return "RGBX8888"
	case PixelBGRX:
		return "BGRX8888"
	case PixelBitMask:
		return "bitmask"
	case PixelBltOnly:
		return "blt-only"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// ModeInfo describes one display mode as reported by a Provider.
type ModeInfo struct {
	Index             int
	Width             int
	Height            int
	PixelsPerScanLine int
	Format            PixelFormat
}

// BufferSize is the byte length of a frame in this mode.
func (m ModeInfo) BufferSize() int {
	return m.PixelsPerScanLine * m.Height * bytesPerPixel
}

// Stride is the byte length of one scan line.
func (m ModeInfo) Stride() int {
	return m.PixelsPerScanLine * bytesPerPixel
}

func (m ModeInfo) String() string {
	return fmt.Sprintf("mode %d: %dx%d %s stride=%d", m.Index, m.Width, m.Height, m.Format, m.PixelsPerScanLine)
}

func (m ModeInfo) validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: empty geometry %dx%d", ErrDisplayMode, m.Width, m.Height)
	}
	if m.PixelsPerScanLine < m.Width {
		return fmt.Errorf("%w: scan line %d shorter than width %d", ErrDisplayMode, m.PixelsPerScanLine, m.Width)
	}
	if m.Format != PixelRGBX && m.Format != PixelBGRX {
		return fmt.Errorf("%w: unsupported pixel format %s", ErrDisplayMode, m.Format)
	}
	// Bound each factor first so BufferSize cannot wrap around.
	const maxPixels = MaxBufferSize / bytesPerPixel
	if m.PixelsPerScanLine > maxPixels || m.Height > maxPixels || m.PixelsPerScanLine*m.Height > maxPixels {
		return fmt.Errorf("%w: mode %dx%d stride=%d exceeds %d bytes", ErrAllocation, m.Width, m.Height, m.PixelsPerScanLine, MaxBufferSize)
	}
	return nil
}

// FrontBuffer is the displayed frame memory. It is owned by its Provider;
// holders only ever write whole frames into it.
type FrontBuffer interface {
	Len() int
	CopyFrom(frame []byte) error
}

// Provider negotiates a display mode and exposes that mode's front buffer.
type Provider interface {
	// QueryMode returns the active mode, or the default one when none is
	// active. It returns ErrNotStarted when the display must be started with
	// SetMode first.
	QueryMode() (ModeInfo, error)
	SetMode(index int) error
	FrontBuffer() FrontBuffer
}
