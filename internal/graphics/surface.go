package graphics

import (
	"errors"
	"fmt"
)

// MaxBufferSize caps the back buffer allocation (16K x 8K at 32bpp).
const MaxBufferSize = 16384 * 8192 * bytesPerPixel

// Surface pairs a provider's front buffer with an application-owned back
// buffer of the same size. Screens draw into the back buffer; Swap copies it
// to the front buffer in one piece.
type Surface struct {
	Mode ModeInfo

	front  FrontBuffer
	back   []byte
	size   int
	canvas *Canvas
}

// Prepare acquires the provider's current mode and allocates a matching back
// buffer. A provider that reports ErrNotStarted is started with mode 0 and
// queried once more.
func Prepare(provider Provider) (*Surface, error) {
	if provider == nil {
		return nil, ErrDisplayNotFound
	}

	mode, err := provider.QueryMode()
	if errors.Is(err, ErrNotStarted) {
		if err = provider.SetMode(0); err == nil {
			mode, err = provider.QueryMode()
		}
	}
	if err != nil {
		if errors.Is(err, ErrDisplayMode) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrDisplayMode, err)
	}
	if err := mode.validate(); err != nil {
		return nil, err
	}

	front := provider.FrontBuffer()
	if front == nil {
		return nil, fmt.Errorf("%w: provider has no front buffer", ErrDisplayMode)
	}
	size := mode.BufferSize()
	if front.Len() != size {
		return nil, fmt.Errorf("%w: front buffer is %d bytes, mode needs %d", ErrDisplayMode, front.Len(), size)
	}

	back, err := allocate(size)
	if err != nil {
		return nil, err
	}

	return &Surface{
		Mode:  mode,
		front: front,
		back:  back,
		size:  size,
	}, nil
}

func allocate(size int) (buf []byte, err error) {
	if size <= 0 || size > MaxBufferSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrAllocation, size)
	}
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	return make([]byte, size), nil
}

// Forget releases the back buffer. The front buffer stays with its provider.
func (s *Surface) Forget() {
	if s == nil {
		return
	}
	s.back = nil
	s.canvas = nil
}

// BufferSize is the byte length shared by both buffers.
func (s *Surface) BufferSize() int { return s.size }

// BackBuffer exposes the application-owned frame. It is nil after Forget.
func (s *Surface) BackBuffer() []byte { return s.back }

// Front returns the borrowed front buffer.
func (s *Surface) Front() FrontBuffer { return s.front }

// Canvas returns a draw.Image view of the back buffer.
func (s *Surface) Canvas() *Canvas {
	if s.back == nil {
		return nil
	}
	if s.canvas == nil {
		s.canvas = NewCanvas(s.back, s.Mode)
	}
	return s.canvas
}

// Swap copies the whole back buffer into the front buffer.
func (s *Surface) Swap() error {
	if s.back == nil {
		return ErrReleased
	}
	return s.front.CopyFrom(s.back)
}
