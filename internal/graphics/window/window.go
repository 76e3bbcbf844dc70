// Package window shows the front buffer in a desktop window and feeds its
// keyboard into an input queue. Handy for working on menus without a spare
// framebuffer console.
package window

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/HyperNiki/umt/internal/graphics"
	"github.com/HyperNiki/umt/internal/input"
)

type Config struct {
	Width  int
	Height int
	Title  string
	// Scale multiplies the initial window size.
	Scale int
}

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyArrowUp:     input.KeyUp,
	ebiten.KeyArrowDown:   input.KeyDown,
	ebiten.KeyArrowLeft:   input.KeyLeft,
	ebiten.KeyArrowRight:  input.KeyRight,
	ebiten.KeyEnter:       input.KeyEnter,
	ebiten.KeyNumpadEnter: input.KeyEnter,
	ebiten.KeyEscape:      input.KeyEscape,
	ebiten.KeyTab:         input.KeyTab,
	ebiten.KeyF1:          input.KeyF1,
}

// Provider is a graphics.Provider backed by an ebiten window. The window
// only exists while Run is active; frames swapped before that are kept.
type Provider struct {
	cfg  Config
	mode graphics.ModeInfo
	keys *input.Queue

	mu    sync.Mutex
	img   *image.RGBA
	dirty bool
	swaps uint64
}

func New(cfg Config) *Provider {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Title == "" {
		cfg.Title = "Monitor Test"
	}
	mode := graphics.ModeInfo{
		Width:             cfg.Width,
		Height:            cfg.Height,
		PixelsPerScanLine: cfg.Width,
		Format:            graphics.PixelRGBX,
	}
	return &Provider{
		cfg:  cfg,
		mode: mode,
		keys: input.NewQueue(64),
		img:  image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
	}
}

func (p *Provider) QueryMode() (graphics.ModeInfo, error) { return p.mode, nil }

func (p *Provider) SetMode(index int) error {
	if index != 0 {
		return fmt.Errorf("window has no mode %d", index)
	}
	return nil
}

func (p *Provider) FrontBuffer() graphics.FrontBuffer { return (*front)(p) }

// Keys is the window's keyboard.
func (p *Provider) Keys() *input.Queue { return p.keys }

// Run opens the window on the calling goroutine, which must be the main
// one, and runs session on another. The window closes when session returns.
// Closing the window sends Escape until the session ends.
func (p *Provider) Run(session func()) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		session()
	}()

	ebiten.SetWindowTitle(p.cfg.Title)
	ebiten.SetWindowSize(p.cfg.Width*p.cfg.Scale, p.cfg.Height*p.cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(&game{p: p, done: done})
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if err == nil {
		<-done
		return nil
	}
	// The window died under a running session; back it out.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		p.keys.Push(input.KeyEscape)
		select {
		case <-done:
			return err
		case <-ticker.C:
		}
	}
}

type game struct {
	p    *Provider
	done <-chan struct{}

	screen *ebiten.Image
	keys   []ebiten.Key
}

func (g *game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key, ok := keyMap[k]; ok {
			g.p.keys.Push(key)
		}
	}
	if ebiten.IsWindowBeingClosed() {
		g.p.keys.Push(input.KeyEscape)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.screen == nil {
		g.screen = ebiten.NewImage(g.p.mode.Width, g.p.mode.Height)
	}
	g.p.mu.Lock()
	if g.p.dirty {
		g.screen.WritePixels(g.p.img.Pix)
		g.p.dirty = false
	}
	g.p.mu.Unlock()
	screen.DrawImage(g.screen, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.p.mode.Width, g.p.mode.Height
}

type front Provider

func (f *front) Len() int { return f.mode.BufferSize() }

// CopyFrom converts the frame for the window. The next Draw uploads it.
func (f *front) CopyFrom(frame []byte) error {
	if len(frame) != f.mode.BufferSize() {
		return fmt.Errorf("window frame: got %d bytes, want %d", len(frame), f.mode.BufferSize())
	}
	f.mu.Lock()
	graphics.ToRGBAInto(f.img, frame, f.mode)
	f.dirty = true
	f.swaps++
	f.mu.Unlock()
	return nil
}

// Swaps reports how many frames were presented.
func (p *Provider) Swaps() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.swaps
}
