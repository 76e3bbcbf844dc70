// Package screens is the menu content: one ActionBundle per app.State.
package screens

import (
	"image"
	"time"

	"github.com/HyperNiki/umt/internal/app"
	"github.com/HyperNiki/umt/internal/graphics"
	"github.com/HyperNiki/umt/internal/input"
	"github.com/HyperNiki/umt/internal/render"
	"github.com/HyperNiki/umt/internal/render/layout"
	"github.com/HyperNiki/umt/internal/resource"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// DefaultFrameInterval is how long one tick waits for a key.
const DefaultFrameInterval = 50 * time.Millisecond

// Kit is shared by every screen: the painter over the back buffer and the
// tick pacing.
type Kit struct {
	Logger        Logger
	FrameInterval time.Duration

	painter *render.Painter
	canvas  *graphics.Canvas
}

func NewKit(logger Logger) *Kit {
	return &Kit{Logger: logger, FrameInterval: DefaultFrameInterval}
}

// Table builds the complete state table over kit.
func Table(kit *Kit) (app.StateTable, error) {
	return app.NewStateTable(map[app.State]app.ActionBundle{
		app.StateMainMenu:    NewMainMenu(kit),
		app.StateSolidColors: NewSolidColors(kit),
		app.StateGrayscale:   NewGrayscale(kit),
		app.StateGradients:   NewGradients(kit),
		app.StateChessboard:  NewChessboard(kit),
		app.StateDisplayInfo: NewDisplayInfo(kit),
	})
}

// drawer returns the painter, retargeted if the back buffer changed.
func (k *Kit) drawer(c *app.Context) *render.Painter {
	canvas := c.Graphics.Canvas()
	if k.painter == nil {
		var log Logger = app.NoopLogger{}
		if k.Logger != nil {
			log = k.Logger
		}
		k.painter = render.NewPainter(canvas, log)
		k.canvas = canvas
	} else if canvas != k.canvas {
		k.painter.Target(canvas)
		k.canvas = canvas
	}
	return k.painter
}

// Close releases the painter's parsed font faces. The kit can be reused
// afterwards; the next draw builds a fresh painter.
func (k *Kit) Close() error {
	if k.painter == nil {
		return nil
	}
	err := k.painter.Close()
	k.painter = nil
	k.canvas = nil
	return err
}

// poll waits up to one frame interval for a key.
func (k *Kit) poll(c *app.Context) (input.Key, bool) {
	src := c.Input()
	if src == nil {
		if k.FrameInterval > 0 {
			time.Sleep(k.FrameInterval)
		}
		return input.KeyNone, false
	}
	return src.Next(k.FrameInterval)
}

func (k *Kit) logError(format string, args ...interface{}) {
	if k.Logger != nil {
		k.Logger.Errorf("screens", format, args...)
	}
}

// drawTip draws a help panel along the bottom edge.
func (k *Kit) drawTip(c *app.Context, lines ...string) {
	d := k.drawer(c)
	w, h := d.Size()
	style := render.TextStyle{Color: render.TipText, Family: render.FamilyTip, Align: render.TextAlignCenter}
	lineHeight := d.MeasureText("Ag", style).LineHeight
	pad := lineHeight / 2
	panelHeight := lineHeight*len(lines) + 2*pad

	_, panel := layout.SplitHorizontal(image.Rect(0, 0, w, h), h-panelHeight)
	d.FillRect(panel, render.TipPanel)
	y := panel.Min.Y + pad
	for _, line := range lines {
		d.DrawText(line, w/2, y, style)
		y += lineHeight
	}
}

// backToMenu handles the keys every test pattern shares. It reports whether
// the key was consumed.
func backToMenu(c *app.Context, key input.Key) bool {
	switch key {
	case input.KeyEscape, input.KeyEnter:
		if err := c.Transition(app.StateMainMenu); err != nil {
			c.Logger().Errorf("screens", "back to menu: %v", err)
		}
	case input.KeyF1:
		c.ShowTip = !c.ShowTip
	case input.KeyRight:
		c.KeyRight()
	case input.KeyLeft:
		c.KeyLeft()
	default:
		return false
	}
	return true
}

// frame tracks what is already in the back buffer so a screen redraws only
// when its content changes or another screen drew in between.
type frame struct {
	drawn bool
	tick  uint64
	key   interface{}
}

func (f *frame) stale(c *app.Context, key interface{}) bool {
	fresh := f.drawn && f.key == key && c.Ticks() == f.tick+1
	f.drawn = true
	f.tick = c.Ticks()
	f.key = key
	return !fresh
}

func str(c *app.Context, id resource.StringID) string { return c.Strings().String(id) }
