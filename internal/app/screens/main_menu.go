package screens

import (
	"fmt"
	"image"

	"github.com/HyperNiki/umt/internal/app"
	"github.com/HyperNiki/umt/internal/input"
	"github.com/HyperNiki/umt/internal/render"
	"github.com/HyperNiki/umt/internal/render/layout"
	"github.com/HyperNiki/umt/internal/resource"
)

type menuItem struct {
	state app.State
	label resource.StringID
}

var menuItems = []menuItem{
	{app.StateSolidColors, "screen.solid"},
	{app.StateGrayscale, "screen.grayscale"},
	{app.StateGradients, "screen.gradients"},
	{app.StateChessboard, "screen.chessboard"},
	{app.StateDisplayInfo, "screen.info"},
}

var menuTips = []resource.StringID{"tip.menu.1", "tip.menu.2", "tip.menu.3"}

// MainMenu lists the tests. Left and Right page through the help text,
// opening it first if it is hidden.
type MainMenu struct {
	kit      *Kit
	selected int
	tipPage  int
	frame    frame
}

func NewMainMenu(kit *Kit) *MainMenu { return &MainMenu{kit: kit} }

func (m *MainMenu) Init(c *app.Context) {
	m.selected = 0
	m.tipPage = 0
	// Parse fonts before the first tick.
	m.kit.drawer(c)
	c.Logger().Infof("screens", "main menu ready, %d tests, language %s", len(menuItems), languageOf(c))
}

func (m *MainMenu) Doit(c *app.Context) {
	if key, ok := m.kit.poll(c); ok {
		m.handle(c, key)
	}
	if !c.Running || c.Actions() != app.ActionBundle(m) {
		return
	}
	type menuFrame struct {
		selected, tipPage int
		tip               bool
	}
	if !m.frame.stale(c, menuFrame{m.selected, m.tipPage, c.ShowTip}) {
		return
	}
	m.draw(c)
	if c.ShowTip {
		m.Tip(c)
	}
}

func (m *MainMenu) handle(c *app.Context, key input.Key) {
	n := len(menuItems)
	switch key {
	case input.KeyUp:
		m.selected = (m.selected + n - 1) % n
	case input.KeyDown, input.KeyTab:
		m.selected = (m.selected + 1) % n
	case input.KeyEnter:
		if err := c.Transition(menuItems[m.selected].state); err != nil {
			c.Logger().Errorf("screens", "open %s: %v", menuItems[m.selected].label, err)
		}
	case input.KeyEscape:
		c.Stop()
	case input.KeyF1:
		c.ShowTip = !c.ShowTip
	case input.KeyRight:
		c.KeyRight()
	case input.KeyLeft:
		c.KeyLeft()
	}
}

func (m *MainMenu) draw(c *app.Context) {
	d := m.kit.drawer(c)
	w, h := d.Size()
	d.FillBackground()

	area := layout.Inset(image.Rect(0, 0, w, h), h/20)
	titleStyle := render.TextStyle{Size: h / 12, Align: render.TextAlignCenter}
	title := d.DrawText(str(c, "menu.title"), w/2, area.Min.Y, titleStyle)

	itemStyle := render.TextStyle{Align: render.TextAlignCenter}
	lineHeight := d.MeasureText("Ag", itemStyle).LineHeight
	rowHeight := lineHeight * 3 / 2
	_, list := layout.SplitHorizontal(area, title.LineHeight*2)
	rows := layout.Rows(list, len(menuItems), rowHeight)
	for i, item := range menuItems {
		row := rows[i]
		if i == m.selected {
			d.FillRect(layout.CenterIn(row, w*2/3, row.Dy()), render.Highlight)
		}
		d.DrawText(str(c, item.label), w/2, row.Min.Y+(row.Dy()-lineHeight)/2, itemStyle)
	}

	if !c.ShowTip {
		footer := render.TextStyle{Color: render.Dim, Align: render.TextAlignCenter}
		d.DrawText(str(c, "menu.footer"), w/2, area.Max.Y-lineHeight, footer)
	}
}

func (m *MainMenu) Tip(c *app.Context) {
	page := fmt.Sprintf("%s (%d/%d)", str(c, menuTips[m.tipPage]), m.tipPage+1, len(menuTips))
	m.kit.drawTip(c, page)
}

func (m *MainMenu) KeyRight(c *app.Context) {
	if !c.ShowTip {
		c.ShowTip = true
		return
	}
	m.tipPage = (m.tipPage + 1) % len(menuTips)
}

func (m *MainMenu) KeyLeft(c *app.Context) {
	if !c.ShowTip {
		c.ShowTip = true
		return
	}
	m.tipPage = (m.tipPage + len(menuTips) - 1) % len(menuTips)
}

// Selected reports the highlighted test.
func (m *MainMenu) Selected() app.State { return menuItems[m.selected].state }

func languageOf(c *app.Context) string {
	if h := c.Strings(); h != nil {
		return h.Language().String()
	}
	return "und"
}
