package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bmalloy0/MapGenerator/internal/gamedata"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

// Renderer draws one floor of a layout through a viewport.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the cells of floor inside view at the screen origin and the
// status text on the row below the map.
func (r *Renderer) Render(l world.Layout, floor int, view world.Rect, status string) {
	r.screen.Clear()

	plan := world.Rect{Width: l.Width(), Height: l.Depth()}
	for sy := 0; sy < view.Height; sy++ {
		for sx := 0; sx < view.Width; sx++ {
			x, y := view.X+sx, view.Y+sy
			if !plan.Contains(x, y) {
				continue
			}
			kind := l.At(world.Point{Floor: floor, X: x, Y: y})
			r.screen.SetContent(sx, sy, kind.Rune(), r.palette.Style(kind))
		}
	}

	r.RenderMessage(status, view.Height)
	r.screen.Show()
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
