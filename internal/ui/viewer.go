package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bmalloy0/MapGenerator/internal/gamedata"
	"github.com/bmalloy0/MapGenerator/internal/logger"
	"github.com/bmalloy0/MapGenerator/internal/telemetry"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

// statusRows is the space kept under the map for the status line.
const statusRows = 1

// Viewer browses a finished layout one floor at a time.
type Viewer struct {
	screen   *Screen
	renderer *Renderer
	layout   world.Layout
	title    string
	floor    int
	view     world.Rect
	bounds   world.Rect // generated part of the current floor
	running  bool
}

// NewViewer creates a viewer showing the first floor of l.
func NewViewer(screen *Screen, palette *gamedata.Palette, l world.Layout, title string) *Viewer {
	v := &Viewer{
		screen:   screen,
		renderer: NewRenderer(screen, palette),
		layout:   l,
		title:    title,
		running:  true,
	}
	v.resize()
	v.focus()
	return v
}

// Run executes the event loop until the user quits or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	_, span := telemetry.Tracer("ui").Start(ctx, "ui.view")
	span.SetAttributes(
		attribute.Int("layout.floors", v.layout.Floors()),
		attribute.Int("layout.width", v.layout.Width()),
		attribute.Int("layout.depth", v.layout.Depth()),
	)
	defer span.End()

	// PollEvent only returns on input, so wake it when ctx is done.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			v.screen.Interrupt()
		case <-done:
		}
	}()

	for v.running {
		if err := ctx.Err(); err != nil {
			return err
		}
		v.Draw()
		v.handleInput()
	}
	logger.Debug("Viewer closed", "floor", v.floor+1)
	return nil
}

// Draw renders the current floor and status line.
func (v *Viewer) Draw() {
	v.renderer.Render(v.layout, v.floor, v.view, v.status())
}

func (v *Viewer) status() string {
	s := fmt.Sprintf("%s  floor %d/%d  x %d-%d  y %d-%d",
		v.title, v.floor+1, v.layout.Floors(),
		v.view.X, v.view.X+v.view.Width-1, v.view.Y, v.view.Y+v.view.Height-1)
	if !v.view.Intersects(v.bounds) {
		s += "  (nothing in view)"
	}
	return s + "  [<>] floor  [arrows] scroll  [q] quit"
}

// handleInput processes a single input event.
func (v *Viewer) handleInput() {
	switch ev := v.screen.PollEvent().(type) {
	case *tcell.EventInterrupt:
		// Posted by Run when its context ends; the loop checks ctx next.
	case *tcell.EventKey:
		v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	}
}

// handleKey applies one key press.
func (v *Viewer) handleKey(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false

	case tcell.KeyUp:
		v.scroll(0, -1)
	case tcell.KeyDown:
		v.scroll(0, 1)
	case tcell.KeyLeft:
		v.scroll(-1, 0)
	case tcell.KeyRight:
		v.scroll(1, 0)
	case tcell.KeyPgUp:
		v.scroll(0, -v.view.Height)
	case tcell.KeyPgDn:
		v.scroll(0, v.view.Height)

	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			v.running = false
		case '<', ',':
			v.setFloor(v.floor - 1)
		case '>', '.':
			v.setFloor(v.floor + 1)
		}
	}
}

func (v *Viewer) setFloor(floor int) {
	if floor < 0 || floor >= v.layout.Floors() || floor == v.floor {
		return
	}
	v.floor = floor
	v.focus()
}

// focus centres the viewport on what was generated on the current floor.
func (v *Viewer) focus() {
	v.bounds = world.Bounds(v.layout, v.floor)
	cx, cy := v.bounds.Center()
	v.view = v.view.CenterOn(cx, cy, v.layout.Width(), v.layout.Depth())
}

func (v *Viewer) scroll(dx, dy int) {
	cx, cy := v.view.Center()
	v.view = v.view.CenterOn(cx+dx, cy+dy, v.layout.Width(), v.layout.Depth())
}

// resize fits the viewport to the terminal, never wider than the floor.
func (v *Viewer) resize() {
	w, h := v.screen.Size()
	cx, cy := v.view.Center()
	v.view.Width = max(1, min(w, v.layout.Width()))
	v.view.Height = max(1, min(h-statusRows, v.layout.Depth()))
	v.view = v.view.CenterOn(cx, cy, v.layout.Width(), v.layout.Depth())
}

// Floor returns the floor being shown.
func (v *Viewer) Floor() int { return v.floor }

// View returns the visible window of the current floor.
func (v *Viewer) View() world.Rect { return v.view }

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	if v.screen != nil {
		v.screen.Close()
	}
}
