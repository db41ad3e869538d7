package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bmalloy0/MapGenerator/internal/world"
)

// TileStyle is the display colouring of one tile kind.
type TileStyle struct {
	Foreground string `yaml:"fg"`
	Background string `yaml:"bg,omitempty"`
	Bold       bool   `yaml:"bold,omitempty"`
}

// PaletteFile represents the structure of palette.yaml.
type PaletteFile struct {
	Tiles map[string]TileStyle `yaml:"tiles"`
}

// Palette maps tile kinds to terminal styles.
type Palette struct {
	styles map[world.TileKind]tcell.Style
}

// NewPalette converts a parsed palette file, rejecting unknown tile names
// and malformed colours.
func NewPalette(file PaletteFile) (*Palette, error) {
	p := &Palette{styles: make(map[world.TileKind]tcell.Style, len(file.Tiles))}
	for name, ts := range file.Tiles {
		kind, ok := world.ParseTileKind(name)
		if !ok {
			return nil, fmt.Errorf("palette: unknown tile kind %q", name)
		}
		style := tcell.StyleDefault
		fg, err := ParseHexColor(ts.Foreground)
		if err != nil {
			return nil, fmt.Errorf("palette: tile %s: %w", name, err)
		}
		style = style.Foreground(fg)
		if ts.Background != "" {
			bg, err := ParseHexColor(ts.Background)
			if err != nil {
				return nil, fmt.Errorf("palette: tile %s: %w", name, err)
			}
			style = style.Background(bg)
		}
		if ts.Bold {
			style = style.Bold(true)
		}
		p.styles[kind] = style
	}
	return p, nil
}

// LoadPalette loads the embedded palette.yaml.
func LoadPalette() (*Palette, error) {
	file, err := Load[PaletteFile]("palette.yaml")
	if err != nil {
		return nil, err
	}
	return NewPalette(file)
}

// MustLoadPalette loads the embedded palette, panicking on error.
func MustLoadPalette() *Palette {
	p, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return p
}

// Style returns the style for a kind, falling back to the terminal default.
func (p *Palette) Style(kind world.TileKind) tcell.Style {
	if s, ok := p.styles[kind]; ok {
		return s
	}
	return tcell.StyleDefault
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}
