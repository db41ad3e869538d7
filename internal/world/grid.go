package world

import (
	"errors"
	"fmt"
)

// Minimum layout dimensions accepted by generation.
const (
	MinFloors = 1
	MinWidth  = 25
	MinDepth  = 25
)

// ErrBadDimensions is returned when grid bytes do not match the dimensions.
var ErrBadDimensions = errors.New("world: grid dimensions do not match data")

// Point addresses one cell of the grid.
type Point struct {
	Floor, X, Y int
}

// Add returns the point offset by (dx, dy) on the same floor.
func (p Point) Add(dx, dy int) Point {
	return Point{Floor: p.Floor, X: p.X + dx, Y: p.Y + dy}
}

// Step returns the neighbouring point in the given direction.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}

// String formats the point as floor:x,y.
func (p Point) String() string {
	return fmt.Sprintf("%d:%d,%d", p.Floor, p.X, p.Y)
}

// Layout is the read-only view of a finished grid handed to renderers.
type Layout interface {
	Floors() int
	Width() int
	Depth() int
	At(p Point) TileKind
}

// Grid is the kind[floor][x][y] array every generated shape is written to.
type Grid struct {
	floors, width, depth int
	cells                []TileKind
}

// NewGrid creates an all-Blank grid. Dimensions below one are raised to one;
// the generation minimums are applied by the caller's configuration.
func NewGrid(floors, width, depth int) *Grid {
	floors = max(floors, 1)
	width = max(width, 1)
	depth = max(depth, 1)
	return &Grid{
		floors: floors,
		width:  width,
		depth:  depth,
		cells:  make([]TileKind, floors*width*depth),
	}
}

// GridFromBytes rebuilds a grid from the encoding produced by Bytes.
func GridFromBytes(floors, width, depth int, data []byte) (*Grid, error) {
	if floors < 1 || width < 1 || depth < 1 || len(data) != floors*width*depth {
		return nil, fmt.Errorf("%w: %dx%dx%d with %d bytes", ErrBadDimensions, floors, width, depth, len(data))
	}
	g := NewGrid(floors, width, depth)
	for i, b := range data {
		if TileKind(b) >= numTileKinds {
			return nil, fmt.Errorf("invalid tile kind %d at offset %d", b, i)
		}
		g.cells[i] = TileKind(b)
	}
	return g, nil
}

func (g *Grid) Floors() int { return g.floors }
func (g *Grid) Width() int  { return g.width }
func (g *Grid) Depth() int  { return g.depth }

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.Floor >= 0 && p.Floor < g.floors &&
		p.X >= 0 && p.X < g.width &&
		p.Y >= 0 && p.Y < g.depth
}

func (g *Grid) index(p Point) int {
	return (p.Floor*g.width+p.X)*g.depth + p.Y
}

// At returns the kind at p. Out-of-bounds reads return Wall.
func (g *Grid) At(p Point) TileKind {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[g.index(p)]
}

// Set writes kind at p and reports whether p was in bounds.
func (g *Grid) Set(p Point, kind TileKind) bool {
	if !g.InBounds(p) {
		return false
	}
	g.cells[g.index(p)] = kind
	return true
}

// NearBorder reports whether p lies within margin cells of a floor edge.
func (g *Grid) NearBorder(p Point, margin int) bool {
	return p.X <= margin || p.X >= g.width-1-margin ||
		p.Y <= margin || p.Y >= g.depth-1-margin
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{floors: g.floors, width: g.width, depth: g.depth}
	c.cells = append([]TileKind(nil), g.cells...)
	return c
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.floors != other.floors || g.width != other.width || g.depth != other.depth {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Bytes encodes the grid floor-major, then x, then y, one byte per cell.
func (g *Grid) Bytes() []byte {
	out := make([]byte, len(g.cells))
	for i, k := range g.cells {
		out[i] = byte(k)
	}
	return out
}
