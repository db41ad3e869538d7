package shapes

import (
	"github.com/bmalloy0/MapGenerator/internal/world"
)

// ExitKind selects the sentinel a shape leaves behind at an exit.
type ExitKind int

const (
	// ExitPassage becomes a PassageInProgress sentinel.
	ExitPassage ExitKind = iota
	// ExitDoor becomes a Door sentinel.
	ExitDoor
	// ExitMaybeSecret becomes a SecretDoorPending sentinel on a low roll and
	// is otherwise left Blank.
	ExitMaybeSecret
)

func (k ExitKind) String() string {
	switch k {
	case ExitPassage:
		return "passage"
	case ExitDoor:
		return "door"
	case ExitMaybeSecret:
		return "maybe_secret"
	default:
		return "unknown"
	}
}

// Sentinel returns the frontier kind written for the exit.
func (k ExitKind) Sentinel() world.TileKind {
	switch k {
	case ExitDoor:
		return world.Door
	case ExitMaybeSecret:
		return world.SecretDoorPending
	default:
		return world.PassageInProgress
	}
}

// Cell is one realized footprint cell.
type Cell struct {
	P    world.Point
	Kind world.TileKind
}

// Exit is one realized exit position.
type Exit struct {
	P    world.Point
	Kind ExitKind
}

// Footprint is a shape rotated and translated onto the grid.
type Footprint struct {
	ID     ID
	Anchor world.Point
	Dir    world.Direction
	Size   int
	Cells  []Cell
	Exits  []Exit
}

// Realize places id at anchor facing dir. size is used by sized passages and
// ignored by everything else. Validation and placement both go through here
// so they always agree on the cells a shape covers.
func Realize(id ID, anchor world.Point, dir world.Direction, size int) Footprint {
	t := template(id, size)
	fp := Footprint{
		ID:     id,
		Anchor: anchor,
		Dir:    dir,
		Size:   size,
		Cells:  make([]Cell, 0, len(t.cells)),
		Exits:  make([]Exit, 0, len(t.exits)),
	}
	for _, c := range t.cells {
		dx, dy := dir.Rotate(c.dx, c.dy)
		fp.Cells = append(fp.Cells, Cell{P: anchor.Add(dx, dy), Kind: c.kind})
	}
	for _, e := range t.exits {
		dx, dy := dir.Rotate(e.dx, e.dy)
		fp.Exits = append(fp.Exits, Exit{P: anchor.Add(dx, dy), Kind: e.kind})
	}
	return fp
}

// canonical is a shape facing Down with its anchor at the origin.
type canonical struct {
	cells []offset
	exits []exitOffset
}

type offset struct {
	dx, dy int
	kind   world.TileKind
}

type exitOffset struct {
	dx, dy int
	kind   ExitKind
}

func (c *canonical) add(dx, dy int, kind world.TileKind) {
	c.cells = append(c.cells, offset{dx, dy, kind})
}

func (c *canonical) fill(dxLo, dxHi, dyLo, dyHi int, kind world.TileKind) {
	for dy := dyLo; dy <= dyHi; dy++ {
		for dx := dxLo; dx <= dxHi; dx++ {
			c.add(dx, dy, kind)
		}
	}
}

// set overwrites the kind of an existing cell.
func (c *canonical) set(dx, dy int, kind world.TileKind) {
	for i := range c.cells {
		if c.cells[i].dx == dx && c.cells[i].dy == dy {
			c.cells[i].kind = kind
			return
		}
	}
}

func (c *canonical) remove(dx, dy int) {
	for i := range c.cells {
		if c.cells[i].dx == dx && c.cells[i].dy == dy {
			c.cells = append(c.cells[:i], c.cells[i+1:]...)
			return
		}
	}
}

func (c *canonical) exit(dx, dy int, kind ExitKind) {
	c.exits = append(c.exits, exitOffset{dx, dy, kind})
}

func template(id ID, size int) canonical {
	switch ClassOf(id) {
	case ClassEntrance:
		return entrance(id)
	case ClassSmallChamber, ClassLargeChamber:
		return chamber(id)
	default:
		return passage(id, size)
	}
}
