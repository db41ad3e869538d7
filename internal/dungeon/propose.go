package dungeon

import (
	"github.com/bmalloy0/MapGenerator/internal/logger"
	"github.com/bmalloy0/MapGenerator/internal/shapes"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

// proposal is one drawn shape with everything rolled alongside it.
type proposal struct {
	id         shapes.ID
	size       int
	exitIntent int
}

func (r *run) proposePassage(maxWidth int) proposal {
	switch res := r.passageKind.Roll(r.rolls); res {
	case resultChamber:
		return r.proposeChamber()
	case resultStair:
		return r.proposeStair()
	default:
		id, _ := shapes.Lookup(res)
		return r.sized(id, maxWidth)
	}
}

// proposeBeyondDoor draws what lies behind a door. The second result is true
// when the door turns out to be false.
func (r *run) proposeBeyondDoor(maxWidth int) (proposal, bool) {
	switch res := r.doorBeyond.Roll(r.rolls); res {
	case resultFalseDoor:
		return proposal{}, true
	case resultChamber:
		return r.proposeChamber(), false
	case resultStair:
		return r.proposeStair(), false
	default:
		id, _ := shapes.Lookup(res)
		return r.sized(id, maxWidth), false
	}
}

// proposeChamber draws a chamber and the exit intent for its size class.
func (r *run) proposeChamber() proposal {
	id, _ := shapes.Lookup(r.chamberKind.Roll(r.rolls))
	exits := r.normExits
	if shapes.ClassOf(id) == shapes.ClassLargeChamber {
		exits = r.largeExits
	}
	n, err := exits.RollInt(r.rolls)
	if err != nil {
		logger.Warning("exit intent roll failed", "table", exits.Name, "error", err)
	}
	return proposal{id: id, exitIntent: n}
}

func (r *run) proposeStair() proposal {
	id, _ := shapes.Lookup(r.stairKind.Roll(r.rolls))
	return proposal{id: id}
}

// sized rolls a width for sized passages. A width whose exterior would not
// fit the parent opening is cut down to the widest that does.
func (r *run) sized(id shapes.ID, maxWidth int) proposal {
	if !shapes.IsSized(id) {
		return proposal{id: id, size: 1}
	}
	size, err := r.passageWidth.RollInt(r.rolls)
	if err != nil {
		logger.Warning("passage width roll failed", "table", r.passageWidth.Name, "error", err)
		size = 1
	}
	if shapes.ExteriorWidth(size) > maxWidth {
		size = maxWidth
	}
	return proposal{id: id, size: size}
}

func (r *run) rollDoorStyle() world.TileKind {
	res := r.doorStyle.Roll(r.rolls)
	k, ok := world.ParseTileKind(res)
	if !ok || !k.IsDoor() {
		return world.DoorWood
	}
	return k
}
