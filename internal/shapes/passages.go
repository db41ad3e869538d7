package shapes

import "github.com/bmalloy0/MapGenerator/internal/world"

// Passage sizes produced by the width table. Sizes above SizeMaxWidth keep
// the eight-wide exterior and only change the interior dressing.
const (
	SizeMaxWidth     = 8
	SizeDoublePillar = 9
	SizeTall         = 10
	SizeBalcony      = 11
)

// straightLength is how far a straight passage runs before its far exit.
const straightLength = 6

// ExteriorWidth returns the number of lanes a passage of size occupies.
func ExteriorWidth(size int) int {
	return max(1, min(size, SizeMaxWidth))
}

// lanes returns the canonical dx range of a passage w lanes wide, leaning
// toward +dx when w is even.
func lanes(w int) (lo, hi int) {
	lo = -(w - 1) / 2
	return lo, lo + w - 1
}

// laneKind dresses lane i (0-based from lo) of a sized passage at depth dy.
func laneKind(size, i, dy int) world.TileKind {
	even := dy%2 == 0
	switch {
	case size == SizeMaxWidth:
		if even && (i == 1 || i == 6) {
			return world.PassagePillar
		}
	case size == SizeDoublePillar:
		if even && (i == 1 || i == 2 || i == 5 || i == 6) {
			return world.PassagePillar
		}
	case size == SizeTall:
		return world.PassageTall
	case size >= SizeBalcony:
		if i == 0 || i == SizeMaxWidth-1 {
			return world.PassageBalcony
		}
	}
	return world.Passage
}

func passage(id ID, size int) canonical {
	var c canonical
	switch id {
	case Straight, SideDoorRight, SideDoorLeft, SidePassageRight, SidePassageLeft:
		w := ExteriorWidth(size)
		lo, hi := lanes(w)
		for dy := 1; dy <= straightLength; dy++ {
			for dx := lo; dx <= hi; dx++ {
				c.add(dx, dy, laneKind(size, dx-lo, dy))
			}
		}
		c.exit(0, straightLength+1, ExitPassage)
		switch id {
		case SideDoorRight:
			c.exit(lo-1, 3, ExitDoor)
		case SideDoorLeft:
			c.exit(hi+1, 3, ExitDoor)
		case SidePassageRight:
			c.exit(lo-1, 3, ExitPassage)
		case SidePassageLeft:
			c.exit(hi+1, 3, ExitPassage)
		}
	case DeadEnd:
		c.fill(0, 0, 1, 4, world.Passage)
		c.exit(0, 5, ExitMaybeSecret)
	case TIntersection:
		c.fill(0, 0, 1, 4, world.Passage)
		c.fill(-2, 2, 5, 5, world.Passage)
		c.exit(-3, 5, ExitPassage)
		c.exit(3, 5, ExitPassage)
	case TurnLeft:
		c.fill(0, 0, 1, 4, world.Passage)
		c.fill(1, 2, 4, 4, world.Passage)
		c.exit(3, 4, ExitPassage)
	case TurnRight:
		c.fill(0, 0, 1, 4, world.Passage)
		c.fill(-2, -1, 4, 4, world.Passage)
		c.exit(-3, 4, ExitPassage)
	case StairUp:
		c.fill(0, 0, 1, 2, world.Passage)
		c.add(0, 3, world.StairUp)
	case StairDown:
		c.fill(0, 0, 1, 2, world.Passage)
		c.add(0, 3, world.StairDown)
	}
	return c
}
