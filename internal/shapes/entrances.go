package shapes

import "github.com/bmalloy0/MapGenerator/internal/world"

// Entrances are drawn with the anchor on the top edge of the floor. Unlike
// every other shape they cover the anchor row itself.
func entrance(id ID) canonical {
	var c canonical
	switch id {
	case Start1:
		c.fill(0, 1, 0, 0, world.Enter)
		c.fill(-1, 2, 1, 4, world.Room)
		c.exit(-2, 3, ExitPassage)
		c.exit(3, 3, ExitPassage)
		c.exit(0, 5, ExitPassage)
	case Start2:
		c.add(0, 0, world.Enter)
		c.fill(-2, 2, 1, 5, world.Room)
		c.exit(0, 6, ExitDoor)
		c.exit(-3, 3, ExitPassage)
		c.exit(3, 3, ExitPassage)
	case Start3:
		c.fill(0, 1, 0, 0, world.Enter)
		c.fill(-2, 3, 1, 4, world.Room)
		c.exit(-3, 2, ExitDoor)
		c.exit(4, 2, ExitDoor)
		c.exit(1, 5, ExitPassage)
	case Start4:
		c.add(0, 0, world.Enter)
		c.fill(0, 0, 1, 3, world.Passage)
		c.fill(-2, 2, 4, 8, world.Room)
		c.exit(-3, 6, ExitPassage)
		c.exit(3, 6, ExitPassage)
		c.exit(0, 9, ExitDoor)
	case Start5:
		c.fill(-1, 1, 0, 0, world.Enter)
		c.fill(-3, 3, 1, 6, world.Room)
		c.set(-2, 3, world.Pillar)
		c.set(2, 3, world.Pillar)
		c.exit(-4, 4, ExitDoor)
		c.exit(4, 4, ExitDoor)
		c.exit(0, 7, ExitDoor)
	case Start6:
		c.add(0, 0, world.Enter)
		c.fill(-1, 1, 1, 3, world.Room)
		c.exit(0, 4, ExitPassage)
	case Start7:
		c.fill(0, 1, 0, 0, world.Enter)
		c.fill(-1, 2, 1, 8, world.Room)
		c.exit(-2, 2, ExitPassage)
		c.exit(3, 6, ExitPassage)
		c.exit(0, 9, ExitDoor)
	case Start8:
		c.add(0, 0, world.Enter)
		c.fill(0, 0, 1, 2, world.Passage)
		c.fill(-3, 3, 3, 3, world.Passage)
		c.exit(-4, 3, ExitPassage)
		c.exit(4, 3, ExitPassage)
		c.exit(0, 4, ExitPassage)
	case Start9:
		c.add(0, 0, world.Enter)
		c.fill(-2, 3, 1, 6, world.Room)
		c.remove(-2, 1)
		c.remove(3, 1)
		c.remove(-2, 6)
		c.remove(3, 6)
		c.exit(-3, 3, ExitDoor)
		c.exit(4, 4, ExitDoor)
		c.exit(1, 7, ExitPassage)
	case Start10:
		c.fill(0, 1, 0, 0, world.Enter)
		c.fill(-3, 4, 1, 5, world.Room)
		c.set(0, 3, world.Well)
		c.set(1, 3, world.Well)
		c.exit(-4, 3, ExitPassage)
		c.exit(5, 3, ExitPassage)
		c.exit(-1, 6, ExitDoor)
		c.exit(2, 6, ExitDoor)
	}
	return c
}
