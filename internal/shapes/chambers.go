package shapes

import "github.com/bmalloy0/MapGenerator/internal/world"

// span is the inclusive dx range of one chamber row.
type span struct{ lo, hi int }

// wall names a side of a chamber that carries an exit.
type wall int

const (
	farWall wall = iota
	leftWall
	rightWall
)

type chamberExit struct {
	wall wall
	kind ExitKind
}

// chamberExits lists the doorways of each archetype. Every orientation of a
// family shares its head's list.
var chamberExits = map[ID][]chamberExit{
	SquareSmall:    {{farWall, ExitDoor}},
	SquareMedium:   {{farWall, ExitDoor}, {leftWall, ExitPassage}},
	RectSmall:      {{farWall, ExitPassage}, {rightWall, ExitDoor}},
	RectMedium:     {{farWall, ExitDoor}, {leftWall, ExitDoor}, {rightWall, ExitPassage}},
	CircleSmall:    {{farWall, ExitPassage}},
	OctagonSmall:   {{farWall, ExitDoor}, {leftWall, ExitPassage}, {rightWall, ExitPassage}},
	TrapezoidSmall: {{farWall, ExitDoor}},
	SquareLarge:    {{farWall, ExitDoor}, {leftWall, ExitDoor}, {rightWall, ExitDoor}},
	SquarePillared: {{farWall, ExitPassage}, {leftWall, ExitDoor}, {rightWall, ExitDoor}},
	RectLarge:      {{farWall, ExitDoor}, {leftWall, ExitPassage}, {rightWall, ExitDoor}},
	RectHall:       {{farWall, ExitDoor}, {leftWall, ExitDoor}, {rightWall, ExitDoor}},
	CircleLarge:    {{farWall, ExitDoor}, {leftWall, ExitPassage}, {rightWall, ExitPassage}},
	OctagonLarge:   {{farWall, ExitDoor}, {leftWall, ExitDoor}, {rightWall, ExitDoor}},
	TrapezoidLarge: {{farWall, ExitPassage}},
}

// squareRows returns n rows of width w. shift selects centred (0), flush
// toward +dx (1) or flush toward -dx (-1).
func squareRows(w, n, shift int) []span {
	lo, hi := lanes(w)
	switch {
	case shift > 0:
		lo, hi = 0, w-1
	case shift < 0:
		lo, hi = -(w - 1), 0
	}
	rows := make([]span, n)
	for i := range rows {
		rows[i] = span{lo, hi}
	}
	return rows
}

// rectRows lays out a short×long rectangle in orientation o (1-4): the long
// axis forward and centred, then across centred, across toward +dx and
// across toward -dx.
func rectRows(short, long, o int) []span {
	switch o {
	case 2:
		return squareRows(long, short, 0)
	case 3:
		return squareRows(long, short, 1)
	case 4:
		return squareRows(long, short, -1)
	default:
		return squareRows(short, long, 0)
	}
}

// circleRows keeps cells with dx² + (dy-cy)² ≤ r² + r, which rounds the disc
// outward so the first row is never a single cell.
func circleRows(d int) []span {
	r := d / 2
	cy := 1 + r
	rows := make([]span, d)
	for i := range rows {
		dy := 1 + i
		lim := r*r + r - (dy-cy)*(dy-cy)
		w := 0
		for (w+1)*(w+1) <= lim {
			w++
		}
		rows[i] = span{-w, w}
	}
	return rows
}

// octagonRows trims each corner of a w×w square by a diagonal of w/4 cells.
func octagonRows(w int) []span {
	lo, _ := lanes(w)
	cut := w / 4
	rows := make([]span, w)
	for j := range rows {
		rowLo, rowHi := -1, -1
		for i := 0; i < w; i++ {
			if min(i, w-1-i)+min(j, w-1-j) < cut {
				continue
			}
			if rowLo < 0 {
				rowLo = i
			}
			rowHi = i
		}
		rows[j] = span{lo + rowLo, lo + rowHi}
	}
	return rows
}

// trapezoidRows centres a row per width; narrowing reverses the order.
func trapezoidRows(widths []int, narrowing bool) []span {
	rows := make([]span, len(widths))
	for i, w := range widths {
		if narrowing {
			w = widths[len(widths)-1-i]
		}
		lo, hi := lanes(w)
		rows[i] = span{lo, hi}
	}
	return rows
}

func chamberRows(id ID) []span {
	switch id {
	case SquareSmall:
		return squareRows(4, 4, 0)
	case SquareSmallO2:
		return squareRows(4, 4, 1)
	case SquareSmallO3:
		return squareRows(4, 4, -1)
	case SquareMedium:
		return squareRows(6, 6, 0)
	case SquareMediumO2:
		return squareRows(6, 6, 1)
	case SquareMediumO3:
		return squareRows(6, 6, -1)
	case RectSmall, RectSmallO2, RectSmallO3, RectSmallO4:
		return rectRows(4, 6, int(id-RectSmall)+1)
	case RectMedium, RectMediumO2, RectMediumO3, RectMediumO4:
		return rectRows(6, 8, int(id-RectMedium)+1)
	case CircleSmall:
		return circleRows(5)
	case OctagonSmall:
		return octagonRows(6)
	case TrapezoidSmall:
		return trapezoidRows([]int{2, 4, 6, 8}, false)
	case TrapezoidSmallO2:
		return trapezoidRows([]int{2, 4, 6, 8}, true)
	case SquareLarge:
		return squareRows(8, 8, 0)
	case SquareLargeO2:
		return squareRows(8, 8, 1)
	case SquareLargeO3:
		return squareRows(8, 8, -1)
	case SquarePillared:
		return squareRows(10, 10, 0)
	case SquarePillaredO2:
		return squareRows(10, 10, 1)
	case SquarePillaredO3:
		return squareRows(10, 10, -1)
	case RectLarge, RectLargeO2, RectLargeO3, RectLargeO4:
		return rectRows(8, 12, int(id-RectLarge)+1)
	case RectHall, RectHallO2, RectHallO3, RectHallO4:
		return rectRows(6, 14, int(id-RectHall)+1)
	case CircleLarge:
		return circleRows(9)
	case OctagonLarge:
		return octagonRows(10)
	case TrapezoidLarge:
		return trapezoidRows([]int{4, 6, 8, 10, 12, 14}, false)
	case TrapezoidLargeO2:
		return trapezoidRows([]int{4, 6, 8, 10, 12, 14}, true)
	}
	return nil
}

// chamber fills the rows with Room, adds the archetype's dressing and derives
// exits from the realized rows: the far exit below the middle of the last row,
// side exits just outside the middle row.
func chamber(id ID) canonical {
	var c canonical
	rows := chamberRows(id)
	for i, r := range rows {
		c.fill(r.lo, r.hi, 1+i, 1+i, world.Room)
	}

	switch Base(id) {
	case SquarePillared:
		for j, r := range rows {
			for i := 0; i <= r.hi-r.lo; i++ {
				if i%3 == 2 && j%3 == 2 {
					c.set(r.lo+i, 1+j, world.Pillar)
				}
			}
		}
	case CircleLarge:
		c.set(0, 1+len(rows)/2, world.Well)
	}

	depth := len(rows)
	last := rows[depth-1]
	mid := 1 + depth/2
	midRow := rows[mid-1]
	for _, e := range chamberExits[Base(id)] {
		switch e.wall {
		case farWall:
			c.exit(last.lo+(last.hi-last.lo)/2, depth+1, e.kind)
		case leftWall:
			c.exit(midRow.hi+1, mid, e.kind)
		case rightWall:
			c.exit(midRow.lo-1, mid, e.kind)
		}
	}
	return c
}
