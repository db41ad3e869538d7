// Package shapes is the catalog of entrances, passages and chambers the
// generator grows a floor from. Every shape is stored once, facing Down with
// its anchor at the origin, and rotated onto the requested direction by
// Realize.
package shapes

import "fmt"

// ID names one catalog entry. Chambers with several orientations have one ID
// per orientation; the first of each family is the one table rolls produce.
type ID int

const (
	Start1 ID = iota
	Start2
	Start3
	Start4
	Start5
	Start6
	Start7
	Start8
	Start9
	Start10

	Straight
	SideDoorRight
	SideDoorLeft
	SidePassageRight
	SidePassageLeft
	DeadEnd
	TIntersection
	TurnLeft
	TurnRight
	StairUp
	StairDown

	SquareSmall
	SquareSmallO2
	SquareSmallO3
	SquareMedium
	SquareMediumO2
	SquareMediumO3
	RectSmall
	RectSmallO2
	RectSmallO3
	RectSmallO4
	RectMedium
	RectMediumO2
	RectMediumO3
	RectMediumO4
	CircleSmall
	OctagonSmall
	TrapezoidSmall
	TrapezoidSmallO2

	SquareLarge
	SquareLargeO2
	SquareLargeO3
	SquarePillared
	SquarePillaredO2
	SquarePillaredO3
	RectLarge
	RectLargeO2
	RectLargeO3
	RectLargeO4
	RectHall
	RectHallO2
	RectHallO3
	RectHallO4
	CircleLarge
	OctagonLarge
	TrapezoidLarge
	TrapezoidLargeO2

	numIDs
)

// Class groups shapes for statistics and exit-intent rolls.
type Class int

const (
	ClassEntrance Class = iota
	ClassPassage
	ClassStair
	ClassSmallChamber
	ClassLargeChamber
)

func (c Class) String() string {
	switch c {
	case ClassEntrance:
		return "entrance"
	case ClassPassage:
		return "passage"
	case ClassStair:
		return "stair"
	case ClassSmallChamber:
		return "small_chamber"
	case ClassLargeChamber:
		return "large_chamber"
	default:
		return "unknown"
	}
}

// Classes returns every class in declaration order.
func Classes() []Class {
	return []Class{ClassEntrance, ClassPassage, ClassStair, ClassSmallChamber, ClassLargeChamber}
}

var idNames = [numIDs]string{
	Start1:  "start1",
	Start2:  "start2",
	Start3:  "start3",
	Start4:  "start4",
	Start5:  "start5",
	Start6:  "start6",
	Start7:  "start7",
	Start8:  "start8",
	Start9:  "start9",
	Start10: "start10",

	Straight:         "straight",
	SideDoorRight:    "side_door_right",
	SideDoorLeft:     "side_door_left",
	SidePassageRight: "side_passage_right",
	SidePassageLeft:  "side_passage_left",
	DeadEnd:          "dead_end",
	TIntersection:    "t_intersection",
	TurnLeft:         "turn_left",
	TurnRight:        "turn_right",
	StairUp:          "stair_up",
	StairDown:        "stair_down",

	SquareSmall:      "square_small",
	SquareSmallO2:    "square_small_o2",
	SquareSmallO3:    "square_small_o3",
	SquareMedium:     "square_medium",
	SquareMediumO2:   "square_medium_o2",
	SquareMediumO3:   "square_medium_o3",
	RectSmall:        "rect_small",
	RectSmallO2:      "rect_small_o2",
	RectSmallO3:      "rect_small_o3",
	RectSmallO4:      "rect_small_o4",
	RectMedium:       "rect_medium",
	RectMediumO2:     "rect_medium_o2",
	RectMediumO3:     "rect_medium_o3",
	RectMediumO4:     "rect_medium_o4",
	CircleSmall:      "circle_small",
	OctagonSmall:     "octagon_small",
	TrapezoidSmall:   "trapezoid_small",
	TrapezoidSmallO2: "trapezoid_small_o2",

	SquareLarge:      "square_large",
	SquareLargeO2:    "square_large_o2",
	SquareLargeO3:    "square_large_o3",
	SquarePillared:   "square_pillared",
	SquarePillaredO2: "square_pillared_o2",
	SquarePillaredO3: "square_pillared_o3",
	RectLarge:        "rect_large",
	RectLargeO2:      "rect_large_o2",
	RectLargeO3:      "rect_large_o3",
	RectLargeO4:      "rect_large_o4",
	RectHall:         "rect_hall",
	RectHallO2:       "rect_hall_o2",
	RectHallO3:       "rect_hall_o3",
	RectHallO4:       "rect_hall_o4",
	CircleLarge:      "circle_large",
	OctagonLarge:     "octagon_large",
	TrapezoidLarge:   "trapezoid_large",
	TrapezoidLargeO2: "trapezoid_large_o2",
}

// families lists the orientation variants of multi-orientation chambers in
// the order placement tries them.
var families = map[ID][]ID{
	SquareSmall:    {SquareSmall, SquareSmallO2, SquareSmallO3},
	SquareMedium:   {SquareMedium, SquareMediumO2, SquareMediumO3},
	RectSmall:      {RectSmall, RectSmallO2, RectSmallO3, RectSmallO4},
	RectMedium:     {RectMedium, RectMediumO2, RectMediumO3, RectMediumO4},
	TrapezoidSmall: {TrapezoidSmall, TrapezoidSmallO2},
	SquareLarge:    {SquareLarge, SquareLargeO2, SquareLargeO3},
	SquarePillared: {SquarePillared, SquarePillaredO2, SquarePillaredO3},
	RectLarge:      {RectLarge, RectLargeO2, RectLargeO3, RectLargeO4},
	RectHall:       {RectHall, RectHallO2, RectHallO3, RectHallO4},
	TrapezoidLarge: {TrapezoidLarge, TrapezoidLargeO2},
}

// base maps every variant back to the first member of its family.
var base = func() map[ID]ID {
	m := make(map[ID]ID)
	for head, members := range families {
		for _, v := range members {
			m[v] = head
		}
	}
	return m
}()

func (id ID) String() string {
	if id < 0 || id >= numIDs {
		return fmt.Sprintf("shape(%d)", int(id))
	}
	return idNames[id]
}

// Valid reports whether id names a catalog entry.
func (id ID) Valid() bool {
	return id >= 0 && id < numIDs
}

// Lookup finds a shape by its String name, as produced by the weight tables.
func Lookup(name string) (ID, bool) {
	for i, n := range idNames {
		if n == name {
			return ID(i), true
		}
	}
	return 0, false
}

// Entrances returns start1..start10 in order.
func Entrances() []ID {
	out := make([]ID, 0, 10)
	for id := Start1; id <= Start10; id++ {
		out = append(out, id)
	}
	return out
}

// All returns every catalog ID.
func All() []ID {
	out := make([]ID, numIDs)
	for i := range out {
		out[i] = ID(i)
	}
	return out
}

// Family returns the orientation variants to try for id, starting with the
// family head. Single-orientation shapes return just themselves.
func Family(id ID) []ID {
	if head, ok := base[id]; ok {
		return families[head]
	}
	return []ID{id}
}

// Base returns the family head of a variant.
func Base(id ID) ID {
	if head, ok := base[id]; ok {
		return head
	}
	return id
}

// ClassOf reports which class id belongs to.
func ClassOf(id ID) Class {
	switch {
	case id >= Start1 && id <= Start10:
		return ClassEntrance
	case id == StairUp || id == StairDown:
		return ClassStair
	case id >= Straight && id <= TurnRight:
		return ClassPassage
	case id >= SquareSmall && id <= TrapezoidSmallO2:
		return ClassSmallChamber
	default:
		return ClassLargeChamber
	}
}

// IsChamber reports whether id is a small or large chamber.
func IsChamber(id ID) bool {
	c := ClassOf(id)
	return c == ClassSmallChamber || c == ClassLargeChamber
}

// IsSized reports whether the shape's width follows the size argument.
func IsSized(id ID) bool {
	switch id {
	case Straight, SideDoorRight, SideDoorLeft, SidePassageRight, SidePassageLeft:
		return true
	}
	return false
}
