package world

// Direction is a cardinal heading on a floor. Down is +y, Right is +x.
type Direction int

const (
	Down Direction = iota
	Up
	Left
	Right
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Down:
		return Up
	case Up:
		return Down
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Delta returns the one-step (dx, dy) offset of the direction.
func (d Direction) Delta() (int, int) {
	return d.Rotate(0, 1)
}

// Rotate maps an offset expressed in the canonical down-facing frame onto
// this direction. In the canonical frame dy runs forward and the
// traveller's right hand points at -dx.
func (d Direction) Rotate(dx, dy int) (int, int) {
	switch d {
	case Up:
		return -dx, -dy
	case Left:
		return -dy, dx
	case Right:
		return dy, -dx
	default:
		return dx, dy
	}
}

// AllDirections returns the four directions in neighbour-inspection order.
func AllDirections() []Direction {
	return []Direction{Up, Down, Left, Right}
}
