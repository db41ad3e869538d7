package world

// ScanFrontier returns the first frontier sentinel, scanning floors low to
// high, then x ascending, then y ascending. A SecretDoorPending sentinel is
// normalized to DoorSecret in place before it is returned. The second result
// is false once the grid holds no sentinels.
func ScanFrontier(g *Grid) (Point, bool) {
	for i, k := range g.cells {
		if !k.IsSentinel() {
			continue
		}
		if k == SecretDoorPending {
			g.cells[i] = DoorSecret
		}
		return g.pointAt(i), true
	}
	return Point{}, false
}

// pointAt inverts index. The flat layout already follows scan order.
func (g *Grid) pointAt(i int) Point {
	y := i % g.depth
	i /= g.depth
	return Point{Floor: i / g.width, X: i % g.width, Y: y}
}

// CountSentinels returns the number of unresolved frontier cells.
func CountSentinels(g *Grid) int {
	n := 0
	for _, k := range g.cells {
		if k.IsSentinel() {
			n++
		}
	}
	return n
}
