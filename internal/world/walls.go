package world

// FinishWalls turns every Blank cell that has an in-bounds 8-neighbour which
// is neither Blank nor Wall into Wall. The trigger set does not change while
// the pass runs, so traversal order is irrelevant and a second pass is a
// no-op. It returns the number of walls added.
func FinishWalls(g *Grid) int {
	added := 0
	for f := 0; f < g.floors; f++ {
		for x := 0; x < g.width; x++ {
			for y := 0; y < g.depth; y++ {
				p := Point{Floor: f, X: x, Y: y}
				if g.At(p) != Blank {
					continue
				}
				if g.touchesFeature(p) {
					g.Set(p, Wall)
					added++
				}
			}
		}
	}
	return added
}

func (g *Grid) touchesFeature(p Point) bool {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := p.Add(dx, dy)
			if !g.InBounds(n) {
				continue
			}
			if k := g.At(n); k != Blank && k != Wall {
				return true
			}
		}
	}
	return false
}
