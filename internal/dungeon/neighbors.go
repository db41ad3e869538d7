package dungeon

import "github.com/bmalloy0/MapGenerator/internal/world"

// heading returns the direction to grow from a sentinel: away from its one
// feature neighbour. It fails when the sentinel touches no feature or more
// than one.
func heading(g *world.Grid, p world.Point) (world.Direction, bool) {
	var (
		dir   world.Direction
		found int
	)
	for _, d := range world.AllDirections() {
		if g.At(p.Step(d)).IsFeature() {
			dir = d.Opposite()
			found++
		}
	}
	return dir, found == 1
}

// maxWidth is the widest passage the parent opening allows: the parent
// shape's shorter run through the cell behind p, less a cell on each side.
func (r *run) maxWidth(p world.Point, dir world.Direction) int {
	parent := p.Step(dir.Opposite())
	fx, fy := dir.Delta()
	lx, ly := dir.Rotate(1, 0)
	return max(1, min(r.shapeRun(parent, lx, ly), r.shapeRun(parent, fx, fy))-2)
}

// shapeRun counts the contiguous feature cells through from along (dx, dy) in
// both directions, keeping to cells of the placement that owns from. The
// anchor a shape grew from has no owner, so the run stops there instead of
// carrying on into the shape before it.
func (r *run) shapeRun(from world.Point, dx, dy int) int {
	owner, owned := r.owner[from]
	same := func(q world.Point) bool {
		if !r.grid.At(q).IsFeature() {
			return false
		}
		o, ok := r.owner[q]
		return ok == owned && o == owner
	}

	n := 1
	for q := from.Add(dx, dy); same(q); q = q.Add(dx, dy) {
		n++
	}
	for q := from.Add(-dx, -dy); same(q); q = q.Add(-dx, -dy) {
		n++
	}
	return n
}
