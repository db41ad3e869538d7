// Package placement checks shapes against the grid and commits them.
package placement

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/bmalloy0/MapGenerator/internal/shapes"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

var (
	// ErrOutOfBounds is returned when a footprint or its halo leaves the grid.
	ErrOutOfBounds = errors.New("placement: out of bounds")
	// ErrCollision is returned when a footprint or its halo overlaps a used cell.
	ErrCollision = errors.New("placement: collision")
	// ErrInvalid is returned when no orientation of a family fits.
	ErrInvalid = errors.New("placement: no orientation fits")
)

// Validate reports whether id fits at anchor facing dir. Every footprint cell
// and its one-tile ring, diagonals included, must be in bounds and Blank; the
// anchor itself is exempt. Families are tried in order and the first variant
// that fits is returned. The grid is never modified.
func Validate(g *world.Grid, id shapes.ID, anchor world.Point, dir world.Direction, size int) (shapes.ID, error) {
	family := shapes.Family(id)
	if len(family) == 1 {
		if err := check(g, shapes.Realize(id, anchor, dir, size)); err != nil {
			return id, err
		}
		return id, nil
	}

	errs := make([]error, 0, len(family))
	for _, v := range family {
		err := check(g, shapes.Realize(v, anchor, dir, size))
		if err == nil {
			return v, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", v, err))
	}
	return id, fmt.Errorf("%w: %s at %v facing %s: %w", ErrInvalid, id, anchor, dir, errors.Join(errs...))
}

// Region returns the footprint cells plus their 8-way halo.
func Region(fp shapes.Footprint) mapset.Set[world.Point] {
	region := mapset.New[world.Point]()
	for _, c := range fp.Cells {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				region.Put(c.P.Add(dx, dy))
			}
		}
	}
	return region
}

// check reports bounds before collisions so a shape that does both always
// fails the same way.
func check(g *world.Grid, fp shapes.Footprint) error {
	region := Region(fp)

	var outside, used *world.Point
	region.Each(func(p world.Point) {
		if p == fp.Anchor {
			return
		}
		if !g.InBounds(p) {
			if outside == nil {
				outside = &p
			}
			return
		}
		if used == nil && g.At(p) != world.Blank {
			used = &p
		}
	})

	switch {
	case outside != nil:
		return fmt.Errorf("%w: %v", ErrOutOfBounds, *outside)
	case used != nil:
		return fmt.Errorf("%w: %v holds %s", ErrCollision, *used, g.At(*used))
	}
	return nil
}
