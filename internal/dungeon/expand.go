package dungeon

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bmalloy0/MapGenerator/internal/logger"
	"github.com/bmalloy0/MapGenerator/internal/placement"
	"github.com/bmalloy0/MapGenerator/internal/shapes"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

// Table results that are categories rather than shape names.
const (
	resultChamber   = "chamber"
	resultStair     = "stair"
	resultFalseDoor = "false_door"
	resultSecret    = "secret"
)

// run is the state of one Generate call.
type run struct {
	*Generator
	grid *world.Grid
	res  *Result

	// owner maps each committed footprint cell to its index in
	// res.Placements. Anchors are not footprint cells and have no owner.
	owner map[world.Point]int
}

func (g *Generator) newRun() *run {
	grid := world.NewGrid(g.floors, g.width, g.depth)
	return &run{
		Generator: g,
		grid:      grid,
		res: &Result{
			RunID: uuid.New(),
			Seed:  g.seed,
			Grid:  grid,
			Stats: Stats{ByClass: make(map[shapes.Class]int)},
		},
		owner: make(map[world.Point]int),
	}
}

// placeEntrances rolls an entrance for every floor, lowest first, and places
// it facing Down from the middle of the top edge. With singleEntrance only
// the first floor gets one.
func (r *run) placeEntrances(ctx context.Context) {
	_, span := r.tracer.Start(ctx, "dungeon.floor_entrances")
	defer span.End()

	floors := r.floors
	if r.singleEntrance {
		floors = 1
	}
	for f := 0; f < floors; f++ {
		id, _ := shapes.Lookup(r.entrance.Roll(r.rolls))
		anchor := world.Point{Floor: f, X: r.width / 2, Y: 0}
		r.commit(proposal{id: id}, id, anchor, world.Down, world.Enter)
	}
	span.SetAttributes(attribute.Int("dungeon.entrances", floors))
}

// expand resolves the frontier cell at p. Every path leaves p holding a
// non-sentinel kind.
func (r *run) expand(p world.Point) {
	kind := r.grid.At(p)
	if r.grid.NearBorder(p, 1) {
		r.sealBorder(p, kind)
		return
	}
	switch kind {
	case world.PassageInProgress:
		r.expandPassage(p)
	case world.Door, world.DoorSecret:
		r.expandDoor(p, kind)
	}
}

// sealBorder terminates a sentinel too close to the floor edge to grow.
func (r *run) sealBorder(p world.Point, kind world.TileKind) {
	r.res.Stats.BorderSeals++
	switch kind {
	case world.PassageInProgress:
		r.grid.Set(p, world.Passage)
	case world.Door:
		r.grid.Set(p, world.DoorWood)
	}
}

func (r *run) expandPassage(p world.Point) {
	dir, ok := heading(r.grid, p)
	if !ok {
		r.res.Stats.Abandoned++
		r.deadEnd(p, world.Wall)
		return
	}
	maxWidth := r.maxWidth(p, dir)

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		prop := r.proposePassage(maxWidth)
		if r.try(prop, p, dir, world.Passage) {
			return
		}
	}
	r.deadEnd(p, world.Wall)
}

func (r *run) expandDoor(p world.Point, kind world.TileKind) {
	style := kind
	if kind == world.Door {
		style = r.rollDoorStyle()
	}

	dir, ok := heading(r.grid, p)
	if !ok {
		r.res.Stats.Abandoned++
		r.deadEnd(p, style)
		return
	}
	maxWidth := r.maxWidth(p, dir)

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		prop, falseDoor := r.proposeBeyondDoor(maxWidth)
		if falseDoor {
			r.res.Stats.Attempts++
			if !isSecret(style) {
				style = world.FalseDoor
				r.res.Stats.FalseDoors++
			}
			r.grid.Set(p, style)
			return
		}
		if r.try(prop, p, dir, style) {
			return
		}
	}
	r.deadEnd(p, style)
}

// try validates one proposal at p and commits it if it fits.
func (r *run) try(prop proposal, p world.Point, dir world.Direction, anchorKind world.TileKind) bool {
	r.res.Stats.Attempts++
	id, err := placement.Validate(r.grid, prop.id, p, dir, prop.size)
	if err != nil {
		logger.Debug("proposal rejected", "shape", prop.id, "at", p, "dir", dir, "size", prop.size, "reason", err)
		return false
	}
	r.commit(prop, id, p, dir, anchorKind)
	return true
}

func (r *run) commit(prop proposal, id shapes.ID, p world.Point, dir world.Direction, anchorKind world.TileKind) {
	sentinels := r.placer.Place(r.grid, id, p, dir, prop.size, anchorKind)
	for _, c := range shapes.Realize(id, p, dir, prop.size).Cells {
		r.owner[c.P] = len(r.res.Placements)
	}
	r.res.Placements = append(r.res.Placements, Placement{
		ID:         id,
		Anchor:     p,
		Dir:        dir,
		Size:       prop.size,
		ExitIntent: prop.exitIntent,
	})
	r.res.Stats.ByClass[shapes.ClassOf(id)]++
	r.res.Stats.ExitIntent += prop.exitIntent
	logger.Debug("shape placed", "shape", id, "at", p, "dir", dir, "size", prop.size, "exits", len(sentinels))
}

// deadEnd terminates a sentinel that could not grow.
func (r *run) deadEnd(p world.Point, kind world.TileKind) {
	r.res.Stats.DeadEnds++
	r.grid.Set(p, kind)
}

func isSecret(k world.TileKind) bool {
	return k == world.DoorSecret || k == world.DoorSecretLocked
}
