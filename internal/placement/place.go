package placement

import (
	"github.com/bmalloy0/MapGenerator/internal/dice"
	"github.com/bmalloy0/MapGenerator/internal/gamedata"
	"github.com/bmalloy0/MapGenerator/internal/shapes"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

// secretResult is the dead_end_secret outcome that leaves a secret door.
const secretResult = "secret"

// Placer commits validated shapes to a grid.
type Placer struct {
	Rolls dice.Roller
	// Secret is the dead_end_secret table. When nil, maybe-secret exits
	// never open.
	Secret *gamedata.Table
}

// NewPlacer creates a Placer rolling maybe-secret exits on tables.
func NewPlacer(rolls dice.Roller, tables *gamedata.Tables) *Placer {
	return &Placer{Rolls: rolls, Secret: tables.Get(gamedata.TableDeadEndSecret)}
}

// Place writes anchorKind at the anchor, then the footprint, then a sentinel
// at each exit, and returns the sentinel positions in exit order. It must
// only be called with a tuple Validate has just accepted; entrances are the
// exception and are placed on a fresh floor without validation.
func (pl *Placer) Place(g *world.Grid, id shapes.ID, anchor world.Point, dir world.Direction, size int, anchorKind world.TileKind) []world.Point {
	fp := shapes.Realize(id, anchor, dir, size)

	g.Set(anchor, anchorKind)
	for _, c := range fp.Cells {
		g.Set(c.P, c.Kind)
	}

	sentinels := make([]world.Point, 0, len(fp.Exits))
	for _, e := range fp.Exits {
		if g.At(e.P) != world.Blank || !g.InBounds(e.P) {
			continue
		}
		if e.Kind == shapes.ExitMaybeSecret && !pl.secret() {
			continue
		}
		g.Set(e.P, e.Kind.Sentinel())
		sentinels = append(sentinels, e.P)
	}
	return sentinels
}

func (pl *Placer) secret() bool {
	if pl.Secret == nil {
		return false
	}
	return pl.Secret.Roll(pl.Rolls) == secretResult
}
