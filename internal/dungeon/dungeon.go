// Package dungeon grows multi-floor layouts from an entrance by repeatedly
// expanding the first unresolved frontier cell until none remain.
package dungeon

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bmalloy0/MapGenerator/internal/dice"
	"github.com/bmalloy0/MapGenerator/internal/gamedata"
	"github.com/bmalloy0/MapGenerator/internal/logger"
	"github.com/bmalloy0/MapGenerator/internal/placement"
	"github.com/bmalloy0/MapGenerator/internal/shapes"
	"github.com/bmalloy0/MapGenerator/internal/telemetry"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

// DefaultMaxAttempts bounds the proposals spent on one frontier cell.
const DefaultMaxAttempts = 100

var (
	// ErrBadOptions is returned by New for unusable options.
	ErrBadOptions = errors.New("dungeon: bad options")
	// ErrRunaway is returned if the frontier outlives the iteration cap.
	ErrRunaway = errors.New("dungeon: frontier did not drain")
)

// Options configures a Generator.
type Options struct {
	Floors, Width, Depth int

	// Seed for the default roll source. 0 picks a time-based seed.
	Seed int64

	// MaxAttempts per frontier cell. 0 means DefaultMaxAttempts.
	MaxAttempts int

	// SingleEntrance places an entrance on the first floor only. The roll
	// sequence then matches a one-entrance layout of the same seed, and the
	// upper floors stay empty.
	SingleEntrance bool

	// Tables replaces the embedded weight tables when non-nil.
	Tables *gamedata.Tables

	// Rolls replaces the seeded roll source when non-nil.
	Rolls dice.Roller

	// Tracer records generation spans. nil uses the global provider.
	Tracer trace.Tracer
}

// Placement records one committed shape.
type Placement struct {
	ID     shapes.ID
	Anchor world.Point
	Dir    world.Direction
	Size   int
	// ExitIntent is the rolled exit count of a chamber. It is recorded only.
	ExitIntent int
}

// Stats summarizes a run.
type Stats struct {
	ByClass     map[shapes.Class]int
	DeadEnds    int
	Abandoned   int
	BorderSeals int
	FalseDoors  int
	Attempts    int
	ExitIntent  int
	Iterations  int
}

// Placements returns the total number of committed shapes.
func (s Stats) Placements() int {
	n := 0
	for _, c := range s.ByClass {
		n += c
	}
	return n
}

// Result is a finished layout.
type Result struct {
	RunID      uuid.UUID
	Seed       int64
	Grid       *world.Grid
	Placements []Placement
	Stats      Stats
}

// Generator produces layouts. It is not safe for concurrent use.
type Generator struct {
	floors, width, depth int
	seed                 int64
	maxAttempts          int
	singleEntrance       bool

	rolls  dice.Roller
	tables *gamedata.Tables
	placer *placement.Placer
	tracer trace.Tracer

	entrance     *gamedata.Table
	passageKind  *gamedata.Table
	chamberKind  *gamedata.Table
	normExits    *gamedata.Table
	largeExits   *gamedata.Table
	passageWidth *gamedata.Table
	doorStyle    *gamedata.Table
	doorBeyond   *gamedata.Table
	stairKind    *gamedata.Table
}

// New checks opts and prepares a Generator.
func New(opts Options) (*Generator, error) {
	if opts.Floors < world.MinFloors || opts.Width < world.MinWidth || opts.Depth < world.MinDepth {
		return nil, fmt.Errorf("%w: %d floors of %dx%d, need at least %d of %dx%d", ErrBadOptions,
			opts.Floors, opts.Width, opts.Depth, world.MinFloors, world.MinWidth, world.MinDepth)
	}
	if opts.MaxAttempts < 0 {
		return nil, fmt.Errorf("%w: max attempts %d", ErrBadOptions, opts.MaxAttempts)
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	tables := opts.Tables
	if tables == nil {
		var err error
		if tables, err = gamedata.LoadTables(); err != nil {
			return nil, fmt.Errorf("failed to load tables: %w", err)
		}
	}
	if err := checkResults(tables); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadOptions, err)
	}

	seed := opts.Seed
	rolls := opts.Rolls
	if rolls == nil {
		r := dice.NewRand(opts.Seed)
		seed, rolls = r.Seed(), r
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.Tracer("dungeon")
	}

	return &Generator{
		floors:         opts.Floors,
		width:          opts.Width,
		depth:          opts.Depth,
		seed:           seed,
		maxAttempts:    opts.MaxAttempts,
		singleEntrance: opts.SingleEntrance,
		rolls:          rolls,
		tables:         tables,
		placer:         placement.NewPlacer(rolls, tables),
		tracer:         tracer,
		entrance:       tables.Get(gamedata.TableEntrance),
		passageKind:    tables.Get(gamedata.TablePassageKind),
		chamberKind:    tables.Get(gamedata.TableChamberKind),
		normExits:      tables.Get(gamedata.TableNormExits),
		largeExits:     tables.Get(gamedata.TableLargeExits),
		passageWidth:   tables.Get(gamedata.TablePassageWidth),
		doorStyle:      tables.Get(gamedata.TableDoorStyle),
		doorBeyond:     tables.Get(gamedata.TableDoorBeyond),
		stairKind:      tables.Get(gamedata.TableStairKind),
	}, nil
}

// Seed returns the seed of the roll source.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate runs one layout to completion: an entrance on every floor, frontier
// expansion until no sentinel remains, then the wall pass.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	ctx, span := g.tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()
	r := g.newRun()

	r.placeEntrances(ctx)

	limit := g.floors * g.width * g.depth
	for {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cancelled")
			return nil, err
		}
		p, ok := world.ScanFrontier(r.grid)
		if !ok {
			break
		}
		if r.res.Stats.Iterations >= limit {
			span.SetStatus(codes.Error, "runaway")
			return nil, fmt.Errorf("%w after %d iterations", ErrRunaway, limit)
		}
		r.res.Stats.Iterations++
		r.expand(p)
	}

	_, wallSpan := g.tracer.Start(ctx, "dungeon.walls")
	walls := world.FinishWalls(r.grid)
	wallSpan.SetAttributes(attribute.Int("dungeon.walls_added", walls))
	wallSpan.End()

	stats := r.res.Stats
	span.SetAttributes(
		attribute.String("dungeon.run_id", r.res.RunID.String()),
		attribute.Int64("dungeon.seed", g.seed),
		attribute.Int("dungeon.floors", g.floors),
		attribute.Int("dungeon.width", g.width),
		attribute.Int("dungeon.depth", g.depth),
		attribute.Int("dungeon.placements", stats.Placements()),
		attribute.Int("dungeon.dead_ends", stats.DeadEnds),
		attribute.Int("dungeon.attempts", stats.Attempts),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	logger.Info("layout generated",
		"run_id", r.res.RunID,
		"seed", g.seed,
		"placements", stats.Placements(),
		"dead_ends", stats.DeadEnds,
		"abandoned", stats.Abandoned,
		"attempts", stats.Attempts,
		"duration", time.Since(startTime),
	)
	return r.res, nil
}

// checkResults makes sure every table result names something the driver can
// act on.
func checkResults(tables *gamedata.Tables) error {
	notEntrance := func(id shapes.ID) bool { return shapes.ClassOf(id) != shapes.ClassEntrance }

	checks := []struct {
		table string
		allow func(shapes.ID) bool
		extra []string
	}{
		{gamedata.TableEntrance, func(id shapes.ID) bool { return shapes.ClassOf(id) == shapes.ClassEntrance }, nil},
		{gamedata.TablePassageKind, notEntrance, []string{resultChamber, resultStair}},
		{gamedata.TableChamberKind, shapes.IsChamber, nil},
		{gamedata.TableDoorBeyond, notEntrance, []string{resultChamber, resultStair, resultFalseDoor}},
		{gamedata.TableStairKind, func(id shapes.ID) bool { return shapes.ClassOf(id) == shapes.ClassStair }, nil},
		{gamedata.TableDeadEndSecret, func(shapes.ID) bool { return false }, []string{resultSecret, "none"}},
	}
	for _, c := range checks {
		for _, res := range tables.Get(c.table).Results() {
			if id, ok := shapes.Lookup(res); ok && c.allow(id) {
				continue
			}
			if !slices.Contains(c.extra, res) {
				return fmt.Errorf("table %s: unknown result %q", c.table, res)
			}
		}
	}

	for _, res := range tables.Get(gamedata.TableDoorStyle).Results() {
		if k, ok := world.ParseTileKind(res); !ok || !k.IsDoor() {
			return fmt.Errorf("table %s: %q is not a door style", gamedata.TableDoorStyle, res)
		}
	}
	for _, name := range []string{gamedata.TableNormExits, gamedata.TableLargeExits, gamedata.TablePassageWidth} {
		for _, res := range tables.Get(name).Results() {
			n, err := strconv.Atoi(res)
			if err != nil || n < 0 || (name == gamedata.TablePassageWidth && n < 1) {
				return fmt.Errorf("table %s: %q is not a valid count", name, res)
			}
		}
	}
	return nil
}
