package dungeon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"github.com/bmalloy0/MapGenerator/internal/dice"
	"github.com/bmalloy0/MapGenerator/internal/gamedata"
	"github.com/bmalloy0/MapGenerator/internal/shapes"
	"github.com/bmalloy0/MapGenerator/internal/telemetry"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

func newScripted(t *testing.T, maxAttempts int, rolls ...int) (*run, *dice.Script) {
	t.Helper()
	script := dice.NewScript(rolls...)
	g, err := New(Options{
		Floors:      1,
		Width:       25,
		Depth:       25,
		Rolls:       script,
		MaxAttempts: maxAttempts,
		Tracer:      telemetry.NoopTracer(),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g.newRun(), script
}

// stub puts a passage cell with a sentinel below it, as a placed exit would be.
func stub(r *run, kind world.TileKind) world.Point {
	p := world.Point{X: 12, Y: 5}
	r.grid.Set(p.Add(0, -1), world.Passage)
	r.grid.Set(p, kind)
	return p
}

func TestNewBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"narrow", Options{Floors: 1, Width: 24, Depth: 25}},
		{"shallow", Options{Floors: 1, Width: 25, Depth: 2}},
		{"no floors", Options{Floors: 0, Width: 25, Depth: 25}},
		{"negative attempts", Options{Floors: 1, Width: 25, Depth: 25, MaxAttempts: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); !errors.Is(err, ErrBadOptions) {
				t.Errorf("New() = %v, want ErrBadOptions", err)
			}
		})
	}
}

func TestNewRejectsUnknownResults(t *testing.T) {
	tests := []struct {
		table  string
		result string
	}{
		{gamedata.TablePassageKind, "spiral"},
		{gamedata.TableChamberKind, "straight"},
		{gamedata.TableEntrance, "square_small"},
		{gamedata.TableDoorStyle, "room"},
		{gamedata.TablePassageWidth, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			file, err := gamedata.Load[gamedata.TablesFile]("tables.yaml")
			if err != nil {
				t.Fatal(err)
			}
			file.Tables[tt.table].Default = tt.result
			tables, err := gamedata.NewTables(file)
			if err != nil {
				t.Fatal(err)
			}

			_, err = New(Options{Floors: 1, Width: 25, Depth: 25, Tables: tables})
			if !errors.Is(err, ErrBadOptions) {
				t.Errorf("New() = %v, want ErrBadOptions", err)
			}
		})
	}
}

func TestStart1Placement(t *testing.T) {
	r, script := newScripted(t, 0, 1)
	r.placeEntrances(context.Background())

	if script.Remaining() != 0 {
		t.Errorf("%d rolls unused", script.Remaining())
	}
	exits := mapset.New[world.Point]()
	exits.Put(world.Point{X: 10, Y: 3})
	exits.Put(world.Point{X: 15, Y: 3})
	exits.Put(world.Point{X: 12, Y: 5})

	for x := 0; x < 25; x++ {
		for y := 0; y < 25; y++ {
			p := world.Point{X: x, Y: y}
			want := world.Blank
			switch {
			case y == 0 && (x == 12 || x == 13):
				want = world.Enter
			case x >= 11 && x < 15 && y >= 1 && y < 5:
				want = world.Room
			case exits.Has(p):
				want = world.PassageInProgress
			}
			if got := r.grid.At(p); got != want {
				t.Errorf("cell %v = %s, want %s", p, got, want)
			}
		}
	}
	if len(r.res.Placements) != 1 || r.res.Placements[0].ID != shapes.Start1 {
		t.Errorf("placements = %+v, want one start1", r.res.Placements)
	}
}

func TestEntrancePerFloor(t *testing.T) {
	script := dice.NewScript(1, 6)
	g, err := New(Options{Floors: 2, Width: 25, Depth: 25, Rolls: script})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r := g.newRun()
	r.placeEntrances(context.Background())

	if k := r.grid.At(world.Point{Floor: 0, X: 13, Y: 0}); k != world.Enter {
		t.Errorf("floor 0 second entrance tile = %s, want enter", k)
	}
	if k := r.grid.At(world.Point{Floor: 1, X: 13, Y: 0}); k != world.Blank {
		t.Errorf("floor 1 start6 has a single entrance tile, got %s beside it", k)
	}
	if k := r.grid.At(world.Point{Floor: 1, X: 12, Y: 4}); k != world.PassageInProgress {
		t.Errorf("floor 1 exit = %s, want passage_in_progress", k)
	}
}

func TestExpandStraight(t *testing.T) {
	r, script := newScripted(t, 0, 1, 1)
	p := stub(r, world.PassageInProgress)

	r.expand(p)

	if k := r.grid.At(p); k != world.Passage {
		t.Errorf("anchor = %s, want passage", k)
	}
	for y := 6; y <= 11; y++ {
		if k := r.grid.At(world.Point{X: 12, Y: y}); k != world.Passage {
			t.Errorf("cell 12,%d = %s, want passage", y, k)
		}
	}
	if k := r.grid.At(world.Point{X: 12, Y: 12}); k != world.PassageInProgress {
		t.Errorf("far exit = %s, want passage_in_progress", k)
	}
	if script.Remaining() != 0 {
		t.Errorf("%d rolls unused", script.Remaining())
	}
}

func TestExpandChamber(t *testing.T) {
	r, _ := newScripted(t, 0, 15, 1, 13)
	p := stub(r, world.PassageInProgress)

	r.expand(p)

	for x := 11; x <= 14; x++ {
		for y := 6; y <= 9; y++ {
			if k := r.grid.At(world.Point{X: x, Y: y}); k != world.Room {
				t.Errorf("cell %d,%d = %s, want room", x, y, k)
			}
		}
	}
	if k := r.grid.At(world.Point{X: 12, Y: 10}); k != world.Door {
		t.Errorf("far exit = %s, want door", k)
	}
	if r.res.Stats.ExitIntent != 1 {
		t.Errorf("ExitIntent = %d, want 1", r.res.Stats.ExitIntent)
	}
	if got := r.res.Placements[0].ID; got != shapes.SquareSmall {
		t.Errorf("placed %s, want square_small", got)
	}
}

func TestExpandWidthClamp(t *testing.T) {
	r, _ := newScripted(t, 0, 1, 17)
	// A 6×5 room behind the sentinel allows three lanes.
	for x := 10; x <= 15; x++ {
		for y := 0; y <= 4; y++ {
			r.grid.Set(world.Point{X: x, Y: y}, world.Room)
		}
	}
	p := world.Point{X: 12, Y: 5}
	r.grid.Set(p, world.PassageInProgress)

	r.expand(p)

	if got := r.res.Placements[0].Size; got != 3 {
		t.Errorf("size = %d, want 3", got)
	}
	for x := 11; x <= 13; x++ {
		if k := r.grid.At(world.Point{X: x, Y: 6}); k != world.Passage {
			t.Errorf("cell %d,6 = %s, want passage", x, k)
		}
	}
}

func TestWidthClampStaysInParentShape(t *testing.T) {
	r, script := newScripted(t, 0, 1, 17)
	// A passage runs down into a 6×4 room; the passage and its anchor are in
	// line with the room's far exit.
	for y := 1; y <= 5; y++ {
		r.grid.Set(world.Point{X: 12, Y: y}, world.Passage)
	}
	anchor := world.Point{X: 12, Y: 5}
	r.commit(proposal{id: shapes.RectSmallO2}, shapes.RectSmallO2, anchor, world.Down, world.Passage)

	p := world.Point{X: 12, Y: 10}
	if k := r.grid.At(p); k != world.PassageInProgress {
		t.Fatalf("far exit = %s, want passage_in_progress", k)
	}
	if got := r.maxWidth(p, world.Down); got != 2 {
		t.Errorf("maxWidth = %d, want 2 from the room's depth of 4", got)
	}

	r.expand(p)

	if got := r.res.Placements[1].Size; got != 2 {
		t.Errorf("size = %d, want the 8-wide roll cut to 2", got)
	}
	if script.Remaining() != 0 {
		t.Errorf("%d rolls unused", script.Remaining())
	}
}

func TestExpandDoor(t *testing.T) {
	tests := []struct {
		name       string
		kind       world.TileKind
		rolls      []int
		want       world.TileKind
		falseDoors int
		placed     bool
	}{
		{"false door", world.Door, []int{1, 9}, world.FalseDoor, 1, false},
		{"secret stays secret", world.DoorSecret, []int{9}, world.DoorSecret, 0, false},
		{"stone door to t-intersection", world.Door, []int{12, 1}, world.DoorStone, 0, true},
		{"locked secret to stair", world.Door, []int{20, 8, 1}, world.DoorSecretLocked, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, script := newScripted(t, 0, tt.rolls...)
			p := stub(r, tt.kind)

			r.expand(p)

			if k := r.grid.At(p); k != tt.want {
				t.Errorf("door = %s, want %s", k, tt.want)
			}
			if r.res.Stats.FalseDoors != tt.falseDoors {
				t.Errorf("FalseDoors = %d, want %d", r.res.Stats.FalseDoors, tt.falseDoors)
			}
			if placed := len(r.res.Placements) > 0; placed != tt.placed {
				t.Errorf("placed = %v, want %v", placed, tt.placed)
			}
			if script.Remaining() != 0 {
				t.Errorf("%d rolls unused", script.Remaining())
			}
		})
	}
}

func TestTIntersectionBehindDoor(t *testing.T) {
	r, _ := newScripted(t, 0, 12, 1)
	p := stub(r, world.Door)

	r.expand(p)

	for x := 10; x <= 14; x++ {
		if k := r.grid.At(world.Point{X: x, Y: 10}); k != world.Passage {
			t.Errorf("crossbar %d,10 = %s, want passage", x, k)
		}
	}
	for _, e := range []world.Point{{X: 9, Y: 10}, {X: 15, Y: 10}} {
		if k := r.grid.At(e); k != world.PassageInProgress {
			t.Errorf("exit %v = %s, want passage_in_progress", e, k)
		}
	}
}

func TestBorderSeal(t *testing.T) {
	tests := []struct {
		kind world.TileKind
		want world.TileKind
	}{
		{world.PassageInProgress, world.Passage},
		{world.Door, world.DoorWood},
		{world.DoorSecret, world.DoorSecret},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			r, _ := newScripted(t, 0)
			p := world.Point{X: 1, Y: 10}
			r.grid.Set(world.Point{X: 2, Y: 10}, world.Passage)
			r.grid.Set(p, tt.kind)

			r.expand(p)

			if k := r.grid.At(p); k != tt.want {
				t.Errorf("sealed %s = %s, want %s", tt.kind, k, tt.want)
			}
			if r.res.Stats.BorderSeals != 1 {
				t.Errorf("BorderSeals = %d, want 1", r.res.Stats.BorderSeals)
			}
		})
	}
}

func TestAbandonedSentinel(t *testing.T) {
	tests := []struct {
		name  string
		kind  world.TileKind
		rolls []int
		want  world.TileKind
	}{
		{"passage walls off", world.PassageInProgress, nil, world.Wall},
		{"door keeps its style", world.Door, []int{14}, world.DoorIron},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newScripted(t, 0, tt.rolls...)
			p := stub(r, tt.kind)
			r.grid.Set(p.Add(-1, 0), world.Room)

			r.expand(p)

			if k := r.grid.At(p); k != tt.want {
				t.Errorf("abandoned sentinel = %s, want %s", k, tt.want)
			}
			if r.res.Stats.Abandoned != 1 {
				t.Errorf("Abandoned = %d, want 1", r.res.Stats.Abandoned)
			}
		})
	}
}

func TestRetryExhaustion(t *testing.T) {
	r, script := newScripted(t, 2, 1, 1, 5)
	p := stub(r, world.PassageInProgress)
	r.grid.Set(world.Point{X: 12, Y: 7}, world.Wall)

	r.expand(p)

	if k := r.grid.At(p); k != world.Wall {
		t.Errorf("exhausted sentinel = %s, want wall", k)
	}
	if r.res.Stats.Attempts != 2 || r.res.Stats.DeadEnds != 1 {
		t.Errorf("Attempts = %d, DeadEnds = %d; want 2, 1", r.res.Stats.Attempts, r.res.Stats.DeadEnds)
	}
	if script.Remaining() != 0 {
		t.Errorf("%d rolls unused", script.Remaining())
	}
}

func passable(k world.TileKind) bool {
	return k != world.Blank && k != world.Wall
}

// checkConnected walks each floor from its entrance tiles and reports any
// open cell the walk cannot reach.
func checkConnected(t *testing.T, grid *world.Grid) {
	t.Helper()
	for f := range grid.Floors() {
		visited := mapset.New[world.Point]()
		var queue []world.Point
		for x := range grid.Width() {
			for y := range grid.Depth() {
				p := world.Point{Floor: f, X: x, Y: y}
				if grid.At(p) == world.Enter {
					visited.Put(p)
					queue = append(queue, p)
				}
			}
		}
		if len(queue) == 0 {
			t.Errorf("floor %d has no entrance", f)
			continue
		}

		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, d := range world.AllDirections() {
				n := p.Step(d)
				if grid.InBounds(n) && passable(grid.At(n)) && !visited.Has(n) {
					visited.Put(n)
					queue = append(queue, n)
				}
			}
		}

		for x := range grid.Width() {
			for y := range grid.Depth() {
				p := world.Point{Floor: f, X: x, Y: y}
				if passable(grid.At(p)) && !visited.Has(p) {
					t.Errorf("cell %v (%s) unreachable from the entrance", p, grid.At(p))
				}
			}
		}
	}
}

func TestGenerateProperties(t *testing.T) {
	dims := []struct{ floors, width, depth int }{
		{1, 25, 25},
		{2, 40, 30},
		{1, 80, 40},
	}

	for _, d := range dims {
		for seed := int64(1); seed <= 6; seed++ {
			name := fmt.Sprintf("%dx%dx%d/seed%d", d.floors, d.width, d.depth, seed)
			t.Run(name, func(t *testing.T) {
				g, err := New(Options{Floors: d.floors, Width: d.width, Depth: d.depth, Seed: seed})
				if err != nil {
					t.Fatalf("New failed: %v", err)
				}
				res, err := g.Generate(context.Background())
				if err != nil {
					t.Fatalf("Generate failed: %v", err)
				}
				grid := res.Grid

				if n := world.CountSentinels(grid); n != 0 {
					t.Errorf("%d sentinels left after generation", n)
				}
				if added := world.FinishWalls(grid.Clone()); added != 0 {
					t.Errorf("second wall pass added %d walls", added)
				}
				if got := res.Stats.Placements(); got != len(res.Placements) {
					t.Errorf("Stats.Placements() = %d, want %d", got, len(res.Placements))
				}
				if got := res.Stats.ByClass[shapes.ClassEntrance]; got != d.floors {
					t.Errorf("%d entrances, want one per floor", got)
				}

				// Committed shapes are never revised.
				for _, pl := range res.Placements {
					fp := shapes.Realize(pl.ID, pl.Anchor, pl.Dir, pl.Size)
					for _, c := range fp.Cells {
						if k := grid.At(c.P); k != c.Kind {
							t.Errorf("%s at %v: cell %v = %s, want %s", pl.ID, pl.Anchor, c.P, k, c.Kind)
						}
					}
				}

				checkConnected(t, grid)
			})
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	gen := func() *Result {
		g, err := New(Options{Floors: 2, Width: 50, Depth: 50, Seed: 12345})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		res, err := g.Generate(context.Background())
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		return res
	}

	a, b := gen(), gen()
	if !a.Grid.Equal(b.Grid) {
		t.Error("same seed produced different grids")
	}
	if len(a.Placements) != len(b.Placements) {
		t.Errorf("Placements mismatch: %d != %d", len(a.Placements), len(b.Placements))
	}
	for i := range a.Placements {
		if i < len(b.Placements) && a.Placements[i] != b.Placements[i] {
			t.Errorf("Placement %d mismatch: %+v != %+v", i, a.Placements[i], b.Placements[i])
		}
	}
	if a.RunID == b.RunID {
		t.Error("run ids should be unique per run")
	}
}

// TestGenerateGolden pins a scripted start1 layout tile for tile. Any change
// to a table, a template or the roll order shows up as a row diff.
func TestGenerateGolden(t *testing.T) {
	script := dice.NewScript(
		1,     // entrance: start1
		1, 1,  // west: straight, width 1
		5, 11, // its far exit: dead end, turn left, both off the floor
		5, 20, // south: dead end, no secret door
		3, 1,  // east: side door right, width 1
		1, 9,  // side door: wood, false
		5, 5,  // far exit: dead end twice, off the floor
	)
	g, err := New(Options{
		Floors:      1,
		Width:       25,
		Depth:       25,
		Rolls:       script,
		MaxAttempts: 2,
		Tracer:      telemetry.NoopTracer(),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if script.Remaining() != 0 {
		t.Errorf("%d rolls unused", script.Remaining())
	}

	want := []string{
		"          ##EE##",
		"          #....#",
		"   ########....########",
		"   #,,,,,,,....,,,,,,,#",
		"   ########....###F####",
		"          ##,### ###",
		"           #,#",
		"           #,#",
		"           #,#",
		"           #,#",
		"           ###",
	}
	for y := 0; y < 25; y++ {
		var b strings.Builder
		for x := 0; x < 25; x++ {
			b.WriteRune(res.Grid.At(world.Point{X: x, Y: y}).Rune())
		}
		got := strings.TrimRight(b.String(), " ")
		exp := ""
		if y < len(want) {
			exp = want[y]
		}
		if got != exp {
			t.Errorf("row %2d = %q, want %q", y, got, exp)
		}
	}

	stats := res.Stats
	if stats.Placements() != 4 || stats.DeadEnds != 2 || stats.FalseDoors != 1 {
		t.Errorf("placements %d, dead ends %d, false doors %d; want 4, 2, 1",
			stats.Placements(), stats.DeadEnds, stats.FalseDoors)
	}
	if stats.Attempts != 8 || stats.Iterations != 6 {
		t.Errorf("attempts %d, iterations %d; want 8, 6", stats.Attempts, stats.Iterations)
	}
	wantIDs := []shapes.ID{shapes.Start1, shapes.Straight, shapes.DeadEnd, shapes.SideDoorRight}
	for i, pl := range res.Placements {
		if i < len(wantIDs) && pl.ID != wantIDs[i] {
			t.Errorf("placement %d = %s, want %s", i, pl.ID, wantIDs[i])
		}
	}
}

func TestGenerateSingleEntrance(t *testing.T) {
	g, err := New(Options{Floors: 3, Width: 30, Depth: 30, Seed: 7, SingleEntrance: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if got := res.Stats.ByClass[shapes.ClassEntrance]; got != 1 {
		t.Errorf("%d entrances, want 1", got)
	}
	if res.Grid.At(world.Point{X: 15, Y: 0}) != world.Enter {
		t.Error("first floor has no entrance at the top middle")
	}
	for f := 1; f < 3; f++ {
		if b := world.Bounds(res.Grid, f); b != (world.Rect{}) {
			t.Errorf("floor %d should stay empty, bounds %+v", f, b)
		}
	}
}

func TestSingleEntranceRollsOnce(t *testing.T) {
	script := dice.NewScript(1)
	g, err := New(Options{Floors: 2, Width: 25, Depth: 25, Rolls: script, SingleEntrance: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r := g.newRun()
	r.placeEntrances(context.Background())

	if script.Remaining() != 0 {
		t.Errorf("%d rolls unused", script.Remaining())
	}
	if len(r.res.Placements) != 1 {
		t.Errorf("%d placements, want 1", len(r.res.Placements))
	}
	if k := r.grid.At(world.Point{Floor: 1, X: 12, Y: 0}); k != world.Blank {
		t.Errorf("floor 1 entrance cell = %s, want blank", k)
	}
}

func TestGenerateCancelled(t *testing.T) {
	g, err := New(Options{Floors: 1, Width: 25, Depth: 25, Seed: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Generate(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() = %v, want context.Canceled", err)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name      string
		neighbour world.Point
		kind      world.TileKind
		want      world.Direction
		ok        bool
	}{
		{"passage above", world.Point{X: 10, Y: 9}, world.Passage, world.Down, true},
		{"room below", world.Point{X: 10, Y: 11}, world.Room, world.Up, true},
		{"pillar left", world.Point{X: 9, Y: 10}, world.Pillar, world.Right, true},
		{"well right", world.Point{X: 11, Y: 10}, world.Well, world.Left, true},
		{"door is not a parent", world.Point{X: 10, Y: 9}, world.DoorWood, world.Down, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := world.NewGrid(1, 25, 25)
			g.Set(tt.neighbour, tt.kind)
			dir, ok := heading(g, world.Point{X: 10, Y: 10})
			if ok != tt.ok || (ok && dir != tt.want) {
				t.Errorf("heading() = %s, %v; want %s, %v", dir, ok, tt.want, tt.ok)
			}
		})
	}
}
