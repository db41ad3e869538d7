package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/bmalloy0/MapGenerator/internal/dungeon"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

func sampleGrid() *world.Grid {
	g := world.NewGrid(2, 25, 25)
	g.Set(world.Point{Floor: 0, X: 2, Y: 0}, world.Enter)
	g.Set(world.Point{Floor: 0, X: 2, Y: 1}, world.Room)
	g.Set(world.Point{Floor: 1, X: 4, Y: 3}, world.DoorWood)
	world.FinishWalls(g)
	return g
}

func TestRow(t *testing.T) {
	g := sampleGrid()

	row := Row(g, 0, 1)
	if len(row) != 25 {
		t.Fatalf("row length = %d, want 25", len(row))
	}
	if !strings.HasPrefix(row, " #.#") {
		t.Errorf("row 1 = %q, want prefix %q", row, " #.#")
	}
	if rows := Rows(g, 1); len(rows) != 25 || rows[3][4] != '+' {
		t.Errorf("floor 2 row 3 = %q", rows[3])
	}
}

func TestPresent(t *testing.T) {
	got := Present(sampleGrid())
	want := []world.TileKind{world.Wall, world.Room, world.Enter, world.DoorWood}
	if len(got) != len(want) {
		t.Fatalf("Present() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Present()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleGrid()); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Floor 1 (25x25)\n", "\nFloor 2 (25x25)\n", "\nLegend\n", "  #  wall\n", "  +  door_wood\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, " \n") {
		t.Error("rows should not carry trailing spaces")
	}
}

type yamlDoc struct {
	RunID  string `yaml:"run_id"`
	Seed   int64  `yaml:"seed"`
	Floors int    `yaml:"floors"`
	Width  int    `yaml:"width"`
	Depth  int    `yaml:"depth"`
	Stats  struct {
		Placements int            `yaml:"placements"`
		ByClass    map[string]int `yaml:"by_class"`
		DeadEnds   int            `yaml:"dead_ends"`
	} `yaml:"stats"`
	Legend map[string]string `yaml:"legend"`
	Levels []struct {
		Floor int      `yaml:"floor"`
		Rows  []string `yaml:"rows"`
	} `yaml:"levels"`
}

func generate(t *testing.T) *dungeon.Result {
	t.Helper()
	gen, err := dungeon.New(dungeon.Options{Floors: 2, Width: 40, Depth: 30, Seed: 99})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return res
}

func TestWriteYAML(t *testing.T) {
	res := generate(t)

	var buf bytes.Buffer
	if err := WriteYAML(&buf, res); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "# Dungeon layout "+res.RunID.String()) {
		t.Errorf("missing header comment: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	var doc yamlDoc
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if doc.RunID != res.RunID.String() || doc.Seed != 99 {
		t.Errorf("identity = %s/%d, want %s/99", doc.RunID, doc.Seed, res.RunID)
	}
	if doc.Floors != 2 || doc.Width != 40 || doc.Depth != 30 {
		t.Errorf("dimensions = %d %dx%d", doc.Floors, doc.Width, doc.Depth)
	}
	if doc.Stats.Placements != res.Stats.Placements() || doc.Stats.DeadEnds != res.Stats.DeadEnds {
		t.Errorf("stats = %+v, want placements %d", doc.Stats, res.Stats.Placements())
	}
	if doc.Stats.ByClass["entrance"] != 2 {
		t.Errorf("entrances = %d, want 2", doc.Stats.ByClass["entrance"])
	}
	if doc.Legend["#"] != "wall" || doc.Legend["E"] != "enter" {
		t.Errorf("legend = %v", doc.Legend)
	}
	if len(doc.Levels) != 2 {
		t.Fatalf("levels = %d, want 2", len(doc.Levels))
	}
	for f, level := range doc.Levels {
		want := Rows(res.Grid, f)
		if level.Floor != f+1 || len(level.Rows) != len(want) {
			t.Fatalf("level %d: floor %d with %d rows", f, level.Floor, len(level.Rows))
		}
		for y := range want {
			if level.Rows[y] != want[y] {
				t.Errorf("floor %d row %d = %q, want %q", f+1, y, level.Rows[y], want[y])
			}
		}
	}
}

func TestWriteYAMLFile(t *testing.T) {
	res := generate(t)
	path := filepath.Join(t.TempDir(), "out", "layout.yaml")

	if err := WriteYAMLFile(path, res); err != nil {
		t.Fatalf("WriteYAMLFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("file is not valid YAML: %v", err)
	}
	if doc.RunID != res.RunID.String() {
		t.Errorf("run id = %q", doc.RunID)
	}
}
