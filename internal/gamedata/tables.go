package gamedata

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/bmalloy0/MapGenerator/internal/dice"
)

// Names of the tables generation rolls on.
const (
	TableEntrance      = "entrance"
	TablePassageKind   = "passage_kind"
	TableChamberKind   = "chamber_kind"
	TableNormExits     = "norm_exits"
	TableLargeExits    = "large_exits"
	TablePassageWidth  = "passage_width"
	TableDoorStyle     = "door_style"
	TableDoorBeyond    = "door_beyond"
	TableDeadEndSecret = "dead_end_secret"
	TableStairKind     = "stair_kind"
)

// RequiredTables lists every table a generator needs.
var RequiredTables = []string{
	TableEntrance,
	TablePassageKind,
	TableChamberKind,
	TableNormExits,
	TableLargeExits,
	TablePassageWidth,
	TableDoorStyle,
	TableDoorBeyond,
	TableDeadEndSecret,
	TableStairKind,
}

// ErrMissingTable is returned when a required table is not defined.
var ErrMissingTable = errors.New("gamedata: missing table")

// Outcome maps an inclusive range of die faces to a result.
type Outcome struct {
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
	Result string `yaml:"result"`
}

// Table is a weighted selection table rolled with a single die. Faces not
// covered by any outcome produce Default.
type Table struct {
	Name     string    `yaml:"-"`
	Sides    int       `yaml:"sides"`
	Default  string    `yaml:"default"`
	Outcomes []Outcome `yaml:"outcomes"`
}

// Roll throws the table's die and returns the matching result.
func (t *Table) Roll(r dice.Roller) string {
	return t.Lookup(r.Roll(1, t.Sides))
}

// RollInt rolls the table and parses the result as an integer.
func (t *Table) RollInt(r dice.Roller) (int, error) {
	res := t.Roll(r)
	n, err := strconv.Atoi(res)
	if err != nil {
		return 0, fmt.Errorf("table %s: result %q is not an integer: %w", t.Name, res, err)
	}
	return n, nil
}

// Lookup returns the result for a specific die face.
func (t *Table) Lookup(face int) string {
	for _, o := range t.Outcomes {
		if face >= o.Min && face <= o.Max {
			return o.Result
		}
	}
	return t.Default
}

// Results returns every distinct result the table can produce, sorted.
func (t *Table) Results() []string {
	seen := map[string]bool{t.Default: true}
	for _, o := range t.Outcomes {
		seen[o.Result] = true
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Validate checks that every outcome lies on the die and that no face is
// claimed twice.
func (t *Table) Validate() error {
	if t.Sides < 1 {
		return fmt.Errorf("table %s: sides must be positive, got %d", t.Name, t.Sides)
	}
	if t.Default == "" {
		return fmt.Errorf("table %s: default result is required", t.Name)
	}
	claimed := make([]bool, t.Sides+1)
	for _, o := range t.Outcomes {
		if o.Min < 1 || o.Max > t.Sides || o.Min > o.Max {
			return fmt.Errorf("table %s: outcome %q range [%d,%d] invalid for d%d", t.Name, o.Result, o.Min, o.Max, t.Sides)
		}
		if o.Result == "" {
			return fmt.Errorf("table %s: outcome [%d,%d] has no result", t.Name, o.Min, o.Max)
		}
		for face := o.Min; face <= o.Max; face++ {
			if claimed[face] {
				return fmt.Errorf("table %s: face %d claimed twice", t.Name, face)
			}
			claimed[face] = true
		}
	}
	return nil
}

// TablesFile represents the structure of tables.yaml.
type TablesFile struct {
	Tables map[string]*Table `yaml:"tables"`
}

// Tables holds the loaded weight tables by name.
type Tables struct {
	byName map[string]*Table
}

// NewTables validates the tables of a parsed file and checks that every
// required table is present.
func NewTables(file TablesFile) (*Tables, error) {
	t := &Tables{byName: make(map[string]*Table, len(file.Tables))}
	for name, table := range file.Tables {
		if table == nil {
			return nil, fmt.Errorf("table %s: empty definition", name)
		}
		table.Name = name
		if err := table.Validate(); err != nil {
			return nil, err
		}
		t.byName[name] = table
	}
	for _, name := range RequiredTables {
		if _, ok := t.byName[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingTable, name)
		}
	}
	return t, nil
}

// LoadTables loads the embedded tables.yaml.
func LoadTables() (*Tables, error) {
	file, err := Load[TablesFile]("tables.yaml")
	if err != nil {
		return nil, err
	}
	return NewTables(file)
}

// LoadTablesFile loads replacement tables from disk.
func LoadTablesFile(path string) (*Tables, error) {
	file, err := LoadFile[TablesFile](path)
	if err != nil {
		return nil, err
	}
	return NewTables(file)
}

// MustLoadTables loads the embedded tables, panicking on error.
func MustLoadTables() *Tables {
	tables, err := NewTables(MustLoad[TablesFile]("tables.yaml"))
	if err != nil {
		panic(err)
	}
	return tables
}

// Get returns the named table, or nil if it is not defined.
func (t *Tables) Get(name string) *Table {
	return t.byName[name]
}

// Count returns the number of loaded tables.
func (t *Tables) Count() int {
	return len(t.byName)
}
