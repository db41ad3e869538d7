package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bmalloy0/MapGenerator/internal/dungeon"
	"github.com/bmalloy0/MapGenerator/internal/shapes"
)

// WriteYAML encodes a run as an ordered YAML document: identity, dimensions,
// statistics, legend, then the rows of each floor.
func WriteYAML(w io.Writer, res *dungeon.Result) error {
	fmt.Fprintf(w, "# Dungeon layout %s\n", res.RunID)
	fmt.Fprintf(w, "# Generated with seed: %d\n\n", res.Seed)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(document(res)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// WriteYAMLFile writes the document to path, creating parent directories.
func WriteYAMLFile(path string, res *dungeon.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := WriteYAML(f, res); err != nil {
		return err
	}
	return f.Close()
}

func document(res *dungeon.Result) *yaml.Node {
	g := res.Grid
	doc := &yaml.Node{Kind: yaml.MappingNode}
	addStringField(doc, "run_id", res.RunID.String())
	addIntField(doc, "seed", res.Seed)
	addIntField(doc, "floors", int64(g.Floors()))
	addIntField(doc, "width", int64(g.Width()))
	addIntField(doc, "depth", int64(g.Depth()))

	stats := &yaml.Node{Kind: yaml.MappingNode}
	addIntField(stats, "placements", int64(res.Stats.Placements()))
	byClass := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range shapes.Classes() {
		addIntField(byClass, c.String(), int64(res.Stats.ByClass[c]))
	}
	addNodeField(stats, "by_class", byClass)
	addIntField(stats, "dead_ends", int64(res.Stats.DeadEnds))
	addIntField(stats, "abandoned", int64(res.Stats.Abandoned))
	addIntField(stats, "border_seals", int64(res.Stats.BorderSeals))
	addIntField(stats, "false_doors", int64(res.Stats.FalseDoors))
	addIntField(stats, "attempts", int64(res.Stats.Attempts))
	addIntField(stats, "exit_intent", int64(res.Stats.ExitIntent))
	addNodeField(doc, "stats", stats)

	legend := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range Present(g) {
		addStringField(legend, string(k.Rune()), k.String())
	}
	addNodeField(doc, "legend", legend)

	levels := &yaml.Node{Kind: yaml.SequenceNode}
	for f := 0; f < g.Floors(); f++ {
		level := &yaml.Node{Kind: yaml.MappingNode}
		addIntField(level, "floor", int64(f+1))
		rows := &yaml.Node{Kind: yaml.SequenceNode}
		for _, row := range Rows(g, f) {
			// Rows start with spaces and '#', so always quote them.
			rows.Content = append(rows.Content, &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: row})
		}
		addNodeField(level, "rows", rows)
		levels.Content = append(levels.Content, level)
	}
	addNodeField(doc, "levels", levels)
	return doc
}

func addStringField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}

func addIntField(node *yaml.Node, key string, value int64) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(value, 10)},
	)
}

func addNodeField(node *yaml.Node, key string, value *yaml.Node) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}
