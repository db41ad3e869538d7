package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bmalloy0/MapGenerator/internal/config"
	"github.com/bmalloy0/MapGenerator/internal/dungeon"
	"github.com/bmalloy0/MapGenerator/internal/export"
)

func TestParseFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("generation:\n  floors: 3\n  width: 60\n  seed: 5\noutput:\n  format: yaml\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, opts, err := parseFlags([]string{"-config", path, "-width", "90", "-seed", "0", "-archive", "sqlite", "-list", "-single-entrance"})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}

	if cfg.Generation.Floors != 3 {
		t.Errorf("floors = %d, want 3 from the file", cfg.Generation.Floors)
	}
	if cfg.Generation.Width != 90 {
		t.Errorf("width = %d, want 90 from the flag", cfg.Generation.Width)
	}
	if cfg.Generation.Seed != 0 {
		t.Errorf("seed = %d, want an explicit 0 to override the file", cfg.Generation.Seed)
	}
	if cfg.Output.Format != config.FormatYAML {
		t.Errorf("format = %q, want yaml", cfg.Output.Format)
	}
	if !cfg.Generation.SingleEntrance {
		t.Error("single-entrance flag not applied")
	}
	if cfg.Archive.Driver != "sqlite" || !opts.list {
		t.Errorf("archive = %q, list = %v", cfg.Archive.Driver, opts.list)
	}
}

func TestParseFlagsClampsDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, _, err := parseFlags([]string{"-config", path, "-width", "3", "-depth", "10", "-floors", "0"})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	g := cfg.Generation
	if g.Floors != 1 || g.Width != 25 || g.Depth != 25 {
		t.Errorf("dimensions = %d %dx%d, want 1 25x25", g.Floors, g.Width, g.Depth)
	}
}

func TestParseFlagsRejectsUnknownFlag(t *testing.T) {
	if _, _, err := parseFlags([]string{"-bogus"}); err == nil {
		t.Error("parseFlags should fail on an unknown flag")
	}
}

func TestWriteTextFile(t *testing.T) {
	g, err := dungeon.New(dungeon.Options{Floors: 1, Width: 25, Depth: 25, Seed: 3})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var want strings.Builder
	if err := export.WriteText(&want, res.Grid); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "layout.txt")
	if err := write(config.OutputConfig{Format: config.FormatText, Path: path}, res); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != want.String() {
		t.Errorf("file content differs from WriteText:\n%s", got)
	}

	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "layout.txt")
	if err := write(config.OutputConfig{Format: config.FormatText, Path: missing}, res); err == nil {
		t.Error("write into a missing directory should fail")
	}
}
