// Package main is the entry point for the dungeon layout generator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/bmalloy0/MapGenerator/internal/archive"
	"github.com/bmalloy0/MapGenerator/internal/config"
	"github.com/bmalloy0/MapGenerator/internal/dungeon"
	"github.com/bmalloy0/MapGenerator/internal/export"
	"github.com/bmalloy0/MapGenerator/internal/gamedata"
	"github.com/bmalloy0/MapGenerator/internal/logger"
	"github.com/bmalloy0/MapGenerator/internal/telemetry"
	"github.com/bmalloy0/MapGenerator/internal/ui"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

// options are the command-line settings that are not part of the config file.
type options struct {
	configPath string
	list       bool
	load       string
}

func main() {
	os.Exit(mainExit())
}

// mainExit runs the command and returns the process exit code, so deferred
// cleanup finishes before the process exits.
func mainExit() int {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	cfg, opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 2
	}

	if err := logger.Initialize(cfg.Logging); err != nil {
		log.Printf("Failed to initialize logger: %v", err)
		return 1
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		// Continue without telemetry - generation still works
		logger.Warning("Telemetry setup failed, running without observability", "error", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down telemetry", "error", err)
			}
		}()
	}

	if err := run(ctx, cfg, opts); err != nil {
		logger.Error("mapgen failed", "error", err)
		return 1
	}
	return 0
}

// parseFlags loads the config file and lets explicitly set flags override it.
func parseFlags(args []string) (*config.Config, options, error) {
	fs := flag.NewFlagSet("mapgen", flag.ContinueOnError)
	var (
		opts     options
		floors   = fs.Int("floors", 0, "number of floors")
		width    = fs.Int("width", 0, "floor width in cells")
		depth    = fs.Int("depth", 0, "floor depth in cells")
		seed     = fs.Int64("seed", 0, "roll seed (0 for time-based)")
		attempts = fs.Int("attempts", 0, "shape attempts per frontier cell")
		single   = fs.Bool("single-entrance", false, "place an entrance on the first floor only")
		tables   = fs.String("tables", "", "weight tables YAML replacing the embedded set")
		format   = fs.String("format", "", "output format: text or yaml")
		output   = fs.String("o", "", "output file (empty for stdout)")
		view     = fs.Bool("view", false, "open the terminal viewer")
		driver   = fs.String("archive", "", "store the layout: sqlite or postgres")
	)
	fs.StringVar(&opts.configPath, "config", "config.yaml", "path to the YAML config file")
	fs.BoolVar(&opts.list, "list", false, "list archived layouts and exit")
	fs.StringVar(&opts.load, "load", "", "render an archived layout by run id instead of generating")
	if err := fs.Parse(args); err != nil {
		return nil, opts, err
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "floors":
			cfg.Generation.Floors = *floors
		case "width":
			cfg.Generation.Width = *width
		case "depth":
			cfg.Generation.Depth = *depth
		case "seed":
			cfg.Generation.Seed = *seed
		case "attempts":
			cfg.Generation.MaxAttempts = *attempts
		case "single-entrance":
			cfg.Generation.SingleEntrance = *single
		case "tables":
			cfg.Generation.TablesPath = *tables
		case "format":
			cfg.Output.Format = *format
		case "o":
			cfg.Output.Path = *output
		case "view":
			cfg.Output.View = *view
		case "archive":
			cfg.Archive.Driver = *driver
		}
	})
	cfg.Normalize()
	return cfg, opts, nil
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	if opts.list || opts.load != "" {
		return browse(ctx, cfg, opts)
	}

	genOpts := dungeon.Options{
		Floors:         cfg.Generation.Floors,
		Width:          cfg.Generation.Width,
		Depth:          cfg.Generation.Depth,
		Seed:           cfg.Generation.Seed,
		MaxAttempts:    cfg.Generation.MaxAttempts,
		SingleEntrance: cfg.Generation.SingleEntrance,
	}
	if cfg.Generation.TablesPath != "" {
		tables, err := gamedata.LoadTablesFile(cfg.Generation.TablesPath)
		if err != nil {
			return fmt.Errorf("failed to load tables: %w", err)
		}
		genOpts.Tables = tables
	}

	gen, err := dungeon.New(genOpts)
	if err != nil {
		return err
	}
	res, err := gen.Generate(ctx)
	if err != nil {
		return err
	}
	logger.Always("Layout ready", "run_id", res.RunID.String(), "seed", res.Seed,
		"placements", res.Stats.Placements(), "dead_ends", res.Stats.DeadEnds)

	if cfg.Archive.Driver != "" {
		a, err := archive.Open(ctx, cfg.Archive)
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.Save(ctx, res); err != nil {
			return err
		}
	}

	if err := write(cfg.Output, res); err != nil {
		return err
	}

	if cfg.Output.View {
		return view(ctx, res.Grid, fmt.Sprintf("seed %d", res.Seed))
	}
	return nil
}

// browse lists archived layouts or renders one of them.
func browse(ctx context.Context, cfg *config.Config, opts options) error {
	if cfg.Archive.Driver == "" {
		cfg.Archive.Driver = archive.DriverSQLite
	}
	a, err := archive.Open(ctx, cfg.Archive)
	if err != nil {
		return err
	}
	defer a.Close()

	if opts.list {
		summaries, err := a.List(ctx, 0)
		if err != nil {
			return err
		}
		for _, s := range summaries {
			fmt.Printf("%s  seed %-20d %d floors %dx%d  placements %-4d dead ends %-4d %s\n",
				s.RunID, s.Seed, s.Floors, s.Width, s.Depth, s.Placements, s.DeadEnds,
				s.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	id, err := uuid.Parse(opts.load)
	if err != nil {
		return fmt.Errorf("failed to parse run id: %w", err)
	}
	rec, err := a.Load(ctx, id)
	if err != nil {
		return err
	}
	if cfg.Output.View {
		return view(ctx, rec.Grid, fmt.Sprintf("seed %d", rec.Seed))
	}
	return export.WriteText(os.Stdout, rec.Grid)
}

func write(out config.OutputConfig, res *dungeon.Result) error {
	if out.Format == config.FormatYAML {
		if out.Path != "" {
			return export.WriteYAMLFile(out.Path, res)
		}
		return export.WriteYAML(os.Stdout, res)
	}

	// The viewer replaces text on the terminal unless a file was asked for.
	if out.View && out.Path == "" {
		return nil
	}
	if out.Path == "" {
		return export.WriteText(os.Stdout, res.Grid)
	}
	return writeTextFile(out.Path, res.Grid)
}

// writeTextFile writes the text rendering to path. A failed close is
// returned like a failed write.
func writeTextFile(path string, l world.Layout) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return export.WriteText(f, l)
}

func view(ctx context.Context, l world.Layout, title string) error {
	palette, err := gamedata.LoadPalette()
	if err != nil {
		return fmt.Errorf("failed to load palette: %w", err)
	}
	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	v := ui.NewViewer(screen, palette, l, title)
	defer v.Close()
	return v.Run(ctx)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_MAPGEN_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	dataset := os.Getenv("HONEYCOMB_MAPGEN_DATASET")
	if dataset == "" {
		dataset = "mapgen" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
