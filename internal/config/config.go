// Package config loads the generator's YAML configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bmalloy0/MapGenerator/internal/logger"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

// Config holds every setting the CLI reads.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Logging    logger.Config    `yaml:"logging"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Output     OutputConfig     `yaml:"output"`
	Archive    ArchiveConfig    `yaml:"archive"`
}

// GenerationConfig holds grid dimensions and generation limits.
type GenerationConfig struct {
	Floors int `yaml:"floors"`
	Width  int `yaml:"width"`
	Depth  int `yaml:"depth"`

	// Seed for the roll source. 0 picks a time-based seed.
	Seed int64 `yaml:"seed"`

	// MaxAttempts bounds the shape rolls spent on one sentinel.
	MaxAttempts int `yaml:"max_attempts"`

	// TablesPath replaces the embedded weight tables when set.
	TablesPath string `yaml:"tables_path"`

	// SingleEntrance limits entrances to the first floor.
	SingleEntrance bool `yaml:"single_entrance"`
}

// TelemetryConfig controls OpenTelemetry export.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// OutputConfig selects how a finished layout is emitted.
type OutputConfig struct {
	// Format is "text" or "yaml".
	Format string `yaml:"format"`

	// Path is the output file. Empty writes to stdout.
	Path string `yaml:"path"`

	// View opens the terminal viewer after generation.
	View bool `yaml:"view"`
}

// ArchiveConfig selects where layouts are stored.
type ArchiveConfig struct {
	// Driver is "sqlite", "postgres" or empty to disable archiving.
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`

	PostgresHost     string `yaml:"postgres_host"`
	PostgresPort     int    `yaml:"postgres_port"`
	PostgresUser     string `yaml:"postgres_user"`
	PostgresPassword string `yaml:"postgres_password"`
	PostgresDB       string `yaml:"postgres_db"`
	PostgresSSLMode  string `yaml:"postgres_sslmode"`
}

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// DefaultMaxAttempts is the retry bound used when none is configured.
const DefaultMaxAttempts = 100

// DefaultConfig returns a Config for a single 80×40 floor.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Floors:      1,
			Width:       80,
			Depth:       40,
			MaxAttempts: DefaultMaxAttempts,
		},
		Logging: logger.DefaultConfig(),
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "mapgen",
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Archive: ArchiveConfig{
			SQLitePath:      "data/layouts.db",
			PostgresHost:    "localhost",
			PostgresPort:    5432,
			PostgresUser:    "mapgen",
			PostgresDB:      "mapgen",
			PostgresSSLMode: "disable",
		},
	}
}

// LoadConfig loads configuration from a YAML file, applies MAPGEN_* and
// LOG_* environment overrides and normalizes the result. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return config, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	config.ApplyEnv()
	config.Normalize()
	return config, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	envInt("MAPGEN_FLOORS", &c.Generation.Floors)
	envInt("MAPGEN_WIDTH", &c.Generation.Width)
	envInt("MAPGEN_DEPTH", &c.Generation.Depth)
	envInt("MAPGEN_MAX_ATTEMPTS", &c.Generation.MaxAttempts)
	if v := os.Getenv("MAPGEN_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Generation.Seed = seed
		}
	}
	envString("MAPGEN_TABLES_PATH", &c.Generation.TablesPath)
	envString("MAPGEN_OUTPUT_FORMAT", &c.Output.Format)
	envString("MAPGEN_OUTPUT_PATH", &c.Output.Path)
	envBool("MAPGEN_TELEMETRY_ENABLED", &c.Telemetry.Enabled)
	envString("MAPGEN_ARCHIVE_DRIVER", &c.Archive.Driver)
	envString("MAPGEN_SQLITE_PATH", &c.Archive.SQLitePath)
	envString("MAPGEN_POSTGRES_HOST", &c.Archive.PostgresHost)
	envInt("MAPGEN_POSTGRES_PORT", &c.Archive.PostgresPort)
	envString("MAPGEN_POSTGRES_USER", &c.Archive.PostgresUser)
	envString("MAPGEN_POSTGRES_PASSWORD", &c.Archive.PostgresPassword)
	envString("MAPGEN_POSTGRES_DB", &c.Archive.PostgresDB)

	c.Logging.ApplyEnv()
}

// Normalize raises dimensions to the generation minimums and restores
// defaults for unusable values.
func (c *Config) Normalize() {
	g := &c.Generation
	g.Floors = max(g.Floors, world.MinFloors)
	g.Width = max(g.Width, world.MinWidth)
	g.Depth = max(g.Depth, world.MinDepth)
	if g.MaxAttempts < 1 {
		g.MaxAttempts = DefaultMaxAttempts
	}
	if c.Output.Format != FormatYAML {
		c.Output.Format = FormatText
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "mapgen"
	}
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
