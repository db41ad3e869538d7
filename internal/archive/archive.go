// Package archive stores generated layouts in SQLite or PostgreSQL so a run
// can be listed and reloaded later.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"

	"github.com/bmalloy0/MapGenerator/internal/config"
	"github.com/bmalloy0/MapGenerator/internal/dungeon"
	"github.com/bmalloy0/MapGenerator/internal/logger"
	"github.com/bmalloy0/MapGenerator/internal/telemetry"
	"github.com/bmalloy0/MapGenerator/internal/world"
)

var (
	// ErrUnknownDriver is returned for a driver other than sqlite or postgres.
	ErrUnknownDriver = errors.New("archive: unknown driver")
	// ErrNotFound is returned by Load for an unknown run id.
	ErrNotFound = errors.New("archive: layout not found")
	// ErrDuplicate is returned by Save for a run id already stored.
	ErrDuplicate = errors.New("archive: layout already stored")
)

// pingTries bounds connection attempts while the server comes up.
const pingTries = 5

// Summary describes a stored layout without its grid.
type Summary struct {
	RunID      uuid.UUID
	Seed       int64
	Floors     int
	Width      int
	Depth      int
	Placements int
	DeadEnds   int
	CreatedAt  time.Time
}

// Record is a stored layout.
type Record struct {
	Summary
	Grid *world.Grid
}

// Archive wraps the database connection.
type Archive struct {
	db      *sql.DB
	dialect Dialect
	tracer  trace.Tracer
}

// Open connects to the configured database, waits for it to answer and
// creates the schema if it does not exist.
func Open(ctx context.Context, cfg config.ArchiveConfig) (*Archive, error) {
	dialect, err := NewDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ping(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run %q: %w", stmt, err)
		}
	}

	a := &Archive{db: db, dialect: dialect, tracer: telemetry.Tracer("archive")}
	if err := a.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("Archive opened", "driver", cfg.Driver)
	return a, nil
}

func dataSource(cfg config.ArchiveConfig) (string, error) {
	switch cfg.Driver {
	case DriverSQLite:
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
		return cfg.SQLitePath, nil
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser,
			cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// ping retries with exponential backoff so a database container that is
// still starting does not fail the run.
func ping(ctx context.Context, db *sql.DB) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := db.PingContext(ctx)
		if err != nil {
			logger.Debug("Archive ping failed", "error", err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(pingTries),
	)
	if err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}
	return nil
}

func (a *Archive) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS layouts (
			run_id TEXT PRIMARY KEY,
			seed BIGINT NOT NULL,
			floors INTEGER NOT NULL,
			width INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			placements INTEGER NOT NULL DEFAULT 0,
			dead_ends INTEGER NOT NULL DEFAULT 0,
			grid ` + a.dialect.BlobType() + ` NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_layouts_created_at ON layouts(created_at)`,
	}

	for _, m := range migrations {
		if _, err := a.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Save stores a finished run.
func (a *Archive) Save(ctx context.Context, res *dungeon.Result) error {
	ctx, span := a.tracer.Start(ctx, "archive.save",
		trace.WithAttributes(
			attribute.String("run_id", res.RunID.String()),
			attribute.Int("floors", res.Grid.Floors()),
		),
	)
	defer span.End()

	_, err := a.db.ExecContext(ctx, rebind(a.dialect,
		`INSERT INTO layouts (run_id, seed, floors, width, depth, placements, dead_ends, grid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		res.RunID.String(), res.Seed,
		res.Grid.Floors(), res.Grid.Width(), res.Grid.Depth(),
		res.Stats.Placements(), res.Stats.DeadEnds,
		res.Grid.Bytes(), time.Now().UnixMilli(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		if a.dialect.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicate, res.RunID)
		}
		return fmt.Errorf("failed to save layout: %w", err)
	}

	logger.Info("Layout archived", "run_id", res.RunID.String(), "seed", res.Seed)
	return nil
}

// Load returns a stored layout with its grid.
func (a *Archive) Load(ctx context.Context, id uuid.UUID) (*Record, error) {
	var (
		rec     Record
		runID   string
		data    []byte
		created int64
	)
	err := a.db.QueryRowContext(ctx, rebind(a.dialect,
		`SELECT run_id, seed, floors, width, depth, placements, dead_ends, grid, created_at
		FROM layouts WHERE run_id = ?`), id.String(),
	).Scan(&runID, &rec.Seed, &rec.Floors, &rec.Width, &rec.Depth,
		&rec.Placements, &rec.DeadEnds, &data, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}

	if rec.RunID, err = uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("failed to parse run id: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(created)
	if rec.Grid, err = world.GridFromBytes(rec.Floors, rec.Width, rec.Depth, data); err != nil {
		return nil, fmt.Errorf("failed to decode grid: %w", err)
	}
	return &rec, nil
}

// List returns up to limit summaries, newest first. limit <= 0 lists all.
func (a *Archive) List(ctx context.Context, limit int) ([]Summary, error) {
	query := `SELECT run_id, seed, floors, width, depth, placements, dead_ends, created_at
		FROM layouts ORDER BY created_at DESC, run_id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := a.db.QueryContext(ctx, rebind(a.dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			s       Summary
			runID   string
			created int64
		)
		if err := rows.Scan(&runID, &s.Seed, &s.Floors, &s.Width, &s.Depth,
			&s.Placements, &s.DeadEnds, &created); err != nil {
			return nil, fmt.Errorf("failed to scan layout: %w", err)
		}
		if s.RunID, err = uuid.Parse(runID); err != nil {
			return nil, fmt.Errorf("failed to parse run id: %w", err)
		}
		s.CreatedAt = time.UnixMilli(created)
		out = append(out, s)
	}
	return out, rows.Err()
}
