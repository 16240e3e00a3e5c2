package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cfb-realignment/realign-cli/internal/conference"
	"github.com/cfb-realignment/realign-cli/internal/db"
	"github.com/cfb-realignment/realign-cli/internal/export"
	"github.com/cfb-realignment/realign-cli/internal/resilience"
)

// PostgresStore implements Store using pgxpool and PostGIS geometry columns.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := resilience.Do(ctx, resilience.DefaultRetryConfig(), "postgres ping", pool.Ping); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE EXTENSION IF NOT EXISTS postgis;

CREATE TABLE IF NOT EXISTS analysis_runs (
	id          TEXT PRIMARY KEY,
	label       TEXT NOT NULL DEFAULT '',
	sport       TEXT NOT NULL DEFAULT '',
	conferences INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS conference_stats (
	run_id          TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
	position        INTEGER NOT NULL,
	conference      TEXT NOT NULL,
	year            INTEGER NOT NULL,
	custom          BOOLEAN NOT NULL DEFAULT false,
	school_count    INTEGER NOT NULL,
	avg_between     DOUBLE PRECISION NOT NULL,
	avg_from_center DOUBLE PRECISION NOT NULL,
	center          geometry(Point, 4326),
	capital         JSONB,
	footprint       TEXT NOT NULL DEFAULT '',
	territory       geometry(Polygon, 4326),
	PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS school_details (
	run_id                 TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
	position               INTEGER NOT NULL,
	conference             TEXT NOT NULL,
	year                   INTEGER NOT NULL,
	school                 TEXT NOT NULL,
	avg_distance_to_others DOUBLE PRECISION NOT NULL,
	distance_to_capital    DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_analysis_runs_created_at ON analysis_runs(created_at);
CREATE INDEX IF NOT EXISTS idx_conference_stats_year ON conference_stats(year);
CREATE INDEX IF NOT EXISTS idx_conference_stats_territory ON conference_stats USING GIST (territory);
`

// schoolDetailColumns is the COPY column list for school_details.
var schoolDetailColumns = []string{
	"run_id", "position", "conference", "year", "school", "avg_distance_to_others", "distance_to_capital",
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *Run) error {
	prepareRun(run, uuid.NewString)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO analysis_runs (id, label, sport, conferences, created_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Label, run.Sport, run.Conferences, run.CreatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: insert run %s", run.ID)
	}

	for i, st := range run.Stats {
		args, err := statsArgs(run.ID, i, st)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO conference_stats (run_id, position, conference, year, custom, school_count, avg_between, avg_from_center, center, capital, footprint, territory)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, ST_GeomFromEWKB($9), $10, $11, ST_GeomFromEWKB($12))`,
			args...,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: insert stats %s %d", st.Conference, st.Year)
		}
	}

	rows := make([][]any, len(run.Details))
	for i, d := range run.Details {
		rows[i] = []any{run.ID, i, d.Conference, d.Year, d.School, d.AvgDistanceToOthers, d.DistanceToCapital}
	}
	if _, err := db.CopyFrom(ctx, tx, "school_details", schoolDetailColumns, rows); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "postgres: commit run")
	}

	zap.L().Debug("postgres: saved run",
		zap.String("run_id", run.ID),
		zap.Int("stats", len(run.Stats)),
		zap.Int("details", len(run.Details)),
	)
	return nil
}

func statsArgs(runID string, position int, st conference.Stats) ([]any, error) {
	var center []byte
	if c, ok := st.Center(); ok {
		var err error
		if center, err = export.EncodePointWKB(c); err != nil {
			return nil, err
		}
	}
	territory, err := export.EncodeHullWKB(st.Territory)
	if err != nil {
		return nil, err
	}
	var capital []byte
	if st.Capital != nil {
		if capital, err = json.Marshal(st.Capital); err != nil {
			return nil, eris.Wrap(err, "postgres: marshal capital")
		}
	}
	return []any{
		runID, position, st.Conference, st.Year, st.Custom, st.SchoolCount,
		st.AvgDistanceBetweenSchools, st.AvgDistanceFromCenter, center, capital, st.Footprint, territory,
	}, nil
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*Run, error) {
	var r Run
	err := s.pool.QueryRow(ctx,
		`SELECT id, label, sport, conferences, created_at FROM analysis_runs WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Label, &r.Sport, &r.Conferences, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: get run %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", id)
	}

	if r.Stats, err = s.runStats(ctx, id); err != nil {
		return nil, err
	}
	if r.Details, err = s.runDetails(ctx, id); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresStore) runStats(ctx context.Context, id string) ([]conference.Stats, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT conference, year, custom, school_count, avg_between, avg_from_center, ST_AsEWKB(center), capital, footprint, ST_AsEWKB(territory)
		FROM conference_stats WHERE run_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: query stats %s", id)
	}
	defer rows.Close()

	var out []conference.Stats
	for rows.Next() {
		var st conference.Stats
		var center, capital, territory []byte
		if err := rows.Scan(&st.Conference, &st.Year, &st.Custom, &st.SchoolCount,
			&st.AvgDistanceBetweenSchools, &st.AvgDistanceFromCenter, &center, &capital, &st.Footprint, &territory); err != nil {
			return nil, eris.Wrap(err, "postgres: scan stats")
		}
		if len(center) > 0 {
			p, err := export.DecodePointWKB(center)
			if err != nil {
				return nil, err
			}
			st.CenterLat, st.CenterLon = &p.Lat, &p.Lon
		}
		if len(capital) > 0 {
			st.Capital = &conference.Capital{}
			if err := json.Unmarshal(capital, st.Capital); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal capital")
			}
		}
		if st.Territory, err = export.DecodeHullWKB(territory); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, eris.Wrap(rows.Err(), "postgres: stats iterate")
}

func (s *PostgresStore) runDetails(ctx context.Context, id string) ([]conference.SchoolDetail, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT conference, year, school, avg_distance_to_others, distance_to_capital
		FROM school_details WHERE run_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: query school details %s", id)
	}
	defer rows.Close()

	var out []conference.SchoolDetail
	for rows.Next() {
		var d conference.SchoolDetail
		if err := rows.Scan(&d.Conference, &d.Year, &d.School, &d.AvgDistanceToOthers, &d.DistanceToCapital); err != nil {
			return nil, eris.Wrap(err, "postgres: scan school detail")
		}
		out = append(out, d)
	}
	return out, eris.Wrap(rows.Err(), "postgres: school details iterate")
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := `SELECT id, label, sport, conferences, created_at FROM analysis_runs WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Label != "" {
		query += fmt.Sprintf(` AND label = $%d`, argIdx)
		args = append(args, filter.Label)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Label, &r.Sport, &r.Conferences, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list runs iterate")
}
