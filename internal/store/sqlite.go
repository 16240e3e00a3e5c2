package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/cfb-realignment/realign-cli/internal/conference"
	"github.com/cfb-realignment/realign-cli/internal/export"
)

// SQLiteStore implements Store using modernc.org/sqlite. Territories are kept
// as GeoJSON text.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id          TEXT PRIMARY KEY,
	label       TEXT NOT NULL DEFAULT '',
	sport       TEXT NOT NULL DEFAULT '',
	conferences INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS conference_stats (
	run_id          TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
	position        INTEGER NOT NULL,
	conference      TEXT NOT NULL,
	year            INTEGER NOT NULL,
	custom          INTEGER NOT NULL DEFAULT 0,
	school_count    INTEGER NOT NULL,
	avg_between     REAL NOT NULL,
	avg_from_center REAL NOT NULL,
	center_lat      REAL,
	center_lon      REAL,
	capital         TEXT,
	footprint       TEXT NOT NULL DEFAULT '',
	territory       TEXT,
	PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS school_details (
	run_id                 TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
	position               INTEGER NOT NULL,
	conference             TEXT NOT NULL,
	year                   INTEGER NOT NULL,
	school                 TEXT NOT NULL,
	avg_distance_to_others REAL NOT NULL,
	distance_to_capital    REAL NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_analysis_runs_created_at ON analysis_runs(created_at);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_label ON analysis_runs(label);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	prepareRun(run, uuid.NewString)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO analysis_runs (id, label, sport, conferences, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Label, run.Sport, run.Conferences, run.CreatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert run %s", run.ID)
	}

	for i, st := range run.Stats {
		var centerLat, centerLon sql.NullFloat64
		if c, ok := st.Center(); ok {
			centerLat = sql.NullFloat64{Float64: c.Lat, Valid: true}
			centerLon = sql.NullFloat64{Float64: c.Lon, Valid: true}
		}
		var capital sql.NullString
		if st.Capital != nil {
			b, err := json.Marshal(st.Capital)
			if err != nil {
				return eris.Wrap(err, "sqlite: marshal capital")
			}
			capital = sql.NullString{String: string(b), Valid: true}
		}
		var territory sql.NullString
		b, err := export.EncodeHullGeoJSON(st.Territory)
		if err != nil {
			return err
		}
		if b != nil {
			territory = sql.NullString{String: string(b), Valid: true}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO conference_stats (run_id, position, conference, year, custom, school_count, avg_between, avg_from_center, center_lat, center_lon, capital, footprint, territory)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, st.Conference, st.Year, st.Custom, st.SchoolCount, st.AvgDistanceBetweenSchools,
			st.AvgDistanceFromCenter, centerLat, centerLon, capital, st.Footprint, territory,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert stats %s %d", st.Conference, st.Year)
		}
	}

	for i, d := range run.Details {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO school_details (run_id, position, conference, year, school, avg_distance_to_others, distance_to_capital)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, d.Conference, d.Year, d.School, d.AvgDistanceToOthers, d.DistanceToCapital,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert school detail %s", d.School)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit run")
	}

	zap.L().Debug("sqlite: saved run",
		zap.String("run_id", run.ID),
		zap.Int("stats", len(run.Stats)),
		zap.Int("details", len(run.Details)),
	)
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, label, sport, conferences, created_at FROM analysis_runs WHERE id = ?`,
		id,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: get run %s", id)
	}
	if err != nil {
		return nil, err
	}

	if r.Stats, err = s.runStats(ctx, id); err != nil {
		return nil, err
	}
	if r.Details, err = s.runDetails(ctx, id); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *SQLiteStore) runStats(ctx context.Context, id string) ([]conference.Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT conference, year, custom, school_count, avg_between, avg_from_center, center_lat, center_lon, capital, footprint, territory
		FROM conference_stats WHERE run_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query stats %s", id)
	}
	defer rows.Close() //nolint:errcheck

	var out []conference.Stats
	for rows.Next() {
		var st conference.Stats
		var centerLat, centerLon sql.NullFloat64
		var capital, territory sql.NullString
		if err := rows.Scan(&st.Conference, &st.Year, &st.Custom, &st.SchoolCount, &st.AvgDistanceBetweenSchools,
			&st.AvgDistanceFromCenter, &centerLat, &centerLon, &capital, &st.Footprint, &territory); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan stats")
		}
		if centerLat.Valid && centerLon.Valid {
			lat, lon := centerLat.Float64, centerLon.Float64
			st.CenterLat, st.CenterLon = &lat, &lon
		}
		if capital.Valid {
			st.Capital = &conference.Capital{}
			if err := json.Unmarshal([]byte(capital.String), st.Capital); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal capital")
			}
		}
		if st.Territory, err = export.DecodeHullGeoJSON([]byte(territory.String)); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: stats iterate")
}

func (s *SQLiteStore) runDetails(ctx context.Context, id string) ([]conference.SchoolDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT conference, year, school, avg_distance_to_others, distance_to_capital
		FROM school_details WHERE run_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query school details %s", id)
	}
	defer rows.Close() //nolint:errcheck

	var out []conference.SchoolDetail
	for rows.Next() {
		var d conference.SchoolDetail
		if err := rows.Scan(&d.Conference, &d.Year, &d.School, &d.AvgDistanceToOthers, &d.DistanceToCapital); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan school detail")
		}
		out = append(out, d)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: school details iterate")
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := `SELECT id, label, sport, conferences, created_at FROM analysis_runs WHERE 1=1`
	var args []any

	if filter.Label != "" {
		query += ` AND label = ?`
		args = append(args, filter.Label)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*Run, error) {
	var r Run
	var createdAt time.Time
	err := row.Scan(&r.ID, &r.Label, &r.Sport, &r.Conferences, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}
	r.CreatedAt = createdAt.UTC()
	return &r, nil
}
