package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mediator/internal/bargain"
	"mediator/internal/logging"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sqlx.DB
}

var _ Store = (*SqlStore)(nil)

type runRow struct {
	ID        string  `db:"id"`
	Title     string  `db:"title"`
	Scenario  string  `db:"scenario"`
	M0        float64 `db:"m0"`
	M1        float64 `db:"m1"`
	M2        float64 `db:"m2"`
	C0        float64 `db:"c0"`
	C1        float64 `db:"c1"`
	C2        float64 `db:"c2"`
	X0        float64 `db:"x0"`
	X1        float64 `db:"x1"`
	X2        float64 `db:"x2"`
	Mediator  float64 `db:"mediator"`
	EFGPath   string  `db:"efg_path"`
	CreatedAt string  `db:"created_at"`
}

type outcomeRow struct {
	RunID     string  `db:"run_id"`
	Position  int     `db:"position"`
	Label     string  `db:"label"`
	Coalition int     `db:"coalition"`
	P0        float64 `db:"p0"`
	P1        float64 `db:"p1"`
	P2        float64 `db:"p2"`
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory if it does not exist.
func Open(path string) (*SqlStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.Get(&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'")
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableCount == 0 {
		return s.freshInstall()
	}

	var v int
	err = s.db.Get(&v, "SELECT version FROM schema_version LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return s.freshInstall()
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != schemaVersion {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

func (s *SqlStore) freshInstall() error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(schemaV1); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("reset schema version: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersion); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts the run and its outcomes in one transaction. An empty ID
// gets a fresh UUID and a zero CreatedAt gets the current time.
func (s *SqlStore) SaveRun(ctx context.Context, r *Run) (string, error) {
	if len(r.Params.M) != bargain.NumParties || len(r.Params.C) != bargain.NumParties || len(r.Params.X) != bargain.NumParties {
		return "", fmt.Errorf("%w: run params must have %d entries per vector", bargain.ErrInvalidParameter, bargain.NumParties)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := toRunRow(r)
	_, err = tx.NamedExecContext(ctx, `INSERT INTO runs
		(id, title, scenario, m0, m1, m2, c0, c1, c2, x0, x1, x2, mediator, efg_path, created_at)
		VALUES (:id, :title, :scenario, :m0, :m1, :m2, :c0, :c1, :c2, :x0, :x1, :x2, :mediator, :efg_path, :created_at)`,
		row)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	for i, o := range r.Outcomes {
		_, err := tx.NamedExecContext(ctx, `INSERT INTO outcomes
			(run_id, position, label, coalition, p0, p1, p2)
			VALUES (:run_id, :position, :label, :coalition, :p0, :p1, :p2)`,
			outcomeRow{
				RunID: r.ID, Position: i, Label: o.Label, Coalition: int(o.Coalition),
				P0: o.Payoffs[0], P1: o.Payoffs[1], P2: o.Payoffs[2],
			})
		if err != nil {
			return "", fmt.Errorf("insert outcome %q: %w", o.Label, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run tx: %w", err)
	}
	logging.New("store").Info("run recorded", "id", r.ID, "scenario", r.Scenario)
	return r.ID, nil
}

// GetRun returns the run with its outcomes in table order. id may be the
// full run id or any prefix of it that matches exactly one run.
func (s *SqlStore) GetRun(ctx context.Context, id string) (*Run, error) {
	id, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	var row runRow
	err = s.db.GetContext(ctx, &row, "SELECT * FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	r, err := row.toRun()
	if err != nil {
		return nil, err
	}

	var outs []outcomeRow
	err = s.db.SelectContext(ctx, &outs,
		"SELECT * FROM outcomes WHERE run_id = ? ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	for _, o := range outs {
		r.Outcomes = append(r.Outcomes, Outcome{
			Label:     o.Label,
			Coalition: bargain.Coalition(o.Coalition),
			Payoffs:   [bargain.NumParties]float64{o.P0, o.P1, o.P2},
		})
	}
	return r, nil
}

// resolveID expands a unique id prefix to the full id. An exact match
// always wins.
func (s *SqlStore) resolveID(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	var ids []string
	err := s.db.SelectContext(ctx, &ids,
		`SELECT id FROM runs WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		likeEscaper.Replace(prefix)+"%")
	if err != nil {
		return "", fmt.Errorf("resolve run id: %w", err)
	}
	switch {
	case len(ids) == 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case len(ids) == 1 || ids[0] == prefix:
		return ids[0], nil
	}
	return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
func (s *SqlStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	q := "SELECT * FROM runs ORDER BY created_at DESC, rowid DESC"
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	var rows []runRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	runs := make([]*Run, 0, len(rows))
	for _, row := range rows {
		r, err := row.toRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}

func toRunRow(r *Run) runRow {
	p := r.Params
	return runRow{
		ID: r.ID, Title: r.Title, Scenario: r.Scenario,
		M0: p.M[0], M1: p.M[1], M2: p.M[2],
		C0: p.C[0], C1: p.C[1], C2: p.C[2],
		X0: p.X[0], X1: p.X[1], X2: p.X[2],
		Mediator:  p.Mediator,
		EFGPath:   r.EFGPath,
		CreatedAt: r.CreatedAt.Format(timeLayout),
	}
}

func (row runRow) toRun() (*Run, error) {
	created, err := time.Parse(timeLayout, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of run %s: %w", row.ID, err)
	}
	return &Run{
		ID:       row.ID,
		Title:    row.Title,
		Scenario: row.Scenario,
		Params: bargain.Params{
			M:        []float64{row.M0, row.M1, row.M2},
			C:        []float64{row.C0, row.C1, row.C2},
			X:        []float64{row.X0, row.X1, row.X2},
			Mediator: row.Mediator,
		},
		EFGPath:   row.EFGPath,
		CreatedAt: created,
	}, nil
}
