// Package storage keeps run metadata and population history in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the CLI keeps its history database.
const DefaultPath = "~/.cellsociety/history.db"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run describes one recorded simulation run.
type Run struct {
	ID        int64
	Scenario  string
	Model     string
	Rows      int
	Cols      int
	Topology  string
	Pattern   string
	Edges     string
	Seed      int64
	Steps     int
	CreatedAt time.Time
}

// Sample is the population of every state at one generation.
type Sample struct {
	Generation int
	Counts     map[string]int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			model TEXT NOT NULL,
			grid_rows INTEGER NOT NULL,
			grid_cols INTEGER NOT NULL,
			topology TEXT NOT NULL,
			pattern TEXT NOT NULL,
			edges TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_model ON runs(model);

		CREATE TABLE IF NOT EXISTS population (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			generation INTEGER NOT NULL,
			state TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, generation, state)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartRun inserts a run and returns its ID.
func (s *Store) StartRun(r Run) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (scenario, model, grid_rows, grid_cols, topology, pattern, edges, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario, r.Model, r.Rows, r.Cols, r.Topology, r.Pattern, r.Edges, r.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// FinishRun stores the number of steps a run completed.
func (s *Store) FinishRun(runID int64, steps int) error {
	if _, err := s.db.Exec("UPDATE runs SET steps = ? WHERE id = ?", steps, runID); err != nil {
		return fmt.Errorf("storage: cannot finish run %d: %w", runID, err)
	}
	return nil
}

// RecordPopulation stores the counts of one generation atomically.
func (s *Store) RecordPopulation(runID int64, generation int, counts map[string]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO population (run_id, generation, state, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()
	for state, n := range counts {
		if _, err := stmt.Exec(runID, generation, state, n); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot save population: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit population: %w", err)
	}
	return nil
}

// Runs lists the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, scenario, model, grid_rows, grid_cols, topology, pattern, edges, seed, steps, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Scenario, &r.Model, &r.Rows, &r.Cols, &r.Topology, &r.Pattern, &r.Edges,
			&r.Seed, &r.Steps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Run returns a single run, or nil if it does not exist.
func (s *Store) Run(runID int64) (*Run, error) {
	var r Run
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, scenario, model, grid_rows, grid_cols, topology, pattern, edges, seed, steps, created_at
		 FROM runs WHERE id = ?`,
		runID,
	).Scan(&r.ID, &r.Scenario, &r.Model, &r.Rows, &r.Cols, &r.Topology, &r.Pattern, &r.Edges,
		&r.Seed, &r.Steps, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// History returns a run's population samples ordered by generation.
func (s *Store) History(runID int64) ([]Sample, error) {
	rows, err := s.db.Query(
		`SELECT generation, state, count
		 FROM population
		 WHERE run_id = ?
		 ORDER BY generation, state`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query population: %w", err)
	}
	defer rows.Close()

	byGen := map[int]map[string]int{}
	for rows.Next() {
		var gen, n int
		var state string
		if err := rows.Scan(&gen, &state, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if byGen[gen] == nil {
			byGen[gen] = map[string]int{}
		}
		byGen[gen][state] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	samples := make([]Sample, 0, len(byGen))
	for gen, counts := range byGen {
		samples = append(samples, Sample{Generation: gen, Counts: counts})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Generation < samples[j].Generation })
	return samples, nil
}

// DeleteRun removes a run and its samples.
func (s *Store) DeleteRun(runID int64) error {
	if _, err := s.db.Exec("DELETE FROM population WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete population: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	return nil
}

func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
