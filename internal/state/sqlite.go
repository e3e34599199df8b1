// Package state records analysis runs and learned mappings in SQLite. The
// JSON custom mapping table stays the interchange format; this store is
// the history behind it.
package state

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// RunStatus is the lifecycle state of an analysis run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// AnalysisRun is one recorded invocation of the analyze pipeline.
type AnalysisRun struct {
	ID           string     `json:"id"`
	File         string     `json:"file"`
	Sheet        string     `json:"sheet"`
	Status       RunStatus  `json:"status"`
	TotalFields  int        `json:"total_fields"`
	MappedFields int        `json:"mapped_fields"`
	AvgQuality   float64    `json:"avg_quality"`
	Error        string     `json:"error,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// LearnedMapping is one mapping persisted through --learn or the
// interactive learn loop.
type LearnedMapping struct {
	ID            int64     `json:"id"`
	RunID         string    `json:"run_id,omitempty"`
	SourceName    string    `json:"source_name"`
	CanonicalName string    `json:"canonical_name"`
	Group         string    `json:"group"`
	DType         string    `json:"dtype"`
	LearnedAt     time.Time `json:"learned_at"`
}

// Store is the SQLite-backed run and learn history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates an unopened store.
func NewStore() *Store {
	return &Store{}
}

// Open opens the database at path. Use ":memory:" for tests.
func (s *Store) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the tables if they do not exist.
func (s *Store) InitSchema() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// BeginRun records the start of an analyze invocation.
func (s *Store) BeginRun(file, sheet string) (*AnalysisRun, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &AnalysisRun{
		ID:        uuid.New().String(),
		File:      file,
		Sheet:     sheet,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO analysis_runs (id, file, sheet, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.File, run.Sheet, run.Status, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// RunTotals carries the final counters of a completed run.
type RunTotals struct {
	TotalFields  int
	MappedFields int
	AvgQuality   float64
}

// CompleteRun marks a run finished with its totals; a non-empty errMsg
// records a failed run.
func (s *Store) CompleteRun(id string, totals RunTotals, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	status := RunStatusCompleted
	var errPtr *string
	if errMsg != "" {
		status = RunStatusFailed
		errPtr = &errMsg
	}
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`UPDATE analysis_runs
		 SET status = ?, total_fields = ?, mapped_fields = ?, avg_quality = ?, error = ?, completed_at = ?
		 WHERE id = ?`,
		status, totals.TotalFields, totals.MappedFields, totals.AvgQuality, errPtr, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (*AnalysisRun, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &AnalysisRun{}
	var completedAt sql.NullTime
	var errMsg sql.NullString

	err := s.db.QueryRow(
		`SELECT id, file, sheet, status, total_fields, mapped_fields, avg_quality, error, started_at, completed_at
		 FROM analysis_runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.File, &run.Sheet, &run.Status, &run.TotalFields,
		&run.MappedFields, &run.AvgQuality, &errMsg, &run.StartedAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	if errMsg.Valid {
		run.Error = errMsg.String
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]*AnalysisRun, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, file, sheet, status, total_fields, mapped_fields, avg_quality, error, started_at, completed_at
		 FROM analysis_runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*AnalysisRun
	for rows.Next() {
		run := &AnalysisRun{}
		var completedAt sql.NullTime
		var errMsg sql.NullString
		if err := rows.Scan(&run.ID, &run.File, &run.Sheet, &run.Status, &run.TotalFields,
			&run.MappedFields, &run.AvgQuality, &errMsg, &run.StartedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if completedAt.Valid {
			run.CompletedAt = &completedAt.Time
		}
		if errMsg.Valid {
			run.Error = errMsg.String
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RecordLearned appends one learned mapping linked to a run. runID may be
// empty for interactive learning outside an analyze run.
func (s *Store) RecordLearned(runID string, m LearnedMapping) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	learnedAt := m.LearnedAt
	if learnedAt.IsZero() {
		learnedAt = time.Now().UTC()
	}
	var runPtr *string
	if runID != "" {
		runPtr = &runID
	}

	_, err := s.db.Exec(
		`INSERT INTO learned_mappings (run_id, source_name, canonical_name, business_group, dtype, learned_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runPtr, m.SourceName, m.CanonicalName, m.Group, m.DType, learnedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record learned mapping: %w", err)
	}
	return nil
}

// ListLearned returns learned mappings, newest first. An empty sourceName
// lists everything up to limit.
func (s *Store) ListLearned(sourceName string, limit int) ([]*LearnedMapping, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, COALESCE(run_id, ''), source_name, canonical_name, business_group, dtype, learned_at
	          FROM learned_mappings`
	args := []any{}
	if sourceName != "" {
		query += ` WHERE source_name = ?`
		args = append(args, sourceName)
	}
	query += ` ORDER BY learned_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list learned mappings: %w", err)
	}
	defer rows.Close()

	var out []*LearnedMapping
	for rows.Next() {
		m := &LearnedMapping{}
		if err := rows.Scan(&m.ID, &m.RunID, &m.SourceName, &m.CanonicalName,
			&m.Group, &m.DType, &m.LearnedAt); err != nil {
			return nil, fmt.Errorf("failed to scan learned mapping: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
