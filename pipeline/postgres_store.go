package pipeline

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresRunStore implements RunStore backed by PostgreSQL.
type PostgresRunStore struct {
	db *sql.DB
}

// NewPostgresRunStore creates a PostgreSQL-backed RunStore.
func NewPostgresRunStore(db *sql.DB) *PostgresRunStore {
	return &PostgresRunStore{db: db}
}

// CreateRun inserts a new run.
func (s *PostgresRunStore) CreateRun(run *Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.Status == "" {
		run.Status = RunPending
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (id, request_id, dataset, status, record_count, test_count, row_count, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, run.ID, run.RequestID, run.Dataset, run.Status,
		run.RecordCount, run.TestCount, run.RowCount, run.StartedAt)

	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// FinishRun marks a run finished.
func (s *PostgresRunStore) FinishRun(id, status string, rowCount int) error {
	result, err := s.db.Exec(`
		UPDATE runs
		SET status = $1, row_count = $2, finished_at = $3
		WHERE id = $4
	`, status, rowCount, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

// AppendResults inserts result rows for a run.
func (s *PostgresRunStore) AppendResults(runID string, rows []ResultRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO run_results (run_id, record_id, test_id, status, result, comment, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.Exec(runID, row.RecordID, row.TestID, row.Status, row.Result, row.Comment, i); err != nil {
			return fmt.Errorf("failed to insert result row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}
	return nil
}

// GetRun retrieves a run by id.
func (s *PostgresRunStore) GetRun(id string) (*Run, error) {
	var run Run
	var finished sql.NullTime
	err := s.db.QueryRow(`
		SELECT id, request_id, dataset, status, record_count, test_count, row_count, started_at, finished_at
		FROM runs
		WHERE id = $1
	`, id).Scan(
		&run.ID,
		&run.RequestID,
		&run.Dataset,
		&run.Status,
		&run.RecordCount,
		&run.TestCount,
		&run.RowCount,
		&run.StartedAt,
		&finished,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if finished.Valid {
		run.FinishedAt = finished.Time
	}
	return &run, nil
}

// ListRuns returns all runs, most recent first.
func (s *PostgresRunStore) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query(`
		SELECT id, request_id, dataset, status, record_count, test_count, row_count, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var finished sql.NullTime
		if err := rows.Scan(&run.ID, &run.RequestID, &run.Dataset, &run.Status,
			&run.RecordCount, &run.TestCount, &run.RowCount,
			&run.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finished.Valid {
			run.FinishedAt = finished.Time
		}
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// Results returns a run's result rows in insertion order.
func (s *PostgresRunStore) Results(runID string) ([]ResultRow, error) {
	rows, err := s.db.Query(`
		SELECT record_id, test_id, status, result, comment
		FROM run_results
		WHERE run_id = $1
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var out []ResultRow
	for rows.Next() {
		var row ResultRow
		if err := rows.Scan(&row.RecordID, &row.TestID, &row.Status, &row.Result, &row.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return out, nil
}
