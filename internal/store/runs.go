package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pensiondata/efastdl/internal/domain"
)

func (s *PersistentStore) SaveRun(run *domain.Run) error {

	finished := ""
	if !run.FinishedAt.IsZero() {
		finished = run.FinishedAt.UTC().Format(time.RFC3339)
	}

	query := `INSERT OR REPLACE INTO runs (id, started_at, finished_at, tasks, ok, failed, skipped)
              VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339),
		finished,
		run.Tasks,
		run.OK,
		run.Failed,
		run.Skipped,
	)
	return err
}

func (s *PersistentStore) GetRuns() ([]*domain.Run, error) {
	// KSUIDs sort chronologically, newest first here
	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, tasks, ok, failed, skipped
		FROM runs
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *PersistentStore) GetRun(id string) (*domain.Run, error) {
	row := s.db.QueryRow(`
		SELECT id, started_at, finished_at, tasks, ok, failed, skipped
		FROM runs
		WHERE id = ? LIMIT 1`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Return nil, nil to indicate "Not found"
		}
		return nil, fmt.Errorf("failed to fetch run: %w", err)
	}

	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	run := &domain.Run{}
	var started, finished string

	err := row.Scan(&run.ID, &started, &finished, &run.Tasks, &run.OK, &run.Failed, &run.Skipped)
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
		return nil, fmt.Errorf("bad started_at for run %s: %w", run.ID, err)
	}

	if finished != "" {
		if run.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
			return nil, fmt.Errorf("bad finished_at for run %s: %w", run.ID, err)
		}
	}

	return run, nil
}
