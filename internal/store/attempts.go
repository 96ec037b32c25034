package store

import (
	"fmt"
	"time"

	"github.com/pensiondata/efastdl/internal/domain"
)

func (s *PersistentStore) SaveAttempt(a *domain.AttemptRecord) error {

	query := `INSERT INTO attempts (run_id, dataset, year, file_type, status, outcome, zip_path, url, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		a.RunID,
		a.Dataset,
		a.Year,
		a.FileType,
		string(a.Status),
		a.Outcome,
		a.ZipPath,
		a.URL,
		a.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetRunAttempts returns a run's attempts in the order they were
// processed, which matches manifest row order.
func (s *PersistentStore) GetRunAttempts(runID string) ([]*domain.AttemptRecord, error) {
	rows, err := s.db.Query(`
		SELECT run_id, dataset, year, file_type, status, outcome, zip_path, url, created_at
		FROM attempts
		WHERE run_id = ?
		ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*domain.AttemptRecord
	for rows.Next() {
		a := &domain.AttemptRecord{}
		var status, created string

		err := rows.Scan(&a.RunID, &a.Dataset, &a.Year, &a.FileType, &status, &a.Outcome, &a.ZipPath, &a.URL, &created)
		if err != nil {
			return nil, err
		}

		a.Status = domain.Status(status)
		if a.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("bad created_at for attempt in run %s: %w", a.RunID, err)
		}

		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}
