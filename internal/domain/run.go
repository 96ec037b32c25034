package domain

import "time"

// Run summarizes one invocation of the download driver.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt,omitzero"`
	Tasks      int       `json:"tasks"`
	OK         int       `json:"ok"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
}

// AttemptRecord mirrors one manifest row in the attempt history
// store, enriched with the run it belongs to and the fetch outcome
// (the CSV manifests cannot distinguish a skip from a download).
type AttemptRecord struct {
	RunID     string    `json:"runId"`
	Dataset   string    `json:"dataset"`
	Year      int       `json:"year"`
	FileType  string    `json:"fileType,omitempty"`
	Status    Status    `json:"status"`
	Outcome   string    `json:"outcome,omitempty"` // downloaded | skipped | empty on failure
	ZipPath   string    `json:"zipPath"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}
