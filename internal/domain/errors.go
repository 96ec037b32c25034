package domain

import "fmt"

// DownloadError reports an exhausted retry loop for a single URL.
type DownloadError struct {
	URL      string
	Attempts int
	Err      error // last attempt's failure
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }
