package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pensiondata/efastdl/internal/domain"
	"github.com/pensiondata/efastdl/internal/infra/logger"
)

// Fetcher downloads zip archives over plain HTTPS GET. A zip that is
// already on disk is treated as proof of prior success and is never
// re-verified or re-downloaded.
type Fetcher struct {
	client *http.Client
	log    *logger.Logger
}

func New(timeout time.Duration, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Fetch copies url to destPath, retrying up to maxRetries attempts
// with a fixed delay between them. Returns OutcomeSkipped without any
// network call when destPath already exists.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string, maxRetries int, retryDelay time.Duration) (domain.FetchOutcome, error) {
	if _, err := os.Stat(destPath); err == nil {
		f.log.Info("Already downloaded, skipping: %s", destPath)
		return domain.OutcomeSkipped, nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory for %s: %w", destPath, err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		f.log.Info("Downloading %s (attempt %d/%d)", url, attempt, maxRetries)

		lastErr = f.download(ctx, url, destPath)
		if lastErr == nil {
			f.log.Info("Downloaded %s", destPath)
			return domain.OutcomeDownloaded, nil
		}

		f.log.Warn("Attempt %d/%d failed for %s: %v", attempt, maxRetries, url, lastErr)

		if attempt < maxRetries {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return 0, &domain.DownloadError{URL: url, Attempts: attempt, Err: ctx.Err()}
			}
		}
	}

	return 0, &domain.DownloadError{URL: url, Attempts: maxRetries, Err: lastErr}
}

// download performs one GET attempt. The body is written to a .part
// file and renamed into place only on success, so an interrupted
// attempt never satisfies the exists-check of a later run.
func (f *Fetcher) download(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d for %s", resp.StatusCode, url)
	}

	partPath := destPath + ".part"

	out, err := os.Create(partPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", partPath, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(partPath)
		return fmt.Errorf("failed to copy response body to %s: %w", partPath, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(partPath)
		return err
	}

	return os.Rename(partPath, destPath)
}
