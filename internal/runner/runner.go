package runner

import (
	"context"
	"time"

	"github.com/pensiondata/efastdl/internal/app"
	"github.com/pensiondata/efastdl/internal/dataset"
	"github.com/pensiondata/efastdl/internal/domain"
	"github.com/pensiondata/efastdl/internal/manifest"
	"github.com/segmentio/ksuid"
)

// Runner drives every dataset group through the same
// fetch -> extract -> record loop. A single task's failure is
// downgraded to a manifest row and a log line; only context
// cancellation stops the run early.
type Runner struct {
	app       *app.Context
	fetcher   app.Fetcher
	extractor app.Extractor

	// politeness pause, overridable in tests
	pause func(ctx context.Context, d time.Duration)
}

func New(appCtx *app.Context, fetcher app.Fetcher, extractor app.Extractor) *Runner {
	return &Runner{
		app:       appCtx,
		fetcher:   fetcher,
		extractor: extractor,
		pause:     sleep,
	}
}

// Run processes all four dataset groups sequentially and returns the
// run summary. The returned error is non-nil only on cancellation.
func (r *Runner) Run(ctx context.Context) (*domain.Run, error) {
	run := &domain.Run{
		ID:        ksuid.New().String(),
		StartedAt: time.Now(),
	}

	if err := r.app.Store.SaveRun(run); err != nil {
		r.app.Logger.Warn("Failed to record run start: %v", err)
	}

	groups := dataset.Groups()

	var runErr error
	for _, g := range groups {
		if err := r.processGroup(ctx, run, g); err != nil {
			runErr = err
			break
		}
	}

	run.FinishedAt = time.Now()
	if err := r.app.Store.SaveRun(run); err != nil {
		r.app.Logger.Warn("Failed to record run summary: %v", err)
	}

	r.app.Logger.Info("Run %s finished: %d tasks, %d downloaded, %d skipped, %d failed",
		run.ID, run.Tasks, run.OK, run.Skipped, run.Failed)
	for _, g := range groups {
		r.app.Logger.Info("Manifest for %s: %s", g.Name, g.ManifestPath(r.app.Config))
	}

	return run, runErr
}

// processGroup walks one group's task sequence with a fresh manifest.
// Manifest rows are written in task order, one per task, no exceptions.
func (r *Runner) processGroup(ctx context.Context, run *domain.Run, g dataset.Group) error {
	tasks := g.Tasks(r.app.Config)
	run.Tasks += len(tasks)

	mw, err := manifest.Open(g.ManifestPath(r.app.Config), manifestHeader(g))
	if err != nil {
		// Without a manifest the group has no audit trail, so skip it
		// rather than downloading unrecorded files.
		r.app.Logger.Error("Skipping group %s: %v", g.Name, err)
		return nil
	}
	defer mw.Close()

	r.app.Logger.Info("Processing group %s (%d tasks)", g.Name, len(tasks))

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.processTask(ctx, run, g, mw, task)

		// The politeness pause applies after every task, including
		// skips. That throttles even when no request was made, but it
		// matches the long-standing behavior operators expect.
		r.pause(ctx, r.app.Config.Download.PauseBetweenRequests)
	}

	return nil
}

func (r *Runner) processTask(ctx context.Context, run *domain.Run, g dataset.Group, mw *manifest.Writer, task domain.DownloadTask) {
	cfg := r.app.Config.Download

	outcome, err := r.fetcher.Fetch(ctx, task.URL, task.ZipPath, cfg.MaxRetries, cfg.RetryBackoff)

	status := domain.StatusOK
	if err != nil {
		status = domain.StatusDownloadFail
		run.Failed++
		r.app.Logger.Error("Giving up on %s: %v", task.URL, err)
	} else {
		if outcome == domain.OutcomeSkipped {
			run.Skipped++
		} else {
			run.OK++
		}
		r.extract(ctx, task)
	}

	if err := mw.Append(manifestRow(g, task, status)); err != nil {
		r.app.Logger.Error("Failed to write manifest row for %s %d: %v", g.Name, task.Year, err)
	}

	attempt := &domain.AttemptRecord{
		RunID:     run.ID,
		Dataset:   g.Name,
		Year:      task.Year,
		FileType:  task.FileStem,
		Status:    status,
		ZipPath:   task.ZipPath,
		URL:       task.URL,
		CreatedAt: time.Now(),
	}
	if err == nil {
		attempt.Outcome = outcome.String()
	}

	if err := r.app.Store.SaveAttempt(attempt); err != nil {
		r.app.Logger.Warn("Failed to record attempt for %s: %v", task.URL, err)
	}
}

// extract unpacks a fetched archive. Extraction problems are logged
// and never fail the task: the zip is on disk and the manifest row
// stays OK.
func (r *Runner) extract(ctx context.Context, task domain.DownloadTask) {
	ok, err := r.extractor.CanExtract(task.ZipPath)
	if err != nil {
		r.app.Logger.Error("Failed to inspect %s: %v", task.ZipPath, err)
		return
	}
	if !ok {
		r.app.Logger.Warn("Not a zip archive, leaving unextracted: %s", task.ZipPath)
		return
	}

	if err := r.extractor.Extract(ctx, task.ZipPath, task.ExtractDir); err != nil {
		r.app.Logger.Error("Extraction failed for %s: %v", task.ZipPath, err)
	}
}

func manifestHeader(g dataset.Group) any {
	if g.Dictionary {
		return domain.DictionaryManifestRecord{}
	}
	return domain.ManifestRecord{}
}

func manifestRow(g dataset.Group, task domain.DownloadTask, status domain.Status) any {
	if g.Dictionary {
		return domain.DictionaryManifestRecord{
			Year:    task.Year,
			Status:  status,
			ZipPath: task.ZipPath,
			URL:     task.URL,
		}
	}
	return domain.ManifestRecord{
		Year:     task.Year,
		FileType: task.FileStem,
		Status:   status,
		ZipPath:  task.ZipPath,
		URL:      task.URL,
	}
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
