package app

import (
	"context"
	"time"

	"github.com/pensiondata/efastdl/internal/domain"
	"github.com/pensiondata/efastdl/internal/infra/config"
	"github.com/pensiondata/efastdl/internal/infra/logger"
)

type Fetcher interface {
	// This allows the runner to fetch archives without importing the fetch package
	Fetch(ctx context.Context, url, destPath string, maxRetries int, retryDelay time.Duration) (domain.FetchOutcome, error)
}

type Extractor interface {
	// This allows the runner to unpack archives without importing the extraction package
	Extract(ctx context.Context, archivePath string, destDir string) error
	CanExtract(filePath string) (bool, error)
}

type AttemptStore interface {
	SaveRun(run *domain.Run) error
	SaveAttempt(a *domain.AttemptRecord) error
	GetRuns() ([]*domain.Run, error)
	GetRun(id string) (*domain.Run, error)
	GetRunAttempts(runID string) ([]*domain.AttemptRecord, error)
}

// Context holds the core environment and shared resources.
// It acts as the "Single Source of Truth" for the application state.
type Context struct {
	Config *config.Config
	Logger *logger.Logger
	Store  AttemptStore
}

// NewContext initializes the base environment.
func NewContext(cfg *config.Config, log *logger.Logger, store AttemptStore) *Context {
	return &Context{
		Config: cfg,
		Logger: log,
		Store:  store,
	}
}
