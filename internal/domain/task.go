package domain

// Status is the outcome recorded in a manifest row.
type Status string

const (
	StatusOK           Status = "OK"
	StatusDownloadFail Status = "DOWNLOAD_FAIL"
)

// FetchOutcome distinguishes a real network download from an
// exists-on-disk short circuit. Both count as success.
type FetchOutcome int

const (
	OutcomeDownloaded FetchOutcome = iota
	OutcomeSkipped
)

func (o FetchOutcome) String() string {
	if o == OutcomeSkipped {
		return "skipped"
	}
	return "downloaded"
}

// DownloadTask describes a single (year, file-type) unit of work.
// Tasks are generated fresh per run and never mutated.
type DownloadTask struct {
	Year       int
	FileStem   string // empty for data dictionaries
	URL        string
	ZipPath    string
	ExtractDir string
}
