package extraction

import "context"

// Extractor defines the behavior for unpacking downloaded archives.
type Extractor interface {
	// Extract unpacks the archive at the given path into the destination
	// directory, creating it if absent and overwriting same-named files.
	Extract(ctx context.Context, archivePath string, destDir string) error

	// CanExtract checks if this extractor can handle the given file.
	CanExtract(filePath string) (bool, error)

	// Returns the human-readable name of this extractor (e.g. "ZIP")
	Name() string
}
