package domain

// ManifestRecord is one row of a dataset group's download manifest.
// Fields are identifiers and paths without embedded commas, so the
// CSV needs no quoting.
type ManifestRecord struct {
	Year     int    `csv:"year"`
	FileType string `csv:"file_type"`
	Status   Status `csv:"status"`
	ZipPath  string `csv:"zip_path"`
	URL      string `csv:"url"`
}

// DictionaryManifestRecord is the dictionary-group row shape. The
// dictionary manifest has no file_type column since there is exactly
// one dictionary per year.
type DictionaryManifestRecord struct {
	Year    int    `csv:"year"`
	Status  Status `csv:"status"`
	ZipPath string `csv:"zip_path"`
	URL     string `csv:"url"`
}
