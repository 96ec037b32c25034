package dataset

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pensiondata/efastdl/internal/domain"
	"github.com/pensiondata/efastdl/internal/infra/config"
)

// Tasks generates the group's download tasks in manifest order:
// years ascending, stems in declared order within each year. The
// order is load-bearing only insofar as it fixes manifest row order.
func (g Group) Tasks(cfg *config.Config) []domain.DownloadTask {
	var tasks []domain.DownloadTask

	for _, e := range g.eras {
		for year := e.first; year <= e.last; year++ {
			if g.Dictionary {
				tasks = append(tasks, dictionaryTask(cfg, year))
				continue
			}

			for _, stem := range e.stems {
				tasks = append(tasks, filingTask(cfg, year, stem, e.latest))
			}
		}
	}

	return tasks
}

func filingTask(cfg *config.Config, year int, stem string, latest bool) domain.DownloadTask {
	var url, zipName string

	if latest {
		zipName = fmt.Sprintf("%s_%d_Latest.zip", stem, year)
		url = fmt.Sprintf("%s/%d/Latest/%s", cfg.Sources.MainBaseURL, year, zipName)
	} else {
		zipName = fmt.Sprintf("%s_%d.zip", stem, year)
		url = fmt.Sprintf("%s/%d/%s", cfg.Sources.MainBaseURL, year, zipName)
	}

	yearDir := filepath.Join(cfg.Download.BaseDir, strconv.Itoa(year))

	return domain.DownloadTask{
		Year:       year,
		FileStem:   stem,
		URL:        url,
		ZipPath:    filepath.Join(yearDir, zipName),
		ExtractDir: filepath.Join(yearDir, stem),
	}
}

func dictionaryTask(cfg *config.Config, year int) domain.DownloadTask {
	zipName := fmt.Sprintf("form-5500-%d-data-dictionary.zip", year)
	dictDir := filepath.Join(cfg.Download.BaseDir, "data_dictionaries")

	return domain.DownloadTask{
		Year:       year,
		URL:        fmt.Sprintf("%s/%s", cfg.Sources.DictionaryBaseURL, zipName),
		ZipPath:    filepath.Join(dictDir, zipName),
		ExtractDir: filepath.Join(dictDir, strconv.Itoa(year)),
	}
}

// ManifestPath returns the group's manifest location under the
// configured base directory.
func (g Group) ManifestPath(cfg *config.Config) string {
	return filepath.Join(cfg.Download.BaseDir, g.ManifestName)
}
