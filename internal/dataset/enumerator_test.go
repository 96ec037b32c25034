package dataset

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/pensiondata/efastdl/internal/infra/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Download: config.DownloadConfig{BaseDir: "/data"},
		Sources: config.SourcesConfig{
			MainBaseURL:       "https://example.gov/foia",
			DictionaryBaseURL: "https://example.gov/dict",
		},
	}
}

func groupByName(t *testing.T, name string) Group {
	t.Helper()
	for _, g := range Groups() {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("no group named %s", name)
	return Group{}
}

func TestGroups_TaskCounts(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		group string
		want  int
	}{
		{"efast2_main", 15 * 4},             // 2009-2023, four stems
		{"efast1_early", 10 * 2},            // 1999-2008, two stems
		{"data_dictionaries", 15},           // one per year 2009-2023
		{"schedule_a", 10*2 + 15*3},         // early era two stems, Latest era three
	}

	for _, test := range tests {
		g := groupByName(t, test.group)
		if got := len(g.Tasks(cfg)); got != test.want {
			t.Errorf("%s: got %d tasks, want %d", test.group, got, test.want)
		}
	}
}

func TestGroups_MainTaskShape(t *testing.T) {
	cfg := testConfig()
	tasks := groupByName(t, "efast2_main").Tasks(cfg)

	first := tasks[0]
	if first.Year != 2009 || first.FileStem != "F_5500" {
		t.Fatalf("first task = %d/%s, want 2009/F_5500", first.Year, first.FileStem)
	}

	wantURL := "https://example.gov/foia/2009/Latest/F_5500_2009_Latest.zip"
	if first.URL != wantURL {
		t.Errorf("URL = %s, want %s", first.URL, wantURL)
	}

	wantZip := filepath.Join("/data", "2009", "F_5500_2009_Latest.zip")
	if first.ZipPath != wantZip {
		t.Errorf("ZipPath = %s, want %s", first.ZipPath, wantZip)
	}

	wantDir := filepath.Join("/data", "2009", "F_5500")
	if first.ExtractDir != wantDir {
		t.Errorf("ExtractDir = %s, want %s", first.ExtractDir, wantDir)
	}
}

func TestGroups_EarlyTaskShape(t *testing.T) {
	cfg := testConfig()
	tasks := groupByName(t, "efast1_early").Tasks(cfg)

	// 2005 F_SCH_H: year offset 6, second stem
	var found bool
	for _, task := range tasks {
		if task.Year == 2005 && task.FileStem == "F_SCH_H" {
			found = true
			wantURL := "https://example.gov/foia/2005/F_SCH_H_2005.zip"
			if task.URL != wantURL {
				t.Errorf("URL = %s, want %s", task.URL, wantURL)
			}
			if task.ZipPath != filepath.Join("/data", "2005", "F_SCH_H_2005.zip") {
				t.Errorf("unexpected ZipPath %s", task.ZipPath)
			}
		}
	}
	if !found {
		t.Fatal("no task for 2005/F_SCH_H")
	}
}

func TestGroups_DictionaryTaskShape(t *testing.T) {
	cfg := testConfig()
	tasks := groupByName(t, "data_dictionaries").Tasks(cfg)

	for _, task := range tasks {
		if task.FileStem != "" {
			t.Errorf("dictionary task for %d has stem %q, want empty", task.Year, task.FileStem)
		}
	}

	first := tasks[0]
	wantURL := "https://example.gov/dict/form-5500-2009-data-dictionary.zip"
	if first.URL != wantURL {
		t.Errorf("URL = %s, want %s", first.URL, wantURL)
	}
	if first.ExtractDir != filepath.Join("/data", "data_dictionaries", "2009") {
		t.Errorf("unexpected ExtractDir %s", first.ExtractDir)
	}
}

func TestGroups_OrderYearsAscendingStemsDeclared(t *testing.T) {
	cfg := testConfig()

	for _, g := range Groups() {
		tasks := g.Tasks(cfg)
		for i := 1; i < len(tasks); i++ {
			if tasks[i].Year < tasks[i-1].Year {
				t.Errorf("%s: year order broken at index %d (%d after %d)",
					g.Name, i, tasks[i].Year, tasks[i-1].Year)
			}
		}
	}

	// Stem order within a year must match the declared order exactly.
	main := groupByName(t, "efast2_main").Tasks(cfg)
	wantStems := []string{"F_5500", "F_SCH_H", "F_SCH_R", "F_SCH_R_PART1"}
	for i, stem := range wantStems {
		if main[i].FileStem != stem {
			t.Errorf("main stem[%d] = %s, want %s", i, main[i].FileStem, stem)
		}
	}
}

func TestGroups_ScheduleAEras(t *testing.T) {
	cfg := testConfig()
	tasks := groupByName(t, "schedule_a").Tasks(cfg)

	if first := tasks[0]; first.Year != 1999 || first.FileStem != "F_5500_SF" {
		t.Fatalf("first task = %d/%s, want 1999/F_5500_SF", first.Year, first.FileStem)
	}

	for _, task := range tasks {
		year := strconv.Itoa(task.Year)
		if task.Year <= 2008 && task.FileStem == "F_SCH_A_PART1" {
			t.Errorf("F_SCH_A_PART1 enumerated for EFAST1 year %d", task.Year)
		}
		if task.Year <= 2008 && filepath.Base(task.ZipPath) != task.FileStem+"_"+year+".zip" {
			t.Errorf("early-era zip name %s does not match flat pattern", task.ZipPath)
		}
		if task.Year >= 2009 && filepath.Base(task.ZipPath) != task.FileStem+"_"+year+"_Latest.zip" {
			t.Errorf("Latest-era zip name %s does not match Latest pattern", task.ZipPath)
		}
	}
}
