package extraction

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestUnzip_Extract(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "F_5500_2009_Latest.zip")
	writeZip(t, archive, map[string]string{
		"f_5500_2009_latest.csv":        "ACK_ID,PLAN_NAME\n1,Test Plan\n",
		"layouts/f_5500_2009_layout.txt": "layout",
	})

	dest := filepath.Join(dir, "F_5500")
	u := NewUnzip()

	if err := u.Extract(context.Background(), archive, dest); err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "f_5500_2009_latest.csv"))
	if err != nil {
		t.Fatalf("extracted csv missing: %v", err)
	}
	if string(data) != "ACK_ID,PLAN_NAME\n1,Test Plan\n" {
		t.Errorf("extracted content = %q", data)
	}

	if _, err := os.Stat(filepath.Join(dest, "layouts", "f_5500_2009_layout.txt")); err != nil {
		t.Errorf("nested entry missing: %v", err)
	}
}

func TestUnzip_ExtractOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "a.zip")
	writeZip(t, archive, map[string]string{"data.csv": "new"})

	dest := filepath.Join(dir, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "data.csv"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := NewUnzip().Extract(context.Background(), archive, dest); err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dest, "data.csv"))
	if string(data) != "new" {
		t.Errorf("existing file not overwritten, content = %q", data)
	}
}

func TestUnzip_ExtractRejectsCorruptArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "bad.zip")
	if err := os.WriteFile(archive, []byte("<html>404 not found</html>"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := NewUnzip().Extract(context.Background(), archive, filepath.Join(dir, "out")); err == nil {
		t.Fatal("Extract accepted a non-zip file")
	}
}

func TestUnzip_CanExtract(t *testing.T) {
	dir := t.TempDir()

	realZip := filepath.Join(dir, "real.zip")
	writeZip(t, realZip, map[string]string{"a.csv": "x"})

	fakeZip := filepath.Join(dir, "fake.zip")
	if err := os.WriteFile(fakeZip, []byte("<html>error page</html>"), 0644); err != nil {
		t.Fatal(err)
	}

	notZipExt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notZipExt, []byte("text"), 0644); err != nil {
		t.Fatal(err)
	}

	u := NewUnzip()

	tests := []struct {
		path string
		want bool
	}{
		{realZip, true},
		{fakeZip, false},
		{notZipExt, false},
	}

	for _, test := range tests {
		got, err := u.CanExtract(test.path)
		if err != nil {
			t.Errorf("CanExtract(%s) error: %v", test.path, err)
			continue
		}
		if got != test.want {
			t.Errorf("CanExtract(%s) = %v, want %v", test.path, got, test.want)
		}
	}
}
