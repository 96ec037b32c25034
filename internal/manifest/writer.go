package manifest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
)

// Writer is an append-only CSV audit log. Rows are flushed as they
// are written so a killed run still leaves every completed task on
// disk; rows are never rewritten or sorted afterward.
type Writer struct {
	f   *os.File
	csv *csv.Writer
	enc *csvutil.Encoder
}

// Open truncates or creates the manifest at path and writes the
// header row derived from the record type's csv tags.
func Open(path string, record any) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create manifest directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(record); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write manifest header: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &Writer{f: f, csv: cw, enc: enc}, nil
}

// Append writes one record row. The record must be the same type the
// writer was opened with.
func (w *Writer) Append(record any) error {
	if err := w.enc.Encode(record); err != nil {
		return fmt.Errorf("failed to encode manifest row: %w", err)
	}

	w.csv.Flush()
	return w.csv.Error()
}

func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
