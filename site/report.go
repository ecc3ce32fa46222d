package site

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// ReportHeader is the column order of the run report.
var ReportHeader = []string{"rel_path", "src", "dst", "text_nodes", "attr_texts", "meta_texts"}

// Record describes one translated document.
type Record struct {
	RelPath   string // document path relative to the corpus root
	Src       string // source file path
	Dst       string // output file path
	TextNodes int    // text runs translated
	AttrTexts int    // attribute values translated
	MetaTexts int    // meta descriptions translated
}

// Report accumulates one Record per translated document over a run.
type Report struct {
	records []Record
}

// Add appends a record.
func (r *Report) Add(rec Record) {
	r.records = append(r.records, rec)
}

// Len returns the number of records.
func (r *Report) Len() int {
	return len(r.records)
}

// Records returns a copy of the accumulated records.
func (r *Report) Records() []Record {
	return append([]Record(nil), r.records...)
}

// WriteCSV writes the header row followed by one row per record.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ReportHeader); err != nil {
		return err
	}
	for _, rec := range r.records {
		row := []string{
			rec.RelPath,
			rec.Src,
			rec.Dst,
			strconv.Itoa(rec.TextNodes),
			strconv.Itoa(rec.AttrTexts),
			strconv.Itoa(rec.MetaTexts),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the report to path, creating parent directories as needed.
func (r *Report) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- caller-controlled path
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	if err := r.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	return f.Close()
}
