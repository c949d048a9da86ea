package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
)

// FileReport describes one output file
type FileReport struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
	Bytes  int64  `json:"bytes"`
	Rows   int    `json:"rows"`
}

// VerifyReport summarises the output directory
type VerifyReport struct {
	Files    []FileReport `json:"files"`
	Accuracy float64      `json:"accuracy"`
	Complete bool         `json:"complete"`
}

// Verify checks that the three files exist and parse, and reports their sizes,
// row counts and the tag accuracy
func (r *CSVRepository) Verify(ctx context.Context) (VerifyReport, error) {
	var report VerifyReport
	report.Complete = true

	for _, path := range r.Paths() {
		fr := FileReport{Name: filepath.Base(path)}
		info, err := os.Stat(path)
		switch {
		case err == nil:
			fr.Exists = true
			fr.Bytes = info.Size()
		case os.IsNotExist(err):
			report.Complete = false
		default:
			return VerifyReport{}, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		report.Files = append(report.Files, fr)
	}
	if !report.Complete {
		return report, nil
	}

	tables, err := r.Load(ctx)
	if err != nil {
		return report, err
	}
	report.Files[0].Rows = len(tables.Predictions)
	report.Files[1].Rows = len(tables.TagEvents)
	report.Files[2].Rows = len(tables.Combined)

	if n := len(tables.TagEvents); n > 0 {
		correct := 0
		for _, e := range tables.TagEvents {
			if e.Accuracy == models.AccuracyCorrect {
				correct++
			}
		}
		report.Accuracy = float64(correct) / float64(n)
	}

	return report, nil
}
