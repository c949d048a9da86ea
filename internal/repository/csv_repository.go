package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jengzang/sharktrack-backend-go/internal/dataset"
)

// CSVRepository persists the three tables as CSV files in a directory
type CSVRepository struct {
	Dir string
}

// NewCSVRepository creates a CSV repository rooted at dir
func NewCSVRepository(dir string) *CSVRepository {
	return &CSVRepository{Dir: dir}
}

// Paths returns the three output file paths
func (r *CSVRepository) Paths() []string {
	return []string{
		filepath.Join(r.Dir, PredictionsFile),
		filepath.Join(r.Dir, TelemetryFile),
		filepath.Join(r.Dir, CombinedFile),
	}
}

// Save overwrites the three files with the given tables
func (r *CSVRepository) Save(ctx context.Context, tables dataset.Tables) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	predictions := make([][]string, 0, len(tables.Predictions))
	for _, p := range tables.Predictions {
		predictions = append(predictions, predictionRecord(p))
	}
	telemetry := make([][]string, 0, len(tables.TagEvents))
	for _, e := range tables.TagEvents {
		telemetry = append(telemetry, telemetryRecord(e))
	}
	combined := make([][]string, 0, len(tables.Combined))
	for _, c := range tables.Combined {
		combined = append(combined, combinedRecord(c))
	}

	files := []struct {
		name    string
		header  []string
		records [][]string
	}{
		{PredictionsFile, PredictionColumns, predictions},
		{TelemetryFile, TelemetryColumns, telemetry},
		{CombinedFile, CombinedColumns, combined},
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeCSV(filepath.Join(r.Dir, f.name), f.header, f.records); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the three tables back
func (r *CSVRepository) Load(ctx context.Context) (dataset.Tables, error) {
	var tables dataset.Tables

	err := readCSV(filepath.Join(r.Dir, PredictionsFile), PredictionColumns, func(rw *row) error {
		p, err := parsePrediction(rw)
		tables.Predictions = append(tables.Predictions, p)
		return err
	})
	if err != nil {
		return dataset.Tables{}, err
	}
	if err := ctx.Err(); err != nil {
		return dataset.Tables{}, err
	}

	err = readCSV(filepath.Join(r.Dir, TelemetryFile), TelemetryColumns, func(rw *row) error {
		e, err := parseTelemetry(rw)
		tables.TagEvents = append(tables.TagEvents, e)
		return err
	})
	if err != nil {
		return dataset.Tables{}, err
	}

	err = readCSV(filepath.Join(r.Dir, CombinedFile), CombinedColumns, func(rw *row) error {
		c, err := parseCombined(rw)
		tables.Combined = append(tables.Combined, c)
		return err
	})
	if err != nil {
		return dataset.Tables{}, err
	}

	return tables, nil
}

// writeCSV writes to a temporary file and renames it into place
func writeCSV(path string, header []string, records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header of %s: %w", path, err)
	}
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

func readCSV(path string, required []string, fn func(*row) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	header, err := rd.Read()
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	index, err := headerIndex(header, required)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for line := 2; ; line++ {
		record, err := rd.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := fn(newRow(index, record)); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}
}
