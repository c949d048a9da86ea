package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/sharktrack-backend-go/internal/database"
	"github.com/jengzang/sharktrack-backend-go/internal/dataset"
	"github.com/jengzang/sharktrack-backend-go/internal/models"
)

// RunRecord is the metadata row stored alongside the tables
type RunRecord struct {
	RunID        string
	Seed         uint64
	GeneratedAt  time.Time
	ProductCount int
	EventCount   int
}

// SQLiteRepository mirrors the three tables into a SQLite database
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a repository over an open, migrated database
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save replaces all rows with the given tables in one transaction
func (r *SQLiteRepository) Save(ctx context.Context, run RunRecord, tables dataset.Tables) error {
	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		for _, table := range []string{"satellite_predictions", "tag_telemetry", "combined_display", "runs"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO runs (run_id, seed, generated_at, product_count, event_count) VALUES (?, ?, ?, ?, ?)`,
			run.RunID, int64(run.Seed), formatTime(run.GeneratedAt), run.ProductCount, run.EventCount)
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}

		if err := insertPredictions(ctx, tx, tables.Predictions); err != nil {
			return err
		}
		if err := insertTelemetry(ctx, tx, tables.TagEvents); err != nil {
			return err
		}
		return insertCombined(ctx, tx, tables.Combined)
	})
}

func insertPredictions(ctx context.Context, tx *sql.Tx, predictions []models.SatellitePrediction) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO satellite_predictions (
		prediction_id, latitude, longitude, confidence, timestamp, water_temperature, chlorophyll_a,
		ssh_anomaly, plankton_density, predicted_prey_type, habitat_quality, location_name,
		environmental_events_nearby, seq
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare prediction insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range predictions {
		_, err := stmt.ExecContext(ctx,
			p.ID, p.Sample.Point.Latitude, p.Sample.Point.Longitude, p.Confidence(), formatTime(p.Timestamp),
			p.Sample.SeaSurfaceTemperature, p.Sample.ChlorophyllA, p.Sample.SSHAnomaly, p.Sample.PlanktonDensity,
			string(p.PredictedPrey), string(p.Score.Quality), p.LocationName, p.Sample.NearbyEventCount, i)
		if err != nil {
			return fmt.Errorf("failed to insert prediction %s: %w", p.ID, err)
		}
	}
	return nil
}

func insertTelemetry(ctx context.Context, tx *sql.Tx, events []models.TagEvent) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tag_telemetry (
		tag_id, shark_id, prediction_id, shark_species, shark_size_m, latitude, longitude, timestamp,
		feeding_intensity, stomach_ph, bite_force_newtons, swimming_speed_ms, water_temperature,
		actual_prey_type, predicted_prey_type, prediction_accuracy, tag_confidence, satellite_confidence,
		battery_level_percent, signal_strength_dbm, seq
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare telemetry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range events {
		_, err := stmt.ExecContext(ctx,
			e.TagID, e.Shark.ID, e.PredictionID, e.Shark.Species.Name, e.Shark.SizeM, e.Latitude, e.Longitude,
			formatTime(e.Timestamp), e.FeedingIntensity, e.StomachPH, e.BiteForce, e.SwimmingSpeed,
			e.WaterTemperature, string(e.ActualPrey), string(e.PredictedPrey), string(e.Accuracy),
			e.TagConfidence, e.SatelliteConfidence, e.BatteryLevel, e.SignalStrength, i)
		if err != nil {
			return fmt.Errorf("failed to insert tag event %s: %w", e.TagID, err)
		}
	}
	return nil
}

func insertCombined(ctx context.Context, tx *sql.Tx, records []models.CombinedRecord) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO combined_display (
		event_id, latitude, longitude, display_confidence, timestamp, prey_type, marker_type,
		popup_info, data_source, habitat_quality, location_name, shark_species, shark_size_m, seq
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare combined insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range records {
		_, err := stmt.ExecContext(ctx,
			c.EventID, c.Latitude, c.Longitude, c.DisplayConfidence, formatTime(c.Timestamp),
			string(c.PreyType), string(c.MarkerType), c.PopupInfo, c.DataSource,
			c.HabitatQuality, c.LocationName, c.SharkSpecies, c.SharkSizeM, i)
		if err != nil {
			return fmt.Errorf("failed to insert combined row %s: %w", c.EventID, err)
		}
	}
	return nil
}

// LoadRun returns the stored run metadata
func (r *SQLiteRepository) LoadRun(ctx context.Context) (RunRecord, error) {
	var (
		run         RunRecord
		seed        int64
		generatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT run_id, seed, generated_at, product_count, event_count FROM runs LIMIT 1`).
		Scan(&run.RunID, &seed, &generatedAt, &run.ProductCount, &run.EventCount)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to load run: %w", err)
	}
	run.Seed = uint64(seed)
	if run.GeneratedAt, err = time.Parse(time.RFC3339, generatedAt); err != nil {
		return RunRecord{}, fmt.Errorf("failed to parse run timestamp: %w", err)
	}
	return run, nil
}

// Load reads the three tables back in generation order
func (r *SQLiteRepository) Load(ctx context.Context) (dataset.Tables, error) {
	var tables dataset.Tables
	var err error

	if tables.Predictions, err = r.loadPredictions(ctx); err != nil {
		return dataset.Tables{}, err
	}
	if tables.TagEvents, err = r.loadTelemetry(ctx); err != nil {
		return dataset.Tables{}, err
	}
	if tables.Combined, err = r.loadCombined(ctx); err != nil {
		return dataset.Tables{}, err
	}
	return tables, nil
}

func (r *SQLiteRepository) loadPredictions(ctx context.Context) ([]models.SatellitePrediction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT prediction_id, latitude, longitude, confidence, timestamp,
		water_temperature, chlorophyll_a, ssh_anomaly, plankton_density, predicted_prey_type,
		location_name, environmental_events_nearby
		FROM satellite_predictions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []models.SatellitePrediction
	for rows.Next() {
		var (
			p          models.SatellitePrediction
			confidence float64
			ts, prey   string
		)
		err := rows.Scan(&p.ID, &p.Sample.Point.Latitude, &p.Sample.Point.Longitude, &confidence, &ts,
			&p.Sample.SeaSurfaceTemperature, &p.Sample.ChlorophyllA, &p.Sample.SSHAnomaly,
			&p.Sample.PlanktonDensity, &prey, &p.LocationName, &p.Sample.NearbyEventCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		if p.Timestamp, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, fmt.Errorf("prediction %s: %w", p.ID, err)
		}
		p.Score = models.NewHabitatScore(confidence)
		p.PredictedPrey = models.PreyType(prey)
		p.Sample.LocationName = p.LocationName
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}

func (r *SQLiteRepository) loadTelemetry(ctx context.Context) ([]models.TagEvent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag_id, shark_id, prediction_id, shark_species, shark_size_m,
		latitude, longitude, timestamp, feeding_intensity, stomach_ph, bite_force_newtons, swimming_speed_ms,
		water_temperature, actual_prey_type, predicted_prey_type, prediction_accuracy, tag_confidence,
		satellite_confidence, battery_level_percent, signal_strength_dbm
		FROM tag_telemetry ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query telemetry: %w", err)
	}
	defer rows.Close()

	var events []models.TagEvent
	for rows.Next() {
		var (
			e                           models.TagEvent
			ts, actual, predicted, accy string
		)
		err := rows.Scan(&e.TagID, &e.Shark.ID, &e.PredictionID, &e.Shark.Species.Name, &e.Shark.SizeM,
			&e.Latitude, &e.Longitude, &ts, &e.FeedingIntensity, &e.StomachPH, &e.BiteForce, &e.SwimmingSpeed,
			&e.WaterTemperature, &actual, &predicted, &accy, &e.TagConfidence, &e.SatelliteConfidence,
			&e.BatteryLevel, &e.SignalStrength)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag event: %w", err)
		}
		if e.Timestamp, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, fmt.Errorf("tag event %s: %w", e.TagID, err)
		}
		e.ActualPrey = models.PreyType(actual)
		e.PredictedPrey = models.PreyType(predicted)
		e.Accuracy = models.AccuracyLabel(accy)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *SQLiteRepository) loadCombined(ctx context.Context) ([]models.CombinedRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT event_id, latitude, longitude, display_confidence, timestamp,
		prey_type, marker_type, popup_info, data_source, habitat_quality, location_name, shark_species, shark_size_m
		FROM combined_display ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query combined rows: %w", err)
	}
	defer rows.Close()

	var records []models.CombinedRecord
	for rows.Next() {
		var (
			c                models.CombinedRecord
			ts, prey, marker string
		)
		err := rows.Scan(&c.EventID, &c.Latitude, &c.Longitude, &c.DisplayConfidence, &ts, &prey, &marker,
			&c.PopupInfo, &c.DataSource, &c.HabitatQuality, &c.LocationName, &c.SharkSpecies, &c.SharkSizeM)
		if err != nil {
			return nil, fmt.Errorf("failed to scan combined row: %w", err)
		}
		if c.Timestamp, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, fmt.Errorf("combined row %s: %w", c.EventID, err)
		}
		c.PreyType = models.PreyType(prey)
		c.MarkerType = models.MarkerType(marker)
		records = append(records, c)
	}
	return records, rows.Err()
}
