package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/stats"
)

// Output file names
const (
	PredictionsFile = "satellite_predictions.csv"
	TelemetryFile   = "tag_telemetry.csv"
	CombinedFile    = "combined_display.csv"
)

// Column headers, in file order
var (
	PredictionColumns = []string{
		"id", "latitude", "longitude", "confidence", "timestamp",
		"water_temperature", "chlorophyll_a", "ssh_anomaly", "plankton_density",
		"predicted_prey_type", "habitat_quality", "location_name", "environmental_events_nearby",
	}
	TelemetryColumns = []string{
		"tag_id", "shark_species", "shark_size_m", "latitude", "longitude", "timestamp",
		"feeding_intensity", "stomach_ph", "bite_force_newtons", "swimming_speed_ms",
		"water_temperature", "actual_prey_type", "predicted_prey_type", "prediction_accuracy",
		"tag_confidence", "satellite_confidence", "battery_level_percent", "signal_strength_dbm",
	}
	CombinedColumns = []string{
		"event_id", "latitude", "longitude", "display_confidence", "timestamp", "prey_type",
		"marker_type", "popup_info", "data_source",
		"habitat_quality", "location_name", "shark_species", "shark_size_m",
	}
)

// Decimal places written per quantity
const (
	coordPlaces      = 6
	confidencePlaces = 4
	sstPlaces        = 2
	chlPlaces        = 4
	sshPlaces        = 3
	planktonPlaces   = 1
	tagConfPlaces    = 3
	phPlaces         = 2
	bitePlaces       = 1
	speedPlaces      = 2
	batteryPlaces    = 1
	sizePlaces       = 1
)

func formatFloat(v float64, places int) string {
	return strconv.FormatFloat(stats.Round(v, places), 'f', -1, 64)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func predictionRecord(p models.SatellitePrediction) []string {
	return []string{
		p.ID,
		formatFloat(p.Sample.Point.Latitude, coordPlaces),
		formatFloat(p.Sample.Point.Longitude, coordPlaces),
		formatFloat(p.Confidence(), confidencePlaces),
		formatTime(p.Timestamp),
		formatFloat(p.Sample.SeaSurfaceTemperature, sstPlaces),
		formatFloat(p.Sample.ChlorophyllA, chlPlaces),
		formatFloat(p.Sample.SSHAnomaly, sshPlaces),
		formatFloat(p.Sample.PlanktonDensity, planktonPlaces),
		string(p.PredictedPrey),
		string(p.Score.Quality),
		p.LocationName,
		strconv.Itoa(p.Sample.NearbyEventCount),
	}
}

func telemetryRecord(e models.TagEvent) []string {
	return []string{
		e.TagID,
		e.Shark.Species.Name,
		formatFloat(e.Shark.SizeM, sizePlaces),
		formatFloat(e.Latitude, coordPlaces),
		formatFloat(e.Longitude, coordPlaces),
		formatTime(e.Timestamp),
		formatFloat(e.FeedingIntensity, confidencePlaces),
		formatFloat(e.StomachPH, phPlaces),
		formatFloat(e.BiteForce, bitePlaces),
		formatFloat(e.SwimmingSpeed, speedPlaces),
		formatFloat(e.WaterTemperature, sstPlaces),
		string(e.ActualPrey),
		string(e.PredictedPrey),
		string(e.Accuracy),
		formatFloat(e.TagConfidence, tagConfPlaces),
		formatFloat(e.SatelliteConfidence, confidencePlaces),
		formatFloat(e.BatteryLevel, batteryPlaces),
		strconv.Itoa(e.SignalStrength),
	}
}

func combinedRecord(c models.CombinedRecord) []string {
	return []string{
		c.EventID,
		formatFloat(c.Latitude, coordPlaces),
		formatFloat(c.Longitude, coordPlaces),
		formatFloat(c.DisplayConfidence, confidencePlaces),
		formatTime(c.Timestamp),
		string(c.PreyType),
		string(c.MarkerType),
		c.PopupInfo,
		c.DataSource,
		c.HabitatQuality,
		c.LocationName,
		c.SharkSpecies,
		c.SharkSizeM,
	}
}

// row reads named fields of one CSV record, keeping the first parse error
type row struct {
	index  map[string]int
	record []string
	err    error
}

func newRow(index map[string]int, record []string) *row {
	return &row{index: index, record: record}
}

func (r *row) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		if r.err == nil {
			r.err = fmt.Errorf("missing column %q", col)
		}
		return ""
	}
	return r.record[i]
}

func (r *row) float(col string) float64 {
	s := r.str(col)
	if r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("column %q: %w", col, err)
	}
	return v
}

func (r *row) integer(col string) int {
	s := r.str(col)
	if r.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		r.err = fmt.Errorf("column %q: %w", col, err)
	}
	return v
}

func (r *row) timestamp(col string) time.Time {
	s := r.str(col)
	if r.err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		r.err = fmt.Errorf("column %q: %w", col, err)
	}
	return t
}

func headerIndex(header, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return index, nil
}

func parsePrediction(r *row) (models.SatellitePrediction, error) {
	p := models.SatellitePrediction{
		ID: r.str("id"),
		Sample: models.EnvironmentalSample{
			Point: models.GeographicPoint{
				Latitude:  r.float("latitude"),
				Longitude: r.float("longitude"),
			},
			LocationName:          r.str("location_name"),
			SeaSurfaceTemperature: r.float("water_temperature"),
			ChlorophyllA:          r.float("chlorophyll_a"),
			SSHAnomaly:            r.float("ssh_anomaly"),
			PlanktonDensity:       r.float("plankton_density"),
			NearbyEventCount:      r.integer("environmental_events_nearby"),
		},
		Score:         models.NewHabitatScore(r.float("confidence")),
		PredictedPrey: models.PreyType(r.str("predicted_prey_type")),
		Timestamp:     r.timestamp("timestamp"),
		LocationName:  r.str("location_name"),
	}
	return p, r.err
}

// SharkIDFromTagID recovers the shark id embedded in a tag id (TAG_<shark>_<nn>)
func SharkIDFromTagID(tagID string) string {
	s := strings.TrimPrefix(tagID, "TAG_")
	if i := strings.LastIndexByte(s, '_'); i > 0 {
		return s[:i]
	}
	return s
}

func parseTelemetry(r *row) (models.TagEvent, error) {
	tagID := r.str("tag_id")
	e := models.TagEvent{
		TagID: tagID,
		Shark: models.SharkTag{
			ID:      SharkIDFromTagID(tagID),
			Species: models.SpeciesProfile{Name: r.str("shark_species")},
			SizeM:   r.float("shark_size_m"),
		},
		Latitude:            r.float("latitude"),
		Longitude:           r.float("longitude"),
		Timestamp:           r.timestamp("timestamp"),
		FeedingIntensity:    r.float("feeding_intensity"),
		StomachPH:           r.float("stomach_ph"),
		BiteForce:           r.float("bite_force_newtons"),
		SwimmingSpeed:       r.float("swimming_speed_ms"),
		WaterTemperature:    r.float("water_temperature"),
		ActualPrey:          models.PreyType(r.str("actual_prey_type")),
		PredictedPrey:       models.PreyType(r.str("predicted_prey_type")),
		Accuracy:            models.AccuracyLabel(r.str("prediction_accuracy")),
		TagConfidence:       r.float("tag_confidence"),
		SatelliteConfidence: r.float("satellite_confidence"),
		BatteryLevel:        r.float("battery_level_percent"),
		SignalStrength:      r.integer("signal_strength_dbm"),
	}
	return e, r.err
}

func parseCombined(r *row) (models.CombinedRecord, error) {
	c := models.CombinedRecord{
		EventID:           r.str("event_id"),
		Latitude:          r.float("latitude"),
		Longitude:         r.float("longitude"),
		DisplayConfidence: r.float("display_confidence"),
		Timestamp:         r.timestamp("timestamp"),
		PreyType:          models.PreyType(r.str("prey_type")),
		MarkerType:        models.MarkerType(r.str("marker_type")),
		PopupInfo:         r.str("popup_info"),
		DataSource:        r.str("data_source"),
		HabitatQuality:    r.str("habitat_quality"),
		LocationName:      r.str("location_name"),
		SharkSpecies:      r.str("shark_species"),
		SharkSizeM:        r.str("shark_size_m"),
	}
	return c, r.err
}
