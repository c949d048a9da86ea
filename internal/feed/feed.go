// Package feed fetches the external environmental event and ocean-colour product feeds.
// Fetches never fail the caller: any failure degrades to an empty result with a reason.
package feed

import (
	"context"
	"time"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/spatial"
)

// Default feed endpoints and query parameters
const (
	DefaultEventsURL     = "https://eonet.gsfc.nasa.gov/api/v3/events"
	DefaultProductsURL   = "https://oceandata.sci.gsfc.nasa.gov/api/file_search"
	DefaultEventDays     = 60
	DefaultTimeout       = 10 * time.Second
	DefaultCacheTTL      = 15 * time.Minute
	DefaultSensor        = "MODISA"
	DefaultDataType      = "L3b"
	DefaultProduct       = "CHL"
	DefaultProductWindow = 30 * 24 * time.Hour
)

// EventResult is the outcome of an event fetch. OK is false when the feed was unreachable
// or unusable, in which case Events is empty and Reason says why.
type EventResult struct {
	Events []models.EnvironmentalEvent
	// Malformed counts entries that could not be decoded and were dropped
	Malformed int
	OK        bool
	Reason    string
	Cached    bool
}

// ProductResult is the outcome of a product-count fetch
type ProductResult struct {
	Count  int
	OK     bool
	Reason string
	Cached bool
}

// Source provides the external inputs of a run
type Source interface {
	FetchEvents(ctx context.Context, region spatial.Region) EventResult
	CountProducts(ctx context.Context, now time.Time) ProductResult
}

// Static is a Source that returns fixed data without touching the network
type Static struct {
	Events   []models.EnvironmentalEvent
	Products int
}

// FetchEvents returns the configured events
func (s Static) FetchEvents(context.Context, spatial.Region) EventResult {
	return EventResult{Events: s.Events, OK: true}
}

// CountProducts returns the configured product count
func (s Static) CountProducts(context.Context, time.Time) ProductResult {
	return ProductResult{Count: s.Products, OK: true}
}
