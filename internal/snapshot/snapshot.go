// Package snapshot holds the immutable result of one generation run.
package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/jengzang/sharktrack-backend-go/internal/dataset"
	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/telemetry"
)

// Snapshot is the complete output of a run. It is never mutated after it is built.
type Snapshot struct {
	RunID        string                    `json:"run_id"`
	Seed         uint64                    `json:"seed"`
	GeneratedAt  time.Time                 `json:"generated_at"`
	Tables       dataset.Tables            `json:"-"`
	Metrics      models.PerformanceMetrics `json:"metrics"`
	Stats        models.SystemStats        `json:"stats"`
	ProductCount int                       `json:"product_count"`
	EventCount   int                       `json:"event_count"`
	FeedDegraded bool                      `json:"feed_degraded"`
	Simulation   telemetry.SimulationStats `json:"simulation"`
}

// Store publishes the current snapshot to concurrent readers
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Load returns the current snapshot, or nil before the first Swap
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Swap publishes snap and returns the previous snapshot
func (s *Store) Swap(snap *Snapshot) *Snapshot {
	return s.current.Swap(snap)
}
