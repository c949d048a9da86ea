package pipeline

import (
	"github.com/jengzang/sharktrack-backend-go/internal/dataset"
	"github.com/jengzang/sharktrack-backend-go/internal/performance"
	"github.com/jengzang/sharktrack-backend-go/internal/snapshot"
)

// Restore rebuilds a snapshot from previously saved tables. Metrics are recomputed;
// simulation counters are not recoverable and stay zero.
func Restore(tables dataset.Tables, info performance.RunInfo, seed uint64) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		RunID:        info.RunID,
		Seed:         seed,
		GeneratedAt:  info.GeneratedAt,
		Tables:       tables,
		Metrics:      performance.Analyze(tables),
		Stats:        performance.SystemStats(tables, info),
		ProductCount: info.ProductCount,
		EventCount:   info.EventCount,
	}
}
