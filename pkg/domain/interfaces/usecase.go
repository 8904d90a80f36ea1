package interfaces

import (
	"context"

	"github.com/ome/status-dashboard/pkg/domain/model"
)

// Aggregator enriches a single package descriptor in place
type Aggregator interface {
	Process(ctx context.Context, pkg *model.Package) error
}

// SnapshotWriter persists a completed snapshot
type SnapshotWriter interface {
	Write(ctx context.Context, snapshot *model.Snapshot) error
}

// FetchRecorder observes the outcome of every metadata fetch
type FetchRecorder interface {
	RecordFetch(fact model.Fact, outcome model.Outcome)
	RecordRepository()
}
