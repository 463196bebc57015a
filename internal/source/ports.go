package source

import (
	"context"

	"familyfinance/internal/core"
)

// SnapshotReader loads every input of one aggregation pass. Implementations
// skip malformed records rather than failing the whole load.
type SnapshotReader interface {
	LoadSnapshot(ctx context.Context) (core.Snapshot, error)
}
