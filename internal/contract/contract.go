// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/scholarlens/schema"
)

// RecordSource loads project records from a backing store.
// This allows the orchestration layer to be tested without real files or databases.
type RecordSource interface {
	// Load returns all records in a deterministic order.
	Load(ctx context.Context) ([]schema.ProjectRecord, error)
}

// HistoryManager defines the interface for managing the history store.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for recording produced snapshots.
type HistoryStore interface {
	// RecordSnapshot stores a snapshot with its run metadata and returns the run ID
	RecordSnapshot(meta schema.RunMetadata, snap schema.AnalyticsSnapshot) (int64, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every recorded run ordered by ID
	GetAllRuns() ([]schema.SnapshotRunRecord, error)

	// GetAllTrendPoints retrieves every recorded trend point ordered by run and position
	GetAllTrendPoints() ([]schema.TrendPointRecord, error)

	// Close closes the underlying connection
	Close() error
}
