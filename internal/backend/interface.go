package backend

import (
	"context"

	"familyfinance/internal/source"
)

// CleanupFunc releases resources held by a backend
type CleanupFunc func() error

// BackendResult contains the snapshot reader and optional cleanup function
type BackendResult struct {
	Reader  source.SnapshotReader
	Cleanup CleanupFunc
}

// Close runs the cleanup function if there is one
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates snapshot readers based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Memory backend specific
	DataDirectory string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
