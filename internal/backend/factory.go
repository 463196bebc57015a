package backend

import (
	"context"
	"fmt"

	"familyfinance/internal/log"
	"familyfinance/internal/source/memory"
	"familyfinance/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", log.FieldPath, config.SQLiteDBPath)

	return &BackendResult{
		Reader:  repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = defaultDataDirectory
	}

	store, err := memory.NewFromFiles(dataDir, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load memory backend: %w", err)
	}

	f.logger.Info("Initialized memory backend", log.FieldPath, dataDir)

	return &BackendResult{Reader: store}, nil
}
