package ports

import "go.trai.ch/sob/internal/core/domain"

// BuildRecordStore defines the interface for storing and retrieving build records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildRecordStore interface {
	// Get retrieves the last build record for a given target.
	// Returns nil, nil if not found.
	Get(root, target string) (*domain.BuildRecord, error)

	// Put stores the build record, replacing any previous one for the same target.
	Put(root string, record domain.BuildRecord) error

	// Clear removes every stored record.
	Clear(root string) error
}
