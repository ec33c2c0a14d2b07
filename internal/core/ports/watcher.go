package ports

import (
	"context"
	"iter"
)

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// String returns the string representation of the WatchOp.
func (op WatchOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	default:
		return "rename"
	}
}

// WatchEvent represents a file system event from the watcher.
type WatchEvent struct {
	// Path is the absolute path of the file or directory that changed.
	Path string
	// Operation is the type of change that occurred.
	Operation WatchOp
}

// Watcher reports settled batches of file system changes below a directory.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching root recursively. Paths for which ignore returns
	// true are neither watched nor reported. A nil ignore reports everything.
	Start(ctx context.Context, root string, ignore func(path string) bool) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Batches yields each settled batch of changes, one event per path,
	// until the watcher stops.
	Batches() iter.Seq[[]WatchEvent]
}

// WatcherFactory creates a fresh Watcher.
type WatcherFactory func() (Watcher, error)
