package ports

import (
	"context"
	"iter"
)

// Watcher reports changes to a single file.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching path. Events stop when ctx is cancelled.
	Start(ctx context.Context, path string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Changes yields once per debounced batch of changes to the watched file.
	Changes() iter.Seq[struct{}]
}
