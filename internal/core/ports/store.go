package ports

import "go.trai.ch/buildviz/internal/core/domain"

// SnapshotStore persists a Build aggregate, preserving shared task and target identity.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SnapshotStore interface {
	// Save replaces whatever is stored at path with the given build.
	Save(path string, build *domain.Build) error

	// Load reads the build stored at path.
	// Every failure matches domain.ErrInvalidSnapshot.
	Load(path string) (*domain.Build, error)
}
