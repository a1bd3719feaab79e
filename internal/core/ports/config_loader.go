package ports

import "go.trai.ch/buildviz/internal/core/domain"

// ConfigLoader defines the interface for loading the settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the settings file starting at cwd and walking up.
	// It returns the default settings when no file exists.
	Load(cwd string) (domain.Settings, error)

	// LoadFile reads the settings from an explicit path.
	LoadFile(path string) (domain.Settings, error)
}
