// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/buildviz/internal/adapters/config"
	_ "go.trai.ch/buildviz/internal/adapters/dot"
	_ "go.trai.ch/buildviz/internal/adapters/eventstream"
	_ "go.trai.ch/buildviz/internal/adapters/extract"
	_ "go.trai.ch/buildviz/internal/adapters/logger"
	_ "go.trai.ch/buildviz/internal/adapters/snapshot"
	_ "go.trai.ch/buildviz/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/buildviz/internal/app"
)
