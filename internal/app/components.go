package app

import "go.trai.ch/buildviz/internal/core/ports"

// Components bundles what the command line needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}
