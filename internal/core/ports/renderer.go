package ports

import (
	"io"

	"go.trai.ch/buildviz/internal/core/domain"
)

// GraphRenderer writes a graph description of a recorded build.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type GraphRenderer interface {
	// Render writes the complete graph for build to w.
	Render(w io.Writer, build *domain.Build, settings domain.RenderSettings) error
}
