package dot

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildviz/internal/core/ports"
)

// NodeID is the unique identifier for the graph renderer Graft node.
const NodeID graft.ID = "adapter.dot_renderer"

func init() {
	graft.Register(graft.Node[ports.GraphRenderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GraphRenderer, error) {
			return NewRenderer(), nil
		},
	})
}
