package extract

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildviz/internal/core/ports"
)

// NodeID is the unique identifier for the property extractor Graft node.
const NodeID graft.ID = "adapter.extractor"

func init() {
	graft.Register(graft.Node[ports.PropertyExtractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PropertyExtractor, error) {
			return New(), nil
		},
	})
}
