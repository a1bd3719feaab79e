package eventstream

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildviz/internal/adapters/logger"
	"go.trai.ch/buildviz/internal/core/ports"
)

// NodeID is the unique identifier for the event stream reader Graft node.
const NodeID graft.ID = "adapter.event_stream"

func init() {
	graft.Register(graft.Node[*Reader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Reader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewReader(log), nil
		},
	})
}
