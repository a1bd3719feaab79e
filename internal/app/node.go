package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildviz/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/buildviz/internal/adapters/dot"         //nolint:depguard // Wired in app layer
	"go.trai.ch/buildviz/internal/adapters/eventstream" //nolint:depguard // Wired in app layer
	"go.trai.ch/buildviz/internal/adapters/extract"     //nolint:depguard // Wired in app layer
	"go.trai.ch/buildviz/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/buildviz/internal/adapters/snapshot"    //nolint:depguard // Wired in app layer
	"go.trai.ch/buildviz/internal/adapters/watcher"     //nolint:depguard // Wired in app layer
	"go.trai.ch/buildviz/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			snapshot.NodeID,
			dot.NodeID,
			extract.NodeID,
			eventstream.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.SnapshotStore](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.GraphRenderer](ctx)
	if err != nil {
		return nil, err
	}

	extractor, err := graft.Dep[ports.PropertyExtractor](ctx)
	if err != nil {
		return nil, err
	}

	events, err := graft.Dep[*eventstream.Reader](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, store, renderer, extractor, events, w, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{App: a, Logger: log}, nil
}
