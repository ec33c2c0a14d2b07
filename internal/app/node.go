package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sob/internal/adapters/cas"
	"go.trai.ch/sob/internal/adapters/config"
	"go.trai.ch/sob/internal/adapters/console"
	"go.trai.ch/sob/internal/adapters/logger"
	"go.trai.ch/sob/internal/adapters/watcher"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/sob/internal/engine/orchestrator"
)

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			orchestrator.NodeID,
			cas.NodeID,
			logger.NodeID,
			console.NodeID,
			watcher.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.BuildRecordStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			sink, err := graft.Dep[*console.Console](ctx)
			if err != nil {
				return nil, err
			}
			watchers, err := graft.Dep[ports.WatcherFactory](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, orch, store, log, sink, watchers),
				Logger: log,
			}, nil
		},
	})
}
