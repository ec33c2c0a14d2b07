package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sob/internal/adapters/fs"
	"go.trai.ch/sob/internal/adapters/shell"
	"go.trai.ch/sob/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, fs.NodeID},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			dirs, err := graft.Dep[ports.DirMaker](ctx)
			if err != nil {
				return nil, err
			}
			return New(executor, dirs), nil
		},
	})
}
