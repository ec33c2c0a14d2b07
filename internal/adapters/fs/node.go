package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sob/internal/core/ports"
)

// NodeID is the unique identifier for the directory maker Graft node.
const NodeID graft.ID = "adapter.fs"

func init() {
	graft.Register(graft.Node[ports.DirMaker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.DirMaker, error) {
			return NewDirMaker(), nil
		},
	})
}
