package console

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the console Graft node.
const NodeID graft.ID = "adapter.console"

func init() {
	graft.Register(graft.Node[*Console]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (*Console, error) {
			return New(nil), nil
		},
	})
}
