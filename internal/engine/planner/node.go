package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lathe/internal/adapters/fs"
	"go.trai.ch/lathe/internal/core/ports"
)

// NodeID is the unique identifier for the planner node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.DiscovererNodeID},
		Run: func(ctx context.Context) (*Planner, error) {
			discoverer, err := graft.Dep[ports.SourceDiscoverer](ctx)
			if err != nil {
				return nil, err
			}
			return New(discoverer), nil
		},
	})
}
