package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lathe/internal/adapters/fs"
	"go.trai.ch/lathe/internal/adapters/logger"
	"go.trai.ch/lathe/internal/adapters/pkgconfig"
	"go.trai.ch/lathe/internal/core/ports"
)

// NodeID is the unique identifier for the executor node.
const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, pkgconfig.NodeID, fs.ResolverNodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			flags, err := graft.Dep[ports.PackageFlagResolver](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.GlobResolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log, flags, resolver), nil
		},
	})
}
