package pkgconfig

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lathe/internal/core/ports"
)

// NodeID is the unique identifier for the package flag cache node.
const NodeID graft.ID = "adapter.pkgconfig"

func init() {
	graft.Register(graft.Node[ports.PackageFlagResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageFlagResolver, error) {
			return NewDefault(), nil
		},
	})
}
