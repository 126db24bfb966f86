package depcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gate/internal/core/ports"
)

const NodeID graft.ID = "adapter.depcache"

func init() {
	graft.Register(graft.Node[ports.DependencyCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DependencyCache, error) {
			return NewCache(DefaultDir), nil
		},
	})
}
