package runstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gate/internal/core/ports"
)

const NodeID graft.ID = "adapter.run_store"

func init() {
	graft.Register(graft.Node[ports.RunStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RunStore, error) {
			return NewStore(), nil
		},
	})
}
