package gitevent

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gate/internal/core/ports"
)

const NodeID graft.ID = "adapter.event_resolver"

func init() {
	graft.Register(graft.Node[ports.EventResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EventResolver, error) {
			return NewResolver(), nil
		},
	})
}
