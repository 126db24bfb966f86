package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gate/internal/adapters/depcache" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gate/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gate/internal/adapters/shell"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gate/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			depcache.NodeID,
			fs.HasherNodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.DependencyCache](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(executor, cache, hasher), nil
		},
	})
}
