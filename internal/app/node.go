package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gate/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/gate/internal/adapters/depcache" //nolint:depguard // Wired in app layer
	"go.trai.ch/gate/internal/adapters/gitevent" //nolint:depguard // Wired in app layer
	"go.trai.ch/gate/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/gate/internal/adapters/runstore" //nolint:depguard // Wired in app layer
	wadapter "go.trai.ch/gate/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/gate/internal/core/ports"
	"go.trai.ch/gate/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the application with the adapters main needs directly.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			gitevent.NodeID,
			scheduler.NodeID,
			runstore.NodeID,
			depcache.NodeID,
			wadapter.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.EventResolver](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.RunStore](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.DependencyCache](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, resolver, sched, store, cache, w, log), nil
}
