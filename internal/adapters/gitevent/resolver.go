// Package gitevent resolves trigger events from the enclosing git repository.
package gitevent

import (
	"errors"

	"github.com/go-git/go-git/v5"
	"go.trai.ch/gate/internal/core/domain"
	"go.trai.ch/gate/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EventResolver = (*Resolver)(nil)

// Resolver implements ports.EventResolver using go-git.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the event for the repository enclosing root. The event
// type defaults to push; callers override it from flags. Branch and revision
// come from HEAD. A detached HEAD yields an empty branch.
func (r *Resolver) Resolve(root string) (domain.Event, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return domain.Event{}, zerr.With(domain.ErrNoRepository, "root", root)
		}
		return domain.Event{}, zerr.Wrap(err, "failed to open repository")
	}

	head, err := repo.Head()
	if err != nil {
		// An empty repository has no HEAD yet; report the event without a
		// branch or revision rather than failing the run.
		return domain.Event{Type: domain.EventPush}, nil
	}

	ev := domain.Event{
		Type:     domain.EventPush,
		Revision: head.Hash().String(),
	}
	if head.Name().IsBranch() {
		ev.Branch = head.Name().Short()
	}
	return ev, nil
}
