package application

import (
	"context"
	"fmt"

	"github.com/devbush/social2csv/internal/domain"
)

// Runner runs one import batch.
type Runner interface {
	Run(ctx context.Context) (RunSummary, error)
}

// Registry maps platform tags to their importer implementation. The entry
// point selects an importer explicitly instead of branching on an
// environment value.
type Registry struct {
	runners map[domain.Platform]Runner
}

// NewRegistry creates an empty importer registry.
func NewRegistry() *Registry {
	return &Registry{runners: make(map[domain.Platform]Runner)}
}

// Register binds a platform to its importer, replacing any previous one.
func (r *Registry) Register(platform domain.Platform, runner Runner) {
	r.runners[platform] = runner
}

// Lookup returns the importer for a platform, or domain.ErrNoImporter.
func (r *Registry) Lookup(platform domain.Platform) (Runner, error) {
	runner, ok := r.runners[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoImporter, platform)
	}
	return runner, nil
}
