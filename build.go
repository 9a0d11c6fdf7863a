package stencil

import (
	"context"
	"sync"

	"github.com/Gouterman/stencil/data"
	"github.com/Gouterman/stencil/plugin"
	"github.com/google/uuid"
)

// BuildContext collects the diagnostics of every module of one build.
type BuildContext struct {
	BuildID string

	diagnostics data.Diagnostics
}

func NewBuildContext() *BuildContext {
	return &BuildContext{
		BuildID: uuid.NewString(),
	}
}

func (b *BuildContext) Add(diagnostics ...*data.Diagnostic) {
	b.diagnostics.Add(diagnostics...)
}

func (b *BuildContext) Diagnostics() []*data.Diagnostic {
	return b.diagnostics.List()
}

func (b *BuildContext) HasError() bool {
	return b.diagnostics.HasError()
}

// Module is one entry of a build.
type Module struct {
	ID   string
	File *data.ModuleFile
}

type BuildResults struct {
	Context *BuildContext
	// Modules holds one result per requested module, in request order.
	Modules []*plugin.TransformResults
}

func (r *BuildResults) HasError() bool {
	return r.Context.HasError()
}

// Build transforms every id concurrently.
func (c *Compiler) Build(ctx context.Context, ids ...string) *BuildResults {
	modules := make([]Module, 0, len(ids))
	for _, id := range ids {
		modules = append(modules, Module{ID: id})
	}

	return c.BuildModules(ctx, modules...)
}

// BuildModules transforms every module concurrently. Diagnostics are merged
// into the build context in module order, not in completion order.
func (c *Compiler) BuildModules(ctx context.Context, modules ...Module) *BuildResults {
	results := &BuildResults{
		Context: NewBuildContext(),
		Modules: make([]*plugin.TransformResults, len(modules)),
	}

	c.log.Debug("Starting build %s with %d modules", results.Context.BuildID, len(modules))

	var wg sync.WaitGroup
	for i, module := range modules {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results.Modules[i] = c.TransformModule(ctx, module.ID, module.File)
		}()
	}
	wg.Wait()

	for _, module := range results.Modules {
		results.Context.Add(module.Diagnostics...)
	}

	return results
}
