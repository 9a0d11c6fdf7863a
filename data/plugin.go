package data

import (
	"context"

	"github.com/Gouterman/stencil/cache"
	"github.com/Gouterman/stencil/log"
	"github.com/Gouterman/stencil/sys"
)

type (
	// ResolveIDHook maps importee to a concrete id. An empty id passes to the next plugin.
	ResolveIDHook func(ctx context.Context, importee, importer string, pctx *PluginContext) (string, error)

	// LoadHook returns the source text of id. Empty text passes to the next plugin.
	LoadHook func(ctx context.Context, id string, pctx *PluginContext) (string, error)

	// TransformHook rewrites code. A nil result leaves code and id unchanged.
	TransformHook func(ctx context.Context, code, id string, pctx *PluginContext) (*TransformResult, error)
)

// Plugin is a set of optional hooks. A nil hook is simply skipped.
type Plugin struct {
	Name      string
	ResolveID ResolveIDHook
	Load      LoadHook
	Transform TransformHook
}

// TransformResult carries the fields a transform hook wants to replace.
type TransformResult struct {
	Code *string
	ID   *string
}

func TransformCode(code string) *TransformResult {
	return &TransformResult{Code: &code}
}

func TransformCodeAndID(code, id string) *TransformResult {
	return &TransformResult{Code: &code, ID: &id}
}

// PluginContext is handed to every hook invocation of one pipeline run.
type PluginContext struct {
	// BuildID identifies the pipeline run this context belongs to.
	BuildID string

	Config      *Config
	Sys         sys.CompilerSystem
	Cache       cache.Cache
	Diagnostics *Diagnostics
	Logger      *log.Logger
}
