package plugin

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gouterman/stencil/data"
	"github.com/Gouterman/stencil/style"
)

// RunTransforms runs the full pipeline for the module id: resolve, load,
// css import inlining and every transform hook. Inlining runs before the
// transform hooks for raw .css modules and after them for everything else.
//
// The run composes its own context from base, so its diagnostics always
// start empty. moduleFile is optional; its component collects style docs
// when an output target documents styles. A nil base runs without plugins
// or a compiler system.
func RunTransforms(ctx context.Context, base *data.PluginContext, id string, moduleFile *data.ModuleFile) *TransformResults {
	if base == nil {
		base = &data.PluginContext{}
	}

	pctx := NewContext(base.Config, base.Sys, base.Cache, base.Logger)
	r := &run{
		pctx:       pctx,
		moduleFile: moduleFile,
		results: &TransformResults{
			ID: id,
		},
	}

	r.execute(ctx, id)

	r.results.Diagnostics = pctx.Diagnostics.List()
	return r.results
}

type run struct {
	pctx       *data.PluginContext
	moduleFile *data.ModuleFile
	results    *TransformResults
}

func (r *run) execute(ctx context.Context, id string) {
	logger := r.pctx.Logger.Named("plugin")
	logger.Debug("Running pipeline %s for '%s'", r.pctx.BuildID, id)

	resolved := RunResolveID(ctx, r.pctx, id, "")
	r.pctx.Diagnostics.Add(resolved.Diagnostics...)
	if r.stopped(ctx, id) {
		return
	}

	loaded := RunLoad(ctx, r.pctx, resolved.Value)
	r.pctx.Diagnostics.Add(loaded.Diagnostics...)
	r.results.Code = loaded.Value
	if r.stopped(ctx, id) {
		return
	}

	isRawCSS := strings.HasSuffix(strings.ToLower(id), ".css")
	if isRawCSS {
		// Raw stylesheet imports are expanded before any plugin sees the text
		r.results.Code = r.inline(ctx, id, id, r.results.Code)
		if r.stopped(ctx, id) {
			return
		}
	}

	r.transform(ctx)
	if r.stopped(ctx, id) {
		return
	}

	if !isRawCSS {
		// Preprocessors rewrite @import "x.css" into @import url("x.css") without concatenating it
		r.results.Code = r.inline(ctx, id, r.results.ID, r.results.Code)
		r.stopped(ctx, id)
	}
}

func (r *run) transform(ctx context.Context) {
	logger := r.pctx.Logger.Named("plugin")

	for _, p := range plugins(r.pctx) {
		if p == nil || p.Transform == nil {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		logger.Debug("Plugin '%s' transforming '%s'", p.Name, r.results.ID)
		result, err := invoke(p, hookTransform, func() (*data.TransformResult, error) {
			return p.Transform(ctx, r.results.Code, r.results.ID, r.pctx)
		})
		if err != nil {
			logger.Warn("%v", err)
			data.CatchError(r.pctx.Diagnostics, err)
			continue
		}

		if result == nil {
			continue
		}
		if result.Code != nil {
			r.results.Code = *result.Code
		}
		if result.ID != nil {
			r.results.ID = *result.ID
		}
	}
}

func (r *run) inline(ctx context.Context, requestID, currentID, code string) string {
	in := style.Inline{
		RequestID:   requestID,
		CurrentID:   currentID,
		Code:        code,
		Load:        r.load,
		Diagnostics: r.pctx.Diagnostics,
		Logger:      r.pctx.Logger,
	}

	if cfg := r.pctx.Config; cfg != nil {
		in.RootDir = cfg.RootDir
	}
	if r.moduleFile != nil && r.moduleFile.Cmp != nil && r.pctx.Config.ShouldParseStyleDocs() {
		in.StyleDocs = &r.moduleFile.Cmp.StyleDocs
	}

	return style.InlineImports(ctx, in)
}

// load runs a css import through the same resolve and load phases as the module itself.
func (r *run) load(ctx context.Context, importPath, importer string) (string, string, bool) {
	resolved := RunResolveID(ctx, r.pctx, importPath, importer)
	r.pctx.Diagnostics.Add(resolved.Diagnostics...)

	loaded := RunLoad(ctx, r.pctx, resolved.Value)
	r.pctx.Diagnostics.Add(loaded.Diagnostics...)

	if loaded.Value != "" {
		return resolved.Value, loaded.Value, true
	}

	// An existing but empty stylesheet still counts as found
	if r.pctx.Sys != nil {
		if stats := r.pctx.Sys.Stat(ctx, resolved.Value); stats != nil && stats.IsFile {
			return resolved.Value, "", true
		}
	}

	return resolved.Value, "", false
}

// stopped records a single diagnostic once ctx is done.
func (r *run) stopped(ctx context.Context, id string) bool {
	err := ctx.Err()
	if err == nil {
		return false
	}

	data.CatchError(r.pctx.Diagnostics, fmt.Errorf("stencil: pipeline for '%s' stopped: %w", id, context.Cause(ctx)))
	return true
}
