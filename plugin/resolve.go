package plugin

import (
	"context"

	"github.com/Gouterman/stencil/data"
)

// RunResolveID asks every plugin with a resolveId hook, in order, to resolve
// importee. The first non-empty id wins and later plugins are not called.
// Without any such id, importee itself is returned.
//
// Iteration stops early once ctx is done; callers check ctx.Err().
func RunResolveID(ctx context.Context, pctx *data.PluginContext, importee, importer string) Result[string] {
	logger := pctx.Logger.Named("plugin")
	result := Result[string]{Value: importee}

	for _, p := range plugins(pctx) {
		if p == nil || p.ResolveID == nil {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		id, err := invoke(p, hookResolveID, func() (string, error) {
			return p.ResolveID(ctx, importee, importer, pctx)
		})
		if err != nil {
			logger.Warn("%v", err)
			result.catch(err)
			continue
		}

		if id != "" {
			logger.Debug("Plugin '%s' resolved '%s' to '%s'", p.Name, importee, id)
			result.Value = id
			break
		}
	}

	return result
}
