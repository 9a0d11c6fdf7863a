package plugin

import (
	"context"

	"github.com/Gouterman/stencil/data"
)

// RunLoad asks every plugin with a load hook, in order, for the source text
// of id. The first non-empty text wins. Without any, id is read from the
// compiler system, a missing file loads as empty text.
//
// Iteration stops early once ctx is done; callers check ctx.Err().
func RunLoad(ctx context.Context, pctx *data.PluginContext, id string) Result[string] {
	logger := pctx.Logger.Named("plugin")
	result := Result[string]{}

	for _, p := range plugins(pctx) {
		if p == nil || p.Load == nil {
			continue
		}
		if ctx.Err() != nil {
			return result
		}

		code, err := invoke(p, hookLoad, func() (string, error) {
			return p.Load(ctx, id, pctx)
		})
		if err != nil {
			logger.Warn("%v", err)
			result.catch(err)
			continue
		}

		if code != "" {
			logger.Debug("Plugin '%s' loaded '%s'", p.Name, id)
			result.Value = code
			return result
		}
	}

	if pctx.Sys != nil && ctx.Err() == nil {
		result.Value, _ = pctx.Sys.ReadFile(ctx, id)
	}

	return result
}
