package plugin

import (
	"github.com/Gouterman/stencil/cache"
	"github.com/Gouterman/stencil/data"
	"github.com/Gouterman/stencil/log"
	"github.com/Gouterman/stencil/sys"
	"github.com/google/uuid"
)

// NewContext composes the context handed to every hook of one pipeline run,
// starting with an empty diagnostics list.
func NewContext(cfg *data.Config, s sys.CompilerSystem, c cache.Cache, logger *log.Logger) *data.PluginContext {
	if logger == nil {
		logger = log.Discard()
	}

	return &data.PluginContext{
		BuildID:     uuid.NewString(),
		Config:      cfg,
		Sys:         s,
		Cache:       c,
		Diagnostics: &data.Diagnostics{},
		Logger:      logger,
	}
}

func plugins(pctx *data.PluginContext) []*data.Plugin {
	if pctx == nil || pctx.Config == nil {
		return nil
	}
	return pctx.Config.Plugins
}
