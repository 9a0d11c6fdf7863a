package stencil

import (
	"context"
	"sync"

	"github.com/Gouterman/stencil/cache"
	cachememory "github.com/Gouterman/stencil/cache/memory"
	"github.com/Gouterman/stencil/data"
	"github.com/Gouterman/stencil/log"
	"github.com/Gouterman/stencil/plugin"
	"github.com/Gouterman/stencil/sys"
	"github.com/Gouterman/stencil/sys/memory"
)

// Compiler runs modules through the plugin pipeline on top of a compiler
// system and a shared cache.
type Compiler struct {
	mu     sync.RWMutex
	closed bool

	log    *log.Logger
	config *data.Config
	sys    sys.CompilerSystem
	cache  cache.Cache
}

func New(ctx context.Context, opts ...CompilerOption) (*Compiler, error) {
	options := newDefaultCompilerOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	logger := options.Logger
	if logger == nil {
		logger = log.Discard()
		if options.logging {
			logger = log.NewLogger("stencil", options.LogLevel, options.LogFile, options.NoTerminalLog)
		}
	}

	system := options.System
	if system == nil {
		system = memory.New()
	}

	c := options.Cache
	if c == nil {
		var err error
		if c, err = cachememory.New(cachememory.DefaultSize); err != nil {
			return nil, err
		}
	}

	if err := c.Open(ctx); err != nil {
		return nil, err
	}

	logger.Debug("Using system '%s' and cache '%s'", system.Name(), c.Name())

	return &Compiler{
		log: logger,
		config: &data.Config{
			RootDir:       options.RootDir,
			Plugins:       options.Plugins,
			OutputTargets: options.OutputTargets,
		},
		sys:   system,
		cache: c,
	}, nil
}

func (c *Compiler) Config() *data.Config {
	return c.config
}

func (c *Compiler) System() sys.CompilerSystem {
	return c.sys
}

func (c *Compiler) Cache() cache.Cache {
	return c.cache
}

// TransformModule resolves, loads and transforms a single module. moduleFile
// is optional and only decides whether style docs are collected.
func (c *Compiler) TransformModule(ctx context.Context, id string, moduleFile *data.ModuleFile) *plugin.TransformResults {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return &plugin.TransformResults{
			ID:          id,
			Diagnostics: []*data.Diagnostic{data.CatchError(nil, data.ErrClosed)},
		}
	}

	return plugin.RunTransforms(ctx, &data.PluginContext{
		Config: c.config,
		Sys:    c.sys,
		Cache:  c.cache,
		Logger: c.log,
	}, id, moduleFile)
}

// Close releases the cache and, when it supports it, the system.
func (c *Compiler) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return data.ErrClosed
	}
	c.closed = true

	errs := data.Errors{}
	errs.Add(c.cache.Close(ctx))
	if closer, ok := c.sys.(interface{ Close(context.Context) error }); ok {
		errs.Add(closer.Close(ctx))
	}

	return errs.Errors()
}
