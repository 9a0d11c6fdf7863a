package stencil

import (
	"github.com/Gouterman/stencil/cache"
	"github.com/Gouterman/stencil/data"
	"github.com/Gouterman/stencil/log"
	"github.com/Gouterman/stencil/sys"
)

type CompilerOptions struct {
	Plugins       []*data.Plugin
	OutputTargets []data.OutputTarget
	RootDir       string

	System sys.CompilerSystem
	Cache  cache.Cache

	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	Logger        *log.Logger

	// Logging stays silent until a log option is given
	logging bool
}

type CompilerOption func(*CompilerOptions) error

func newDefaultCompilerOptions() *CompilerOptions {
	return &CompilerOptions{
		RootDir:  "/",
		LogLevel: log.Info,
	}
}

// WithPlugins appends plugins in the order their hooks should run.
func WithPlugins(plugins ...*data.Plugin) CompilerOption {
	return func(opts *CompilerOptions) error {
		opts.Plugins = append(opts.Plugins, plugins...)
		return nil
	}
}

func WithOutputTargets(targets ...data.OutputTarget) CompilerOption {
	return func(opts *CompilerOptions) error {
		opts.OutputTargets = append(opts.OutputTargets, targets...)
		return nil
	}
}

func WithRootDir(rootDir string) CompilerOption {
	return func(opts *CompilerOptions) error {
		opts.RootDir = sys.Normalize(rootDir)
		return nil
	}
}

// WithSystem replaces the default in-memory system.
func WithSystem(s sys.CompilerSystem) CompilerOption {
	return func(opts *CompilerOptions) error {
		if s == nil {
			return data.ErrInvalid
		}
		opts.System = s
		return nil
	}
}

// WithCache replaces the default in-memory cache.
func WithCache(c cache.Cache) CompilerOption {
	return func(opts *CompilerOptions) error {
		if c == nil {
			return data.ErrInvalid
		}
		opts.Cache = c
		return nil
	}
}

func WithLogLevel(logLevel log.LogLevel) CompilerOption {
	return func(opts *CompilerOptions) error {
		opts.LogLevel = logLevel
		opts.logging = true
		return nil
	}
}

func WithLogFile(logFile string) CompilerOption {
	return func(opts *CompilerOptions) error {
		opts.LogFile = logFile
		opts.logging = true
		return nil
	}
}

func WithoutTerminalLog() CompilerOption {
	return func(opts *CompilerOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

// WithLogger uses logger as is, ignoring every other log option.
func WithLogger(logger *log.Logger) CompilerOption {
	return func(opts *CompilerOptions) error {
		opts.Logger = logger
		opts.logging = true
		return nil
	}
}

// WithEnv applies the options found in the environment and the given .env files.
func WithEnv(files ...string) CompilerOption {
	return func(opts *CompilerOptions) error {
		envOpts, err := LoadEnv(files...)
		if err != nil {
			return err
		}

		for _, opt := range envOpts {
			if err := opt(opts); err != nil {
				return err
			}
		}
		return nil
	}
}
