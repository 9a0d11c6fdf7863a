package data

import (
	"errors"
	"sync"

	stencilerrors "github.com/Gouterman/stencil/data/errors"
)

// Standard errors returned by constructors and collaborators. Filesystem
// operations themselves never return errors.
var (
	ErrNotExist     = errors.New("stencil: file does not exist")
	ErrNotDirectory = errors.New("stencil: not a directory")
	ErrPermission   = errors.New("stencil: permission denied")
	ErrInvalid      = errors.New("stencil: invalid argument")
	ErrClosed       = errors.New("stencil: already closed")

	// Cache errors
	ErrCacheUnavailable = errors.New("stencil: cache backend unavailable")

	// Pipeline errors
	ErrPluginHook     = stencilerrors.ErrPluginHook
	ErrPluginPanic    = stencilerrors.ErrPluginPanic
	ErrImportNotFound = stencilerrors.ErrImportNotFound
	ErrImportCycle    = stencilerrors.ErrImportCycle
)

type (
	PluginHookError = stencilerrors.PluginHookError
	ImportError     = stencilerrors.ImportError
)

type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}
