package plugin

import (
	"github.com/Gouterman/stencil/data"
	stencilerrors "github.com/Gouterman/stencil/data/errors"
)

const (
	hookResolveID = "resolveId"
	hookLoad      = "load"
	hookTransform = "transform"
)

// invoke calls a single hook of p. Returned errors and panics are both
// converted into a *data.PluginHookError.
func invoke[T any](p *data.Plugin, hook string, fn func() (T, error)) (value T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			var zero T
			value, err = zero, stencilerrors.PluginPanic(recovered, p.Name, hook)
		}
	}()

	value, err = fn()
	if err != nil {
		return value, stencilerrors.PluginHook(err, p.Name, hook)
	}

	return value, nil
}
