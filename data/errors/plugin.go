package errors

import "fmt"

// PluginHookError is a resolveId, load or transform hook that failed.
type PluginHookError struct {
	Plugin string
	Hook   string
	Err    error
}

func (e *PluginHookError) Error() string {
	return newError(e.Err, "plugin '%s' failed in hook '%s'", e.Plugin, e.Hook)
}

func (e *PluginHookError) Unwrap() []error {
	return []error{ErrPluginHook, e.Err}
}

func PluginHook(err error, plugin, hook string) error {
	return &PluginHookError{
		Plugin: plugin,
		Hook:   hook,
		Err:    err,
	}
}

func PluginPanic(recovered any, plugin, hook string) error {
	return PluginHook(fmt.Errorf("%w: %v", ErrPluginPanic, recovered), plugin, hook)
}
