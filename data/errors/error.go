package errors

import (
	"errors"
	"fmt"
)

var (
	ErrPluginHook     = errors.New("stencil: plugin hook failed")
	ErrPluginPanic    = errors.New("stencil: plugin hook panicked")
	ErrImportNotFound = errors.New("stencil: css import not found")
	ErrImportCycle    = errors.New("stencil: css import cycle")
)

func newError(err error, format string, args ...any) string {
	text := fmt.Sprintf(format, args...)
	if err != nil {
		text = fmt.Sprintf("%s: %v", text, err)
	}

	return "stencil: " + text
}
