package data

import (
	"errors"
	"sync"
)

type DiagnosticLevel string

const (
	LevelError DiagnosticLevel = "error"
	LevelWarn  DiagnosticLevel = "warn"
	LevelInfo  DiagnosticLevel = "info"
)

// Diagnostic is an opaque record reported back to the caller of the pipeline.
type Diagnostic struct {
	Level    DiagnosticLevel `json:"level"`
	Type     string          `json:"type"`
	Header   string          `json:"header"`
	Message  string          `json:"message"`
	Location *SourceLocation `json:"location,omitempty"`
}

type SourceLocation struct {
	FilePath string `json:"file_path"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// Diagnostics is an ordered, append-only collection safe for concurrent use.
// The zero value is ready to use.
type Diagnostics struct {
	mu    sync.RWMutex
	items []*Diagnostic
}

func (d *Diagnostics) Add(diagnostics ...*Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, diagnostic := range diagnostics {
		if diagnostic != nil {
			d.items = append(d.items, diagnostic)
		}
	}
}

// List returns a copy of all collected diagnostics in insertion order.
func (d *Diagnostics) List() []*Diagnostic {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := make([]*Diagnostic, len(d.items))
	copy(list, d.items)

	return list
}

func (d *Diagnostics) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.items)
}

func (d *Diagnostics) HasError() bool {
	return HasError(d.List())
}

func HasError(diagnostics []*Diagnostic) bool {
	for _, diagnostic := range diagnostics {
		if diagnostic.Level == LevelError {
			return true
		}
	}
	return false
}

// CatchError converts err into an error diagnostic and adds it to diagnostics.
// Returns nil and adds nothing when err is nil.
func CatchError(diagnostics *Diagnostics, err error) *Diagnostic {
	if err == nil {
		return nil
	}

	diagnostic := &Diagnostic{
		Level:   LevelError,
		Type:    "build",
		Header:  "Build Error",
		Message: err.Error(),
	}

	var hookErr *PluginHookError
	var importErr *ImportError
	switch {
	case errors.As(err, &hookErr):
		diagnostic.Type = "plugin"
		diagnostic.Header = "Plugin Error: " + hookErr.Plugin
	case errors.As(err, &importErr):
		diagnostic.Type = "css"
		diagnostic.Header = "CSS Import Error"
		diagnostic.Location = &SourceLocation{
			FilePath: importErr.Importer,
		}
	}

	if diagnostics != nil {
		diagnostics.Add(diagnostic)
	}

	return diagnostic
}
