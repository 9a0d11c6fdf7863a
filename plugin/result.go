package plugin

import "github.com/Gouterman/stencil/data"

// Result is the outcome of one pipeline phase. Hook failures never abort a
// phase, they end up in Diagnostics.
type Result[T any] struct {
	Value       T
	Diagnostics []*data.Diagnostic
}

func (r *Result[T]) catch(err error) {
	if diagnostic := data.CatchError(nil, err); diagnostic != nil {
		r.Diagnostics = append(r.Diagnostics, diagnostic)
	}
}

// TransformResults is the final state of one module after the pipeline ran.
type TransformResults struct {
	// ID is the module id, possibly rewritten by a transform hook.
	ID          string
	Code        string
	Diagnostics []*data.Diagnostic
}

func (r *TransformResults) HasError() bool {
	return data.HasError(r.Diagnostics)
}
