package browser

import (
	"github.com/dop251/goja"
)

// mapping is the JS-facing object of a Go value: method names to Go
// functions or values.
type mapping = map[string]any

// exportArg exports the value and returns it.
// It returns nil if the value is undefined or null.
func exportArg(gv goja.Value) any {
	if !gojaValueExists(gv) {
		return nil
	}
	return gv.Export()
}

// gojaValueExists returns true if a given value is not nil and exists
// (defined and not null) in the goja runtime.
func gojaValueExists(v goja.Value) bool {
	return v != nil && !goja.IsUndefined(v) && !goja.IsNull(v)
}
