package browser

import (
	"github.com/dop251/goja"

	"github.com/grafana/xk6-abtest/common"
)

// StateGlobal is the name of the host-visible state object.
const StateGlobal = "testeab"

const (
	stateSections      = "sections"
	stateVariantID     = "variantId"
	stateIsInitialized = "isInitialized"
)

var stateKeys = []string{stateSections, stateVariantID, stateIsInitialized} //nolint:gochecknoglobals

// stateObject is a read-only goja.DynamicObject reading the live SDK
// state on every access.
type stateObject struct {
	rt    *goja.Runtime
	state *common.State
}

var _ goja.DynamicObject = &stateObject{}

// MapState returns the JS view of st: {sections, variantId,
// isInitialized}. Values are read when accessed, so the object reflects
// an assignment that resolves later. Writes are rejected.
func MapState(rt *goja.Runtime, st *common.State) *goja.Object {
	return rt.NewDynamicObject(&stateObject{rt: rt, state: st})
}

// Install sets the state object as the global testeab of rt.
func Install(rt *goja.Runtime, st *common.State) error {
	return rt.Set(StateGlobal, MapState(rt, st)) //nolint:wrapcheck
}

func (s *stateObject) Get(key string) goja.Value {
	snap := s.state.Snapshot()

	switch key {
	case stateSections:
		sections := make([]any, 0, len(snap.Sections))
		for _, sec := range snap.Sections {
			sections = append(sections, map[string]any(sec))
		}
		return s.rt.NewArray(sections...)
	case stateVariantID:
		if !snap.VariantID.Valid {
			return goja.Null()
		}
		return s.rt.ToValue(snap.VariantID.String)
	case stateIsInitialized:
		return s.rt.ToValue(snap.IsInitialized)
	}

	return goja.Undefined()
}

func (s *stateObject) Set(string, goja.Value) bool { return false }

func (s *stateObject) Has(key string) bool {
	for _, k := range stateKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (s *stateObject) Delete(string) bool { return false }

func (s *stateObject) Keys() []string {
	return append([]string{}, stateKeys...)
}
