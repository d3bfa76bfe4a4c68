package browser

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafana/xk6-abtest/common"
)

func TestStateMapping(t *testing.T) {
	t.Parallel()

	rt := goja.New()
	st := common.NewState()
	require.NoError(t, Install(rt, st))

	v, err := rt.RunString(`[testeab.variantId, testeab.isInitialized, testeab.sections.length === 0]`)
	require.NoError(t, err)
	assert.Equal(t, []any{nil, false, true}, v.Export())

	v, err = rt.RunString(`Object.keys(testeab).join(",")`)
	require.NoError(t, err)
	assert.Equal(t, "sections,variantId,isInitialized", v.String())
}

func TestStateMappingReadOnly(t *testing.T) {
	t.Parallel()

	rt := goja.New()
	require.NoError(t, Install(rt, common.NewState()))

	_, err := rt.RunString(`"use strict"; testeab.variantId = "A";`)
	require.Error(t, err)

	v, err := rt.RunString(`testeab.variantId = "A"; delete testeab.isInitialized; [testeab.variantId, "isInitialized" in testeab]`)
	require.NoError(t, err)
	assert.Equal(t, []any{nil, true}, v.Export())
}
