package tests

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/require"
)

// assertExceptionContains runs script and requires it to throw an
// exception whose message contains expErrMsg.
func assertExceptionContains(t *testing.T, rt *goja.Runtime, script, expErrMsg string) {
	t.Helper()

	_, err := rt.RunString(script)
	var exc *goja.Exception
	require.ErrorAs(t, err, &exc)
	require.ErrorContains(t, err, expErrMsg)
}
