package browser

import (
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafana/xk6-abtest/common"
)

func TestParseSDKOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		rt := goja.New()
		opts, err := parseSDKOptions(rt, goja.Undefined())
		require.NoError(t, err)
		assert.Equal(t, common.DefaultAPIBase, opts.APIBase)
		assert.Empty(t, opts.TestID)
		assert.Zero(t, opts.AssignmentTimeout)
	})

	t.Run("values", func(t *testing.T) {
		t.Parallel()

		rt := goja.New()
		opts, err := parseSDKOptions(rt, rt.ToValue(map[string]any{
			"testId":            "pricing",
			"apiBase":           "https://api.test",
			"assignmentTimeout": 1500,
			"tags":              map[string]any{"page": "home"},
			"unknown":           true,
		}))
		require.NoError(t, err)
		assert.Equal(t, "pricing", opts.TestID)
		assert.Equal(t, "https://api.test", opts.APIBase)
		assert.Equal(t, 1500*time.Millisecond, opts.AssignmentTimeout)
		assert.Equal(t, map[string]string{"page": "home"}, opts.MetricTags)
	})

	t.Run("duration_string", func(t *testing.T) {
		t.Parallel()

		rt := goja.New()
		opts, err := parseSDKOptions(rt, rt.ToValue(map[string]any{"assignmentTimeout": "2s"}))
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, opts.AssignmentTimeout)
	})

	t.Run("bad_timeout", func(t *testing.T) {
		t.Parallel()

		rt := goja.New()
		_, err := parseSDKOptions(rt, rt.ToValue(map[string]any{"assignmentTimeout": "soon"}))
		assert.ErrorContains(t, err, "assignmentTimeout")
	})
}
