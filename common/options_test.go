package common

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		opts    func(*Options)
		wantErr string
	}{
		{name: "ok", opts: func(o *Options) { o.TestID = "home" }},
		{name: "missing_test_id", opts: func(o *Options) {}, wantErr: ErrMissingTestID.Error()},
		{name: "blank_test_id", opts: func(o *Options) { o.TestID = "   " }, wantErr: ErrMissingTestID.Error()},
		{
			name: "negative_timeout",
			opts: func(o *Options) {
				o.TestID = "home"
				o.AssignmentTimeout = -time.Second
			},
			wantErr: "must not be negative",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := NewOptions()
			tc.opts(opts)
			err := opts.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestOptionsEndpoint(t *testing.T) {
	t.Parallel()

	opts := NewOptions()
	assert.Equal(t, "http://localhost:8000/experiment", opts.endpoint("/experiment"))

	opts.APIBase = "https://api.example.com/v1/"
	assert.Equal(t, "https://api.example.com/v1/conversion", opts.endpoint("/conversion"))

	opts.APIBase = ""
	assert.Equal(t, DefaultAPIBase+"/conversion", opts.endpoint("/conversion"))
}

func TestParseScriptAttributes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		page        string
		wantTestID  string
		wantAPIBase string
	}{
		{
			name:        "tagged_script",
			page:        `<html><head><script src="sdk.js" data-test-id="home" data-api-url="https://api.example.com"></script></head></html>`,
			wantTestID:  "home",
			wantAPIBase: "https://api.example.com",
		},
		{
			name:        "default_api_base",
			page:        `<script src="sdk.js" data-test-id=" pricing "></script>`,
			wantTestID:  "pricing",
			wantAPIBase: DefaultAPIBase,
		},
		{
			name:        "blank_api_url",
			page:        `<script data-test-id="home" data-api-url="  "></script>`,
			wantTestID:  "home",
			wantAPIBase: DefaultAPIBase,
		},
		{
			name:        "last_tagged_script_wins",
			page:        `<script data-test-id="a"></script><script data-test-id="b"></script><script src="other.js"></script>`,
			wantTestID:  "b",
			wantAPIBase: DefaultAPIBase,
		},
		{
			name:        "untagged_script",
			page:        `<script src="sdk.js" data-api-url="http://127.0.0.1:9000"></script>`,
			wantAPIBase: "http://127.0.0.1:9000",
		},
		{
			name:        "no_script",
			page:        `<p>nothing here</p>`,
			wantAPIBase: DefaultAPIBase,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts, err := ParseScriptAttributes(strings.NewReader(tc.page))
			require.NoError(t, err)
			assert.Equal(t, tc.wantTestID, opts.TestID)
			assert.Equal(t, tc.wantAPIBase, opts.APIBase)
		})
	}
}
