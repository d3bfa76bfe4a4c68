package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafana/xk6-abtest/common"

	k6common "go.k6.io/k6/js/common"
	k6modulestest "go.k6.io/k6/js/modulestest"
	k6lib "go.k6.io/k6/lib"
	k6metrics "go.k6.io/k6/metrics"
)

// moduleAPI is the surface of the k6/x/abtest default export.
type moduleAPI interface {
	Version() string
	NewSDK(opts goja.Value) (*common.SDK, error)
	ParseScriptAttributes(page string) (*common.Options, error)
	Classify(page, elementID string) (string, bool)
}

// sdkAPI is the surface of the object returned by newSDK.
type sdkAPI interface {
	RequestAssignment() (common.ExperimentAssignment, error)
	ReportClick(label string) (string, error)
	State() *goja.Object
	InstallState() error
	Wait() error
}

func newTestVU(t *testing.T) moduleVU {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	registry := k6metrics.NewRegistry()
	vu := &k6modulestest.VU{
		CtxField:     ctx,
		RuntimeField: goja.New(),
		InitEnvField: &k6common.InitEnvironment{
			TestPreInitState: &k6lib.TestPreInitState{
				Registry: registry,
			},
		},
	}
	return moduleVU{VU: vu, registry: registry, logger: common.NewLogger(nil, nil)}
}

// TestMappings tests that all the methods of the API are mapped to the
// module, and that nothing else is.
func TestMappings(t *testing.T) {
	t.Parallel()

	vu := newTestVU(t)
	sdk, err := common.NewSDK(&common.Options{TestID: "home"}, nil, nil)
	require.NoError(t, err)

	for name, tt := range map[string]struct {
		apiInterface any
		mapp         func() mapping
	}{
		"module": {
			apiInterface: (*moduleAPI)(nil),
			mapp:         func() mapping { return mapModule(vu) },
		},
		"sdk": {
			apiInterface: (*sdkAPI)(nil),
			mapp:         func() mapping { return mapSDK(vu, sdk) },
		},
	} {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			typ := reflect.TypeOf(tt.apiInterface).Elem()
			mapped := tt.mapp()
			tested := make(map[string]bool)
			for i := 0; i < typ.NumMethod(); i++ {
				m := toFirstLetterLower(typ.Method(i).Name)
				if _, ok := mapped[m]; !ok {
					t.Errorf("method %q not found", m)
				}
				tested[m] = true
			}
			for m := range mapped {
				if !tested[m] {
					t.Errorf("method %q is redundant", m)
				}
			}
		})
	}
}

func toFirstLetterLower(s string) string {
	if strings.HasPrefix(s, "NewSDK") {
		return "newSDK" + s[6:]
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func TestModuleScript(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/experiment", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"variantId":"B","sections":[{"id":1}]}`))
	})
	mux.HandleFunc("/conversion", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	vu := newTestVU(t)
	rt := vu.Runtime()
	require.NoError(t, rt.Set("abtest", mapModule(vu)))
	require.NoError(t, rt.Set("apiBase", srv.URL))

	v, err := rt.RunString(`
		const sdk = abtest.newSDK({ testId: "home", apiBase: apiBase, assignmentTimeout: "5s", tags: { scenario: "buy" } });
		sdk.installState();
		const before = testeab.isInitialized;
		const a = sdk.requestAssignment();
		const ev = sdk.reportClick("Buy");
		sdk.wait();
		[before, a.variantId, a.sections.length === 1, ev, testeab.variantId, testeab.isInitialized, testeab.sections[0].id === 1];
	`)
	require.NoError(t, err)
	assert.Equal(t, []any{false, "B", true, "click-Buy", "B", true, true}, v.Export())
}

func TestModuleHelpers(t *testing.T) {
	t.Parallel()

	vu := newTestVU(t)
	rt := vu.Runtime()
	require.NoError(t, rt.Set("abtest", mapModule(vu)))

	v, err := rt.RunString(`
		const page = '<script data-test-id="home" data-api-url="https://api.test"></script>' +
			'<div id="card" role="button"><span id="in">Open</span></div><p id="p">x</p>';
		const o = abtest.parseScriptAttributes(page);
		[o.testId, o.apiBase, abtest.classify(page, "in"), abtest.classify(page, "p")];
	`)
	require.NoError(t, err)
	assert.Equal(t, []any{"home", "https://api.test", "Open", nil}, v.Export())

	_, err = rt.RunString(`abtest.classify("<p></p>", "missing")`)
	assert.ErrorContains(t, err, "no element with id")

	_, err = rt.RunString(`abtest.newSDK({ apiBase: "http://x" })`)
	assert.ErrorContains(t, err, "testId is required")
}
