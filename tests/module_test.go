package tests

import (
	"context"
	"math/rand"
	"net/http/httptest"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafana/xk6-abtest/browser"
	"github.com/grafana/xk6-abtest/common"
	"github.com/grafana/xk6-abtest/devserver"

	k6common "go.k6.io/k6/js/common"
	k6modulestest "go.k6.io/k6/js/modulestest"
	k6lib "go.k6.io/k6/lib"
	k6metrics "go.k6.io/k6/metrics"
)

type testEnv struct {
	rt    *goja.Runtime
	store *devserver.Store
	url   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := devserver.NewStore()
	require.NoError(t, store.AddTest(devserver.Test{
		ID: "checkout",
		Variants: []devserver.Variant{
			{ID: "bold", Distribution: 100, Sections: []common.Section{{"id": "hero", "contentUrl": "/hero-bold.html"}}},
		},
	}))
	srv := httptest.NewServer(devserver.New(store, devserver.NewSelector(rand.NewSource(7)), nil))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	vu := &k6modulestest.VU{
		CtxField:     ctx,
		RuntimeField: goja.New(),
		InitEnvField: &k6common.InitEnvironment{
			TestPreInitState: &k6lib.TestPreInitState{
				Registry: k6metrics.NewRegistry(),
			},
		},
	}
	mi := browser.New().NewModuleInstance(vu)
	require.NoError(t, vu.RuntimeField.Set("abtest", mi.Exports().Default))
	require.NoError(t, vu.RuntimeField.Set("apiBase", srv.URL))

	return &testEnv{rt: vu.RuntimeField, store: store, url: srv.URL}
}

func TestModuleAssignsAndReports(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	v, err := env.rt.RunString(`
		const sdk = abtest.newSDK({ testId: "checkout", apiBase: apiBase });
		sdk.installState();
		const a = sdk.requestAssignment();
		const again = sdk.requestAssignment();
		const ev = sdk.reportClick("Buy now");
		sdk.wait();
		[a.variantId, again.variantId, a.sections[0].contentUrl, ev, testeab.variantId, testeab.isInitialized];
	`)
	require.NoError(t, err)
	assert.Equal(t, []any{"bold", "bold", "/hero-bold.html", "click-Buy now", "bold", true}, v.Export())

	convs := env.store.Conversions("checkout")
	require.Len(t, convs, 1)
	assert.Equal(t, "bold", convs[0].VariantID)
	assert.Equal(t, "click-Buy now", convs[0].Event)

	counts, err := env.store.Counts("checkout")
	require.NoError(t, err)
	assert.Equal(t, 1, counts[0].Impressions, "an assigned SDK does not ask again")
}

func TestModuleFromPage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.NoError(t, env.rt.Set("page", `<html><head>
		<script src="/sdk.js" data-test-id="checkout" data-api-url="`+env.url+`"></script>
		</head><body><div role="button" id="card"><b id="inner">Open card</b></div></body></html>`))

	v, err := env.rt.RunString(`
		const opts = abtest.parseScriptAttributes(page);
		const sdk = abtest.newSDK(opts);
		sdk.requestAssignment();
		const label = abtest.classify(page, "inner");
		sdk.reportClick(label);
	`)
	require.NoError(t, err)
	assert.Equal(t, "click-Open card", v.Export())
	assert.Len(t, env.store.Conversions("checkout"), 1)
}

func TestModuleFailures(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.rt.RunString(`const sdk = abtest.newSDK({ testId: "unknown", apiBase: apiBase }); sdk.installState();`)
	require.NoError(t, err)

	assertExceptionContains(t, env.rt, `sdk.requestAssignment()`, "status: 404")
	assertExceptionContains(t, env.rt, `sdk.reportClick("Buy")`, common.ErrNotInitialized.Error())
	assertExceptionContains(t, env.rt, `abtest.newSDK({})`, common.ErrMissingTestID.Error())
	assertExceptionContains(t, env.rt, `abtest.newSDK({ testId: "x", assignmentTimeout: "soon" })`, "assignmentTimeout")

	v, err := env.rt.RunString(`[testeab.isInitialized, testeab.variantId]`)
	require.NoError(t, err)
	assert.Equal(t, []any{false, nil}, v.Export())
	assert.Empty(t, env.store.Conversions("unknown"))
}

func TestModuleDisabled(t *testing.T) {
	t.Setenv("K6_ABTEST_DISABLE_RUN", "")
	t.Setenv("K6_ABTEST_DISABLE_RUN_MSG", "abtest is off")

	vu := &k6modulestest.VU{RuntimeField: goja.New()}
	assert.Panics(t, func() {
		browser.New().NewModuleInstance(vu)
	})
}
