package devserver

import (
	"context"
	"io/ioutil"
	"math/rand"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mailru/easyjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafana/xk6-abtest/api"
	"github.com/grafana/xk6-abtest/common"
	"github.com/grafana/xk6-abtest/dom"
)

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()

	store := newTestStore(t)
	srv := httptest.NewServer(New(store, NewSelector(rand.NewSource(1)), nil))
	t.Cleanup(srv.Close)

	return srv, store
}

func do(t *testing.T, method, url, body string, header http.Header) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	data, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, data
}

func detail(t *testing.T, data []byte) string {
	t.Helper()

	var er errorResponse
	require.NoError(t, easyjson.Unmarshal(data, &er))
	return er.Detail
}

func TestServerExperiment(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t)

	t.Run("post", func(t *testing.T) {
		resp, data := do(t, http.MethodPost, srv.URL+"/experiment", `{"testId":"checkout"}`, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var got common.ExperimentAssignment
		require.NoError(t, easyjson.Unmarshal(data, &got))
		assert.Contains(t, []string{"A", "B"}, got.VariantID)
		assert.NotNil(t, got.Sections)
	})
	t.Run("get", func(t *testing.T) {
		resp, data := do(t, http.MethodGet, srv.URL+"/experiment?testId=checkout", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(data), `"variantId":`)
	})
	t.Run("unknown_test", func(t *testing.T) {
		resp, data := do(t, http.MethodPost, srv.URL+"/experiment", `{"testId":"nope"}`, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, detail(t, data), "nope")
	})
	t.Run("missing_test_id", func(t *testing.T) {
		resp, data := do(t, http.MethodPost, srv.URL+"/experiment", `{}`, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, detail(t, data), "testId is required")
	})
	t.Run("malformed", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, srv.URL+"/experiment", `{"testId":`, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	counts, err := store.Counts("checkout")
	require.NoError(t, err)
	assert.Equal(t, 2, counts[0].Impressions+counts[1].Impressions, "only successful assignments are recorded")

	t.Run("inactive", func(t *testing.T) {
		require.NoError(t, store.SetActive("checkout", false))
		resp, _ := do(t, http.MethodPost, srv.URL+"/experiment", `{"testId":"checkout"}`, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServerConversion(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t)

	resp, data := do(t, http.MethodPost, srv.URL+"/conversion",
		`{"testId":"checkout","variantId":"A","event":"click-Buy"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(data))

	resp, data = do(t, http.MethodPost, srv.URL+"/conversion",
		`{"testId":"nope","variantId":"A","event":"click-Buy"}`, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, detail(t, data))

	resp, data = do(t, http.MethodPost, srv.URL+"/conversion", `{"testId":"checkout"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, detail(t, data), "missing event, variantId")

	convs := store.Conversions("checkout")
	require.Len(t, convs, 1)
	assert.Equal(t, "click-Buy", convs[0].Event)
}

func TestServerMiddleware(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	t.Run("request_id", func(t *testing.T) {
		resp, _ := do(t, http.MethodGet, srv.URL+"/", "", nil)
		assert.Len(t, resp.Header.Get(RequestIDHeader), 36)

		resp, _ = do(t, http.MethodGet, srv.URL+"/", "", http.Header{RequestIDHeader: {"abc"}})
		assert.Equal(t, "abc", resp.Header.Get(RequestIDHeader))
	})
	t.Run("cors_preflight", func(t *testing.T) {
		resp, _ := do(t, http.MethodOptions, srv.URL+"/experiment", "", http.Header{
			"Origin":                         {"http://shop.test"},
			"Access-Control-Request-Method":  {"POST"},
			"Access-Control-Request-Headers": {"content-type"},
		})
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "http://shop.test", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "content-type", resp.Header.Get("Access-Control-Allow-Headers"))
		assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
	})
	t.Run("cors_simple", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, srv.URL+"/experiment", `{"testId":"checkout"}`,
			http.Header{"Origin": {"http://shop.test"}})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	})
	t.Run("method_not_allowed", func(t *testing.T) {
		resp, _ := do(t, http.MethodDelete, srv.URL+"/conversion", "", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestServerListenAndServe(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	addrc := make(chan net.Addr, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- New(newTestStore(t), nil, nil).ListenAndServe(ctx, "127.0.0.1:0", func(a net.Addr) { addrc <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrc:
	case err := <-errc:
		t.Fatalf("server exited: %v", err)
	}
	resp, _ := do(t, http.MethodGet, "http://"+addr.String()+"/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

const shopPage = `<!doctype html>
<html><head>
<script src="/sdk.js" data-test-id="checkout" data-api-url="%s"></script>
</head><body>
	<button id="buy" aria-label="Buy now">Buy</button>
	<p id="text">Read me</p>
</body></html>`

func TestServerWithSDK(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t)
	page := strings.Replace(shopPage, "%s", srv.URL, 1)

	opts, err := common.ParseScriptAttributes(strings.NewReader(page))
	require.NoError(t, err)
	require.Equal(t, srv.URL, opts.APIBase)
	doc, err := dom.Parse(strings.NewReader(page))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sdk, err := common.Activate(ctx, opts, doc, nil, nil)
	require.NoError(t, err)
	doc.SetReadyState(api.ReadyStateInteractive)
	require.NoError(t, sdk.Wait(ctx))

	variant, ok := sdk.State().VariantID()
	require.True(t, ok)
	assert.True(t, sdk.State().IsInitialized())
	require.Len(t, sdk.State().Sections(), 1)

	doc.Click(doc.GetElementByID("text"))
	doc.Click(doc.GetElementByID("buy"))
	require.NoError(t, sdk.Wait(ctx))

	convs := store.Conversions("checkout")
	require.Len(t, convs, 1)
	assert.Equal(t, "click-Buy now", convs[0].Event)
	assert.Equal(t, variant, convs[0].VariantID)

	counts, err := store.Counts("checkout")
	require.NoError(t, err)
	assert.Equal(t, 1, counts[0].Impressions+counts[1].Impressions)
}
