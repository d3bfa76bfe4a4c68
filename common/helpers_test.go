package common

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mailru/easyjson"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an experiment API recording every call it receives.
type fakeAPI struct {
	srv *httptest.Server

	mu               sync.Mutex
	experimentCalls  int
	experimentBodies []ExperimentRequest
	conversions      []ConversionEvent

	experimentStatus int
	experimentBody   string
	conversionStatus int
	// hold blocks the experiment handler until it is closed.
	hold chan struct{}
}

type fakeAPIOption func(*fakeAPI)

func withExperimentResponse(status int, body string) fakeAPIOption {
	return func(f *fakeAPI) {
		f.experimentStatus = status
		f.experimentBody = body
	}
}

func withConversionStatus(status int) fakeAPIOption {
	return func(f *fakeAPI) {
		f.conversionStatus = status
	}
}

// withHeldExperiment keeps assignment requests outstanding until
// release is called.
func withHeldExperiment() fakeAPIOption {
	return func(f *fakeAPI) {
		f.hold = make(chan struct{})
	}
}

func newFakeAPI(t *testing.T, opts ...fakeAPIOption) *fakeAPI {
	t.Helper()

	f := &fakeAPI{
		experimentStatus: http.StatusOK,
		experimentBody:   `{"variantId":"B","sections":[{"id":1}]}`,
		conversionStatus: http.StatusOK,
	}
	for _, opt := range opts {
		opt(f)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/experiment", func(w http.ResponseWriter, r *http.Request) {
		var req ExperimentRequest
		readBody(t, r, &req)

		f.mu.Lock()
		f.experimentCalls++
		f.experimentBodies = append(f.experimentBodies, req)
		hold := f.hold
		f.mu.Unlock()

		if hold != nil {
			<-hold
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.experimentStatus)
		_, _ = w.Write([]byte(f.experimentBody))
	})
	mux.HandleFunc("/conversion", func(w http.ResponseWriter, r *http.Request) {
		var ev ConversionEvent
		readBody(t, r, &ev)

		f.mu.Lock()
		f.conversions = append(f.conversions, ev)
		f.mu.Unlock()

		w.WriteHeader(f.conversionStatus)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	t.Cleanup(f.release)

	return f
}

func readBody(t *testing.T, r *http.Request, v easyjson.Unmarshaler) {
	t.Helper()

	data, err := ioutil.ReadAll(r.Body)
	require.NoError(t, err)
	require.NoError(t, easyjson.Unmarshal(data, v))
	require.Equal(t, "application/json", r.Header.Get("Content-Type"))
}

// release lets held assignment requests complete.
func (f *fakeAPI) release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hold != nil {
		close(f.hold)
		f.hold = nil
	}
}

func (f *fakeAPI) calls() (experiments int, conversions []ConversionEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.experimentCalls, append([]ConversionEvent{}, f.conversions...)
}

// waitForExperimentCalls waits until the API has seen n assignment requests.
func (f *fakeAPI) waitForExperimentCalls(t *testing.T, n int) {
	t.Helper()

	require.Eventually(t, func() bool {
		calls, _ := f.calls()
		return calls >= n
	}, time.Second, 5*time.Millisecond)
}

func newTestOptions(apiBase string) *Options {
	opts := NewOptions()
	opts.TestID = "home"
	opts.APIBase = apiBase
	return opts
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
