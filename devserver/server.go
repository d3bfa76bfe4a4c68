// Package devserver is an in-memory experiment API for local development
// and end-to-end tests of the SDK. It serves the same two endpoints the
// SDK talks to and nothing else.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jwriter"

	"github.com/grafana/xk6-abtest/common"
)

const (
	// RequestIDHeader carries the request identifier in both directions.
	RequestIDHeader = "X-Request-Id"

	maxBodySize     = 64 << 10
	shutdownTimeout = 5 * time.Second
)

// errValidation marks a malformed request body.
var errValidation = errors.New("validation error")

// Server routes the experiment API to a Store.
type Server struct {
	store    *Store
	selector *Selector
	logger   *common.Logger
	router   chi.Router
}

// New returns a server backed by store. Nil selector and logger get
// defaults.
func New(store *Store, selector *Selector, logger *common.Logger) *Server {
	if selector == nil {
		selector = NewSelector(nil)
	}
	if logger == nil {
		logger = common.NewLogger(common.NullLogger(), nil)
	}
	s := &Server{
		store:    store,
		selector: selector,
		logger:   logger,
	}
	s.router = s.routes()

	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(cors)

	r.Get("/", s.handleRoot)
	r.Get("/experiment", s.handleExperimentQuery)
	r.Post("/experiment", s.handleExperiment)
	r.Post("/conversion", s.handleConversion)

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done. ready, if not nil,
// receives the bound address once the listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if ready != nil {
		ready(ln.Addr())
	}
	s.logger.Infof("devserver:ListenAndServe", "serving on http://%s", ln.Addr())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "A/B testing development API"})
}

func (s *Server) handleExperimentQuery(w http.ResponseWriter, r *http.Request) {
	s.assign(w, r.URL.Query().Get("testId"))
}

func (s *Server) handleExperiment(w http.ResponseWriter, r *http.Request) {
	var req common.ExperimentRequest
	if err := s.readJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.assign(w, req.TestID)
}

func (s *Server) assign(w http.ResponseWriter, testID string) {
	if strings.TrimSpace(testID) == "" {
		s.writeError(w, fmt.Errorf("%w: testId is required", errValidation))
		return
	}
	t, err := s.store.ActiveTest(testID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	v := s.selector.Select(t.Variants)
	s.store.AddImpression(t.ID, v.ID)
	s.logger.Debugf("devserver:assign", "test:%q variant:%q", t.ID, v.ID)

	sections := v.Sections
	if sections == nil {
		sections = []common.Section{}
	}
	s.writeJSON(w, http.StatusOK, common.ExperimentAssignment{
		VariantID: v.ID,
		Sections:  sections,
	})
}

func (s *Server) handleConversion(w http.ResponseWriter, r *http.Request) {
	var ev common.ConversionEvent
	if err := s.readJSON(r, &ev); err != nil {
		s.writeError(w, err)
		return
	}
	var missing []string
	for name, v := range map[string]string{"testId": ev.TestID, "variantId": ev.VariantID, "event": ev.Event} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		s.writeError(w, fmt.Errorf("%w: missing %s", errValidation, strings.Join(missing, ", ")))
		return
	}

	if _, err := s.store.AddConversion(ev.TestID, ev.VariantID, ev.Event); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debugf("devserver:conversion", "test:%q variant:%q event:%q", ev.TestID, ev.VariantID, ev.Event)

	s.writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) readJSON(r *http.Request, v easyjson.Unmarshaler) error {
	data, err := ioutil.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", errValidation, err)
	}
	if err := easyjson.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", errValidation, err)
	}

	return nil
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, ErrTestNotFound), errors.Is(err, ErrTestInactive):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrInvalidDistribution), errors.Is(err, errValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrTestExists):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code, detail := statusOf(err)
	if code == http.StatusInternalServerError {
		s.logger.Errorf("devserver:writeError", "%v", err)
	}
	s.writeJSON(w, code, errorResponse{Detail: detail})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v easyjson.Marshaler) {
	var jw jwriter.Writer
	v.MarshalEasyJSON(&jw)
	if jw.Error != nil {
		s.logger.Errorf("devserver:writeJSON", "encoding response: %v", jw.Error)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := jw.DumpTo(w); err != nil {
		s.logger.Debugf("devserver:writeJSON", "writing response: %v", err)
	}
}

// requestID tags every request and response with an identifier, keeping
// the one sent by the client.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debugf("devserver:request", "id:%s %s %s status:%d took:%s",
			r.Header.Get(RequestIDHeader), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// cors lets pages from any origin call the API with credentials.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Expose-Headers", RequestIDHeader)

		if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
			next.ServeHTTP(w, r)
			return
		}
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
			h.Set("Access-Control-Allow-Headers", reqHeaders)
		}
		h.Set("Access-Control-Max-Age", "600")
		w.WriteHeader(http.StatusNoContent)
	})
}
