package common

import (
	"context"
	"sync"

	"github.com/grafana/xk6-abtest/api"
	"github.com/grafana/xk6-abtest/k6ext"
)

// pending is the untyped view of a Task.
type pending interface {
	Done() <-chan struct{}
}

// SDK wires the experiment client, the conversion reporter and the click
// classifier to a document.
type SDK struct {
	opts        *Options
	logger      *Logger
	state       *State
	experiments *ExperimentClient
	reports     *ConversionReporter

	tasksMu sync.Mutex
	tasks   []pending
}

// NewSDK validates opts and builds an SDK. A missing test identifier is
// logged and returned as ErrMissingTestID; the SDK must not be activated
// in that case. A nil transport gets an HTTPTransport.
func NewSDK(opts *Options, transport Transport, logger *Logger) (*SDK, error) {
	if logger == nil {
		logger = NewLogger(NullLogger(), nil)
	}
	if err := opts.Validate(); err != nil {
		logger.Errorf("SDK:New", "%v", err)
		return nil, err
	}
	if transport == nil {
		transport = NewHTTPTransport(nil, nil, logger)
	}

	tags := map[string]string{"test_id": opts.TestID}
	for k, v := range opts.MetricTags {
		tags[k] = v
	}
	metrics := k6ext.NewEmitter(opts.Registry, opts.Samples, tags)
	state := NewState()

	return &SDK{
		opts:        opts,
		logger:      logger,
		state:       state,
		experiments: NewExperimentClient(opts, transport, state, metrics, logger),
		reports:     NewConversionReporter(opts, transport, state, metrics, logger),
	}, nil
}

// Activate builds an SDK and initializes it on doc. On a configuration
// error nothing is installed on doc and no request is made.
func Activate(
	ctx context.Context, opts *Options, doc api.Document, transport Transport, logger *Logger,
) (*SDK, error) {
	sdk, err := NewSDK(opts, transport, logger)
	if err != nil {
		return nil, err
	}
	sdk.Init(ctx, doc)

	return sdk, nil
}

// State returns the read-only assignment state for host code.
func (s *SDK) State() *State {
	return s.state
}

// Init activates the SDK on doc. It runs right away when the DOM is
// already interactive and otherwise once the DOM is ready. Every call
// starts an assignment attempt and registers one more click listener.
func (s *SDK) Init(ctx context.Context, doc api.Document) {
	var once sync.Once
	start := func() {
		once.Do(func() { s.start(ctx, doc) })
	}

	if doc.ReadyState().Ready() {
		start()
		return
	}
	s.logger.Debugf("SDK:Init", "waiting for DOMContentLoaded")
	doc.OnDOMContentLoaded(start)
}

func (s *SDK) start(ctx context.Context, doc api.Document) {
	s.track(s.experiments.RequestAssignment(ctx))
	doc.AddClickListener(func(target api.Node) {
		s.handleClick(ctx, target)
	})
	s.logger.Infof("SDK:start", "SDK initialized")
}

func (s *SDK) handleClick(ctx context.Context, target api.Node) {
	label, ok := Classify(target)
	if !ok {
		return
	}
	s.track(s.reports.ReportClick(ctx, label))
}

// RequestAssignment triggers an assignment request outside of Init.
func (s *SDK) RequestAssignment(ctx context.Context) *Task[ExperimentAssignment] {
	t := s.experiments.RequestAssignment(ctx)
	s.track(t)
	return t
}

// ReportClick reports a conversion for label outside of click handling.
func (s *SDK) ReportClick(ctx context.Context, label string) *Task[ConversionEvent] {
	t := s.reports.ReportClick(ctx, label)
	s.track(t)
	return t
}

func (s *SDK) track(t pending) {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()

	live := s.tasks[:0]
	for _, p := range s.tasks {
		select {
		case <-p.Done():
		default:
			live = append(live, p)
		}
	}
	s.tasks = append(live, t)
}

// Wait blocks until every task started so far has resolved or ctx is
// done. Nothing requires calling it.
func (s *SDK) Wait(ctx context.Context) error {
	s.tasksMu.Lock()
	tasks := append([]pending{}, s.tasks...)
	s.tasksMu.Unlock()

	for _, t := range tasks {
		select {
		case <-t.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}
