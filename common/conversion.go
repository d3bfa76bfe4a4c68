package common

import (
	"context"
	"time"

	"github.com/grafana/xk6-abtest/k6ext"
)

// EventPrefix is prepended to the label of every click conversion.
const EventPrefix = "click-"

// ConversionReporter reports conversions for the assigned variant.
type ConversionReporter struct {
	testID    string
	url       string
	transport Transport
	state     *State
	metrics   *k6ext.Emitter
	logger    *Logger
}

// NewConversionReporter returns a reporter reading the variant from state.
func NewConversionReporter(
	opts *Options, transport Transport, state *State, metrics *k6ext.Emitter, logger *Logger,
) *ConversionReporter {
	if metrics == nil {
		metrics = k6ext.NewEmitter(nil, nil, nil)
	}
	if logger == nil {
		logger = NewLogger(NullLogger(), nil)
	}
	return &ConversionReporter{
		testID:    opts.TestID,
		url:       opts.endpoint("/conversion"),
		transport: transport,
		state:     state,
		metrics:   metrics,
		logger:    logger,
	}
}

// ReportClick sends a "click-<label>" conversion. It does not block.
//
// Before a variant is assigned it logs a warning and the task resolves with
// ErrNotInitialized without any request. Failures are logged and the event
// is lost.
func (r *ConversionReporter) ReportClick(ctx context.Context, label string) *Task[ConversionEvent] {
	variantID, ok := r.state.currentVariant()
	if !ok {
		r.logger.Warnf("ConversionReporter:ReportClick", "%v", ErrNotInitialized)
		return resolvedTask(ConversionEvent{}, ErrNotInitialized)
	}

	ev := ConversionEvent{
		TestID:    r.testID,
		VariantID: variantID,
		Event:     EventPrefix + label,
	}
	task := newTask[ConversionEvent]()
	go func() {
		start := time.Now()
		err := r.transport.Post(ctx, "abtest.conversion", r.url, ev, nil)
		r.metrics.Duration(ctx, time.Since(start))
		if err != nil {
			r.logger.Errorf("ConversionReporter:ReportClick", "failed to register conversion %q: %v", ev.Event, err)
			r.metrics.Add(ctx, r.metrics.ConversionFailures, 1)
		} else {
			r.logger.Infof("ConversionReporter:ReportClick", "conversion registered: %s", ev.Event)
			r.metrics.Add(ctx, r.metrics.Conversions, 1)
		}
		task.resolve(ev, err)
	}()

	return task
}
