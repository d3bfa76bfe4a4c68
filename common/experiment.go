package common

import (
	"context"
	"time"

	"github.com/grafana/xk6-abtest/k6ext"
)

// ExperimentClient requests the variant assignment of the visitor. At
// most one request is outstanding at any time.
type ExperimentClient struct {
	testID    string
	url       string
	timeout   time.Duration
	transport Transport
	state     *State
	metrics   *k6ext.Emitter
	logger    *Logger
}

// NewExperimentClient returns a client publishing into state.
func NewExperimentClient(
	opts *Options, transport Transport, state *State, metrics *k6ext.Emitter, logger *Logger,
) *ExperimentClient {
	if metrics == nil {
		metrics = k6ext.NewEmitter(nil, nil, nil)
	}
	if logger == nil {
		logger = NewLogger(NullLogger(), nil)
	}
	return &ExperimentClient{
		testID:    opts.TestID,
		url:       opts.endpoint("/experiment"),
		timeout:   opts.AssignmentTimeout,
		transport: transport,
		state:     state,
		metrics:   metrics,
		logger:    logger,
	}
}

// RequestAssignment asks the API for a variant and publishes it into the
// state. It does not block.
//
// If a request is already outstanding no request is made and the task
// resolves with ErrAssignmentInFlight. If a variant is already assigned
// the task resolves with it. Failures are logged; the state then stays
// uninitialized and nothing is retried.
func (c *ExperimentClient) RequestAssignment(ctx context.Context) *Task[ExperimentAssignment] {
	a, status := c.state.beginAssignment()
	switch status {
	case assignDone:
		c.logger.Debugf("ExperimentClient:RequestAssignment", "variant %q already assigned", a.VariantID)
		return resolvedTask(a, nil)
	case assignBusy:
		c.logger.Debugf("ExperimentClient:RequestAssignment", "assignment already in progress")
		return resolvedTask(ExperimentAssignment{}, ErrAssignmentInFlight)
	}

	task := newTask[ExperimentAssignment]()
	go func() {
		a, err := c.fetch(ctx)
		// cleared before the task resolves so waiters may request again
		c.state.endAssignment()
		task.resolve(a, err)
	}()

	return task
}

func (c *ExperimentClient) fetch(ctx context.Context) (ExperimentAssignment, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var a ExperimentAssignment
	start := time.Now()
	err := c.transport.Post(ctx, "abtest.experiment", c.url, ExperimentRequest{TestID: c.testID}, &a)
	c.metrics.Duration(ctx, time.Since(start))
	if err == nil && a.VariantID == "" {
		err = ErrEmptyVariant
	}
	if err != nil {
		c.logger.Errorf("ExperimentClient:fetch", "failed to obtain variant: %v", err)
		c.metrics.Add(ctx, c.metrics.AssignmentFailures, 1)
		return ExperimentAssignment{}, err
	}
	if a.Sections == nil {
		a.Sections = []Section{}
	}

	if !c.state.publish(a) {
		c.logger.Warnf("ExperimentClient:fetch", "variant already assigned, ignoring %q", a.VariantID)
	}
	c.metrics.Add(ctx, c.metrics.Assignments, 1)
	c.logger.Infof("ExperimentClient:fetch", "variant obtained: %s", a.VariantID)
	c.logger.Debugf("ExperimentClient:fetch", "sections obtained: %v", a.Sections)

	return a, nil
}
