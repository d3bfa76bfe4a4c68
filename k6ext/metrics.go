package k6ext

import (
	"context"
	"time"

	k6metrics "go.k6.io/k6/metrics"
)

// CustomMetrics are the custom k6 metrics used by xk6-abtest.
type CustomMetrics struct {
	Assignments        *k6metrics.Metric
	AssignmentFailures *k6metrics.Metric
	Conversions        *k6metrics.Metric
	ConversionFailures *k6metrics.Metric
	RequestDuration    *k6metrics.Metric
}

// RegisterCustomMetrics creates and registers our custom metrics with the k6
// VU Registry and returns our internal struct pointer.
func RegisterCustomMetrics(registry *k6metrics.Registry) *CustomMetrics {
	return &CustomMetrics{
		Assignments: registry.MustNewMetric(
			"abtest_assignments", k6metrics.Counter),
		AssignmentFailures: registry.MustNewMetric(
			"abtest_assignment_failures", k6metrics.Counter),
		Conversions: registry.MustNewMetric(
			"abtest_conversions", k6metrics.Counter),
		ConversionFailures: registry.MustNewMetric(
			"abtest_conversion_failures", k6metrics.Counter),
		RequestDuration: registry.MustNewMetric(
			"abtest_request_duration", k6metrics.Trend, k6metrics.Time),
	}
}

// PushIfNotDone is a helper function to push a sample to a channel if the
// context is not done. It returns true if the sample was pushed, false if the
// context was done.
func PushIfNotDone(ctx context.Context, output chan<- k6metrics.SampleContainer, sample k6metrics.SampleContainer) bool {
	select {
	case <-ctx.Done():
		return false
	case output <- sample:
		return true
	}
}

// Emitter pushes CustomMetrics samples tagged with a fixed tag set. A nil
// Emitter, or one without an output, drops every sample.
type Emitter struct {
	*CustomMetrics

	tags   *k6metrics.TagSet
	output chan<- k6metrics.SampleContainer
}

// NewEmitter registers the custom metrics on registry and returns an
// Emitter writing to output. A nil registry gets a fresh one.
func NewEmitter(
	registry *k6metrics.Registry, output chan<- k6metrics.SampleContainer, tags map[string]string,
) *Emitter {
	if registry == nil {
		registry = k6metrics.NewRegistry()
	}
	ts := registry.RootTagSet()
	for k, v := range tags {
		ts = ts.With(k, v)
	}

	return &Emitter{
		CustomMetrics: RegisterCustomMetrics(registry),
		tags:          ts,
		output:        output,
	}
}

// Add pushes value for metric.
func (e *Emitter) Add(ctx context.Context, metric *k6metrics.Metric, value float64) {
	if e == nil || e.output == nil {
		return
	}
	PushIfNotDone(ctx, e.output, k6metrics.Sample{
		TimeSeries: k6metrics.TimeSeries{
			Metric: metric,
			Tags:   e.tags,
		},
		Time:  time.Now(),
		Value: value,
	})
}

// Duration pushes a request duration sample in milliseconds.
func (e *Emitter) Duration(ctx context.Context, d time.Duration) {
	if e == nil {
		return
	}
	e.Add(ctx, e.RequestDuration, k6metrics.D(d))
}
