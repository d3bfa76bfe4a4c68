package browser

import (
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/grafana/xk6-abtest/common"
)

const (
	optionTestID            = "testId"
	optionAPIBase           = "apiBase"
	optionAssignmentTimeout = "assignmentTimeout"
	optionTags              = "tags"
)

// parseSDKOptions parses the options object given to newSDK. Unknown
// keys are ignored. The result is not validated.
func parseSDKOptions(rt *goja.Runtime, opts goja.Value) (*common.Options, error) {
	popts := common.NewOptions()

	if !gojaValueExists(opts) {
		return popts, nil // return the default options
	}

	o := opts.ToObject(rt)
	for _, k := range o.Keys() {
		v := o.Get(k)
		if !gojaValueExists(v) {
			continue
		}
		switch k {
		case optionTestID:
			popts.TestID = v.String()
		case optionAPIBase:
			popts.APIBase = v.String()
		case optionAssignmentTimeout:
			d, err := parseTimeout(v)
			if err != nil {
				return nil, fmt.Errorf("parsing %s option: %w", k, err)
			}
			popts.AssignmentTimeout = d
		case optionTags:
			tags := v.ToObject(rt)
			for _, tk := range tags.Keys() {
				popts.MetricTags[tk] = tags.Get(tk).String()
			}
		}
	}

	return popts, nil
}

// parseTimeout accepts milliseconds as a number or a Go duration string.
func parseTimeout(v goja.Value) (time.Duration, error) {
	switch x := v.Export().(type) {
	case int64:
		return time.Duration(x) * time.Millisecond, nil
	case float64:
		return time.Duration(x * float64(time.Millisecond)), nil
	case string:
		d, err := time.ParseDuration(x)
		if err != nil {
			return 0, err //nolint:wrapcheck
		}
		return d, nil
	default:
		return 0, fmt.Errorf("unsupported value %v", x)
	}
}
