// Package browser provides the k6 JS module exposing the A/B test SDK to
// test scripts.
package browser

import (
	"context"
	"errors"
	"os"

	"github.com/dop251/goja"

	"github.com/grafana/xk6-abtest/common"
	"github.com/grafana/xk6-abtest/k6ext"

	k6common "go.k6.io/k6/js/common"
	k6modules "go.k6.io/k6/js/modules"
	k6metrics "go.k6.io/k6/metrics"
)

const version = "0.1.0"

type (
	// RootModule is the global module instance that will create module
	// instances for each VU.
	RootModule struct{}

	// ModuleInstance represents an instance of the JS module.
	ModuleInstance struct {
		mod mapping
	}
)

// moduleVU carries module specific VU information.
type moduleVU struct {
	k6modules.VU

	// registry is captured in the init context, where custom metrics
	// are registered.
	registry *k6metrics.Registry
	logger   *common.Logger
}

// samples returns the VU sample channel, which only exists once the VU
// runs.
func (vu moduleVU) samples() chan<- k6metrics.SampleContainer {
	if st := vu.State(); st != nil {
		return st.Samples
	}
	return nil
}

func (vu moduleVU) context() context.Context {
	if ctx := vu.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

var (
	_ k6modules.Module   = &RootModule{}
	_ k6modules.Instance = &ModuleInstance{}
)

// New returns a pointer to a new RootModule instance.
func New() *RootModule {
	return &RootModule{}
}

// NewModuleInstance implements the k6modules.Module interface to return
// a new instance for each VU.
func (*RootModule) NewModuleInstance(vu k6modules.VU) k6modules.Instance {
	if _, ok := os.LookupEnv("K6_ABTEST_DISABLE_RUN"); ok {
		msg := "Disable run flag enabled, A/B test SDK aborted."
		if m, ok := os.LookupEnv("K6_ABTEST_DISABLE_RUN_MSG"); ok {
			msg = m
		}

		k6common.Throw(vu.Runtime(), errors.New(msg))
	}

	mvu := moduleVU{VU: vu, logger: newLogger()}
	if env := vu.InitEnv(); env != nil && env.TestPreInitState != nil {
		mvu.registry = env.Registry
		k6ext.RegisterCustomMetrics(mvu.registry)
	}

	return &ModuleInstance{mod: mapModule(mvu)}
}

// Exports returns the exports of the JS module so that it can be used in test
// scripts.
func (mi *ModuleInstance) Exports() k6modules.Exports {
	return k6modules.Exports{Default: mi.mod}
}

// newLogger logs through logrus at the level named by
// K6_ABTEST_LOG_LEVEL, warnings by default.
func newLogger() *common.Logger {
	logger := common.NewLogger(nil, nil)
	logger.Logger.SetOutput(os.Stderr)
	logger.Logger.SetFormatter(&common.ConsoleFormatter{NoColor: true})
	level := "warn"
	if l, ok := os.LookupEnv("K6_ABTEST_LOG_LEVEL"); ok {
		level = l
	}
	if err := logger.SetLevel(level); err != nil {
		logger.Warnf("browser:newLogger", "invalid K6_ABTEST_LOG_LEVEL %q: %v", level, err)
	}
	return logger
}

// mapModule to the JS module.
func mapModule(vu moduleVU) mapping {
	rt := vu.Runtime()

	return mapping{
		"version": version,
		"newSDK": func(opts goja.Value) (mapping, error) {
			popts, err := parseSDKOptions(rt, opts)
			if err != nil {
				return nil, err
			}
			popts.Registry = vu.registry
			popts.Samples = vu.samples()

			sdk, err := common.NewSDK(popts, nil, vu.logger)
			if err != nil {
				return nil, err //nolint:wrapcheck
			}
			return mapSDK(vu, sdk), nil
		},
		"parseScriptAttributes": func(page string) (mapping, error) {
			opts, err := parseScriptAttributes(page)
			if err != nil {
				return nil, err
			}
			return mapping{
				"testId":  opts.TestID,
				"apiBase": opts.APIBase,
			}, nil
		},
		"classify": func(page, elementID string) (goja.Value, error) {
			label, ok, err := classifyElement(page, elementID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return goja.Null(), nil
			}
			return rt.ToValue(label), nil
		},
	}
}
