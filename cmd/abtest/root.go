package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grafana/xk6-abtest/common"
	"github.com/grafana/xk6-abtest/otel"
	"github.com/grafana/xk6-abtest/trace"
)

const (
	envAPIURL   = "ABTEST_API_URL"
	envTestID   = "ABTEST_TEST_ID"
	envLogLevel = "ABTEST_LOG_LEVEL"

	defaultAssignmentTimeout = 10 * time.Second
)

// app holds what every subcommand shares. It is populated before any
// subcommand runs.
type app struct {
	logLevel     string
	noColor      bool
	otlpEndpoint string
	otlpInsecure bool

	logger *common.Logger
	tp     otel.TraceProvider
	tracer *trace.Tracer
}

func buildRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "abtest",
		Short:        "Experiment assignment and click-conversion client",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.shutdown()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error); or set "+envLogLevel)
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored log output")
	flags.StringVar(&a.otlpEndpoint, "otlp-endpoint", "", "export traces over OTLP HTTP to this host:port")
	flags.BoolVar(&a.otlpInsecure, "otlp-insecure", false, "export traces without TLS")

	cmd.AddCommand(
		buildServeCmd(a),
		buildReplayCmd(a),
		buildAttachCmd(a),
	)

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	level := a.logLevel
	if v, ok := os.LookupEnv(envLogLevel); ok && !cmd.Flags().Changed("log-level") {
		level = v
	}

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&common.ConsoleFormatter{NoColor: a.noColor})
	a.logger = common.NewLogger(log, nil)
	if err := a.logger.SetLevel(level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if a.otlpEndpoint == "" {
		a.tp = otel.NewNoopTraceProvider()
	} else {
		tp, err := otel.NewTraceProvider(cmd.Context(), "http", a.otlpEndpoint, a.otlpInsecure, version)
		if err != nil {
			return fmt.Errorf("setting up tracing: %w", err)
		}
		a.tp = tp
		a.logger.Debugf("abtest:setup", "exporting traces to %q", a.otlpEndpoint)
	}
	a.tracer = trace.NewTracer(log, a.tp, map[string]string{"abtest.command": cmd.Name()})

	return nil
}

func (a *app) shutdown() error {
	if a.tp == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down tracing: %w", err)
	}
	return nil
}

func (a *app) transport() common.Transport {
	return common.NewHTTPTransport(&http.Client{}, a.tracer, a.logger)
}

// sdkFlags are the SDK options every client command accepts.
type sdkFlags struct {
	testID            string
	apiURL            string
	assignmentTimeout time.Duration
}

func (f *sdkFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.testID, "test-id", "", "experiment test identifier; or set "+envTestID)
	cmd.Flags().StringVar(&f.apiURL, "api-url", "", "experiment API base URL; or set "+envAPIURL)
	cmd.Flags().DurationVar(&f.assignmentTimeout, "assignment-timeout", defaultAssignmentTimeout,
		"give up on an assignment request after this long (0 waits forever)")
}

// apply overrides opts with the environment and then with the flags.
func (f *sdkFlags) apply(opts *common.Options) {
	if v := os.Getenv(envTestID); v != "" {
		opts.TestID = v
	}
	if v := os.Getenv(envAPIURL); v != "" {
		opts.APIBase = v
	}
	if f.testID != "" {
		opts.TestID = f.testID
	}
	if f.apiURL != "" {
		opts.APIBase = f.apiURL
	}
	opts.AssignmentTimeout = f.assignmentTimeout
}
