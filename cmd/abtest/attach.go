package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grafana/xk6-abtest/browserprocess"
	"github.com/grafana/xk6-abtest/cdp"
	"github.com/grafana/xk6-abtest/chromium"
	"github.com/grafana/xk6-abtest/common"
)

const drainTimeout = 5 * time.Second

func buildAttachCmd(a *app) *cobra.Command {
	var (
		sdk          sdkFlags
		url          string
		duration     time.Duration
		closeBrowser bool
		headless     bool
	)

	cmd := &cobra.Command{
		Use:   "attach [WS_URL]",
		Short: "Run the SDK against a live Chrome tab",
		Long: `Connect to a Chrome DevTools endpoint, open a tab on --url and run the
SDK against it: the tab gets a variant assigned, window.testeab mirrors
the SDK state and every actionable click in the tab is reported. Runs
until interrupted or until --duration elapses.

Without WS_URL a local browser is launched and closed on exit.`,
		Example: `  abtest attach ws://127.0.0.1:9222/devtools/browser/<id> --url http://localhost:3000 --test-id checkout
  abtest attach --headless=false --url http://localhost:3000 --test-id checkout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := common.NewOptions()
			sdk.apply(opts)
			if err := opts.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			if len(args) == 1 {
				return a.attach(ctx, args[0], url, opts, closeBrowser)
			}
			proc, err := a.launch(ctx, headless)
			if err != nil {
				return err
			}
			defer proc.Terminate()

			return a.attach(ctx, proc.WsURL(), url, opts, false)
		},
	}

	sdk.register(cmd)
	cmd.Flags().StringVar(&url, "url", "about:blank", "page to open in the tab")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 runs until interrupted)")
	cmd.Flags().BoolVar(&closeBrowser, "close-browser", false, "close the browser at WS_URL on exit")
	cmd.Flags().BoolVar(&headless, "headless", true, "run a launched browser without a window")

	return cmd
}

func (a *app) launch(ctx context.Context, headless bool) (*browserprocess.Process, error) {
	path, err := chromium.ExecutablePath()
	if err != nil {
		return nil, err
	}
	a.logger.Infof("abtest:attach", "launching %s", path)

	return browserprocess.Launch(ctx, browserprocess.LaunchOptions{
		ExecutablePath: path,
		Args:           chromium.Args(headless),
	}, a.logger)
}

func (a *app) attach(ctx context.Context, wsURL, url string, opts *common.Options, closeBrowser bool) error {
	sdk, err := common.NewSDK(opts, a.transport(), a.logger)
	if err != nil {
		return err
	}

	client, err := cdp.Connect(ctx, wsURL, a.logger)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	v, err := client.Browser.GetVersion(ctx)
	if err != nil {
		return err
	}
	a.logger.Infof("abtest:attach", "connected to %s (protocol %s)", v.Product, v.Protocol)

	page, err := cdp.OpenPage(ctx, client, url, a.logger)
	if err != nil {
		return fmt.Errorf("opening %q: %w", url, err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			a.logger.Debugf("abtest:attach", "closing page: %v", err)
		}
	}()

	sdk.State().OnChange(func(snap common.StateSnapshot) {
		if err := page.PublishState(ctx, snap); err != nil {
			a.logger.Warnf("abtest:attach", "%v", err)
		}
	})
	sdk.Init(ctx, page)

	select {
	case <-ctx.Done():
	case <-client.Done():
		return fmt.Errorf("browser connection lost: %w", cdp.ErrClientClosed)
	}

	dctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := sdk.Wait(dctx); err != nil {
		a.logger.Warnf("abtest:attach", "pending reports not sent: %v", err)
	}
	if variant, ok := sdk.State().VariantID(); ok {
		a.logger.Infof("abtest:attach", "finished with variant %q", variant)
	}
	if closeBrowser {
		return client.Browser.Close(dctx)
	}

	return nil
}
