package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grafana/xk6-abtest/api"
	"github.com/grafana/xk6-abtest/common"
	"github.com/grafana/xk6-abtest/dom"
	"github.com/grafana/xk6-abtest/storage"
)

func buildReplayCmd(a *app) *cobra.Command {
	var (
		sdk    sdkFlags
		clicks []string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "replay PAGE.html",
		Short: "Run the SDK on a saved page and replay clicks",
		Long: `Parse a saved HTML page, configure the SDK from its script tag, request
an assignment and click the elements with the given ids in order once
the assignment has settled. A JSON report of the final state and of
every click is printed or written to --out.`,
		Example: `  abtest replay shop.html --click buy --click newsletter
  abtest replay shop.html --api-url http://localhost:9000 --click buy --out run/report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p storage.FilePersister = &storage.WriterPersister{W: cmd.OutOrStdout()}
			if out != "" {
				p = &storage.LocalFilePersister{}
			}
			return a.replay(cmd.Context(), args[0], &sdk, clicks, p, out)
		},
	}

	sdk.register(cmd)
	cmd.Flags().StringArrayVar(&clicks, "click", nil, "id of an element to click (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to this file instead of stdout")

	return cmd
}

func (a *app) replay(
	ctx context.Context, page string, flags *sdkFlags, clicks []string, p storage.FilePersister, out string,
) error {
	data, err := os.ReadFile(page)
	if err != nil {
		return fmt.Errorf("reading page: %w", err)
	}
	opts, err := common.ParseScriptAttributes(bytes.NewReader(data))
	if err != nil {
		return err
	}
	flags.apply(opts)
	doc, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}

	sdk, err := common.Activate(ctx, opts, doc, a.transport(), a.logger)
	if err != nil {
		return err
	}
	doc.SetReadyState(api.ReadyStateInteractive)
	if err := sdk.Wait(ctx); err != nil {
		return err
	}
	doc.SetReadyState(api.ReadyStateComplete)

	report := replayReport{
		TestID:  opts.TestID,
		APIBase: opts.APIBase,
	}
	for _, id := range clicks {
		report.Clicks = append(report.Clicks, a.click(doc, sdk.State(), id))
	}
	if err := sdk.Wait(ctx); err != nil {
		return err
	}
	report.State = sdk.State().Snapshot()

	return storage.PersistJSON(ctx, p, out, report)
}

func (a *app) click(doc *dom.Document, state *common.State, id string) clickReport {
	cr := clickReport{Element: id}
	n := doc.GetElementByID(id)
	if n == nil {
		a.logger.Warnf("abtest:replay", "no element with id %q", id)
		return cr
	}
	cr.Found = true

	if label, ok := common.Classify(doc.Node(n)); ok {
		cr.Actionable = true
		cr.Event = common.EventPrefix + label
		cr.Reported = state.IsInitialized()
	}
	doc.Click(n)

	return cr
}
