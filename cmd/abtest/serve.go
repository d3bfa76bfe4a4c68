package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/grafana/xk6-abtest/devserver"
)

func buildServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		tests []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the in-memory experiment API",
		Long: `Run an in-memory experiment API answering POST /experiment and
POST /conversion for local development. Tests are declared with --test
and are lost on exit.`,
		Example: `  abtest serve --test checkout:A=50,B=50
  abtest serve --addr :9000 --test hero:control=90,bold=10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := devserver.NewStore()
			for _, def := range tests {
				t, err := devserver.ParseTestFlag(def)
				if err != nil {
					return err
				}
				if err := store.AddTest(t); err != nil {
					return fmt.Errorf("adding test %q: %w", t.ID, err)
				}
				a.logger.Infof("abtest:serve", "serving test %q with %d variants", t.ID, len(t.Variants))
			}

			srv := devserver.New(store, nil, a.logger)
			err := srv.ListenAndServe(cmd.Context(), addr, func(bound net.Addr) {
				fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s\n", bound)
			})
			if err != nil {
				return err
			}

			for _, id := range store.TestIDs() {
				counts, err := store.Counts(id)
				if err != nil {
					continue
				}
				for _, c := range counts {
					a.logger.Infof("abtest:serve", "test:%q variant:%q impressions:%d conversions:%d rate:%.3f",
						id, c.VariantID, c.Impressions, c.Conversions, c.Rate())
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8000", "address to listen on")
	cmd.Flags().StringArrayVar(&tests, "test", nil, "test definition testId:variant=percent,... (repeatable)")

	return cmd
}
