// Command abtest runs the experiment SDK outside of a browser.
//
// Serve the development API:
//
//	abtest serve --test checkout:A=50,B=50
//
// Replay clicks on a saved page against an API:
//
//	abtest replay page.html --click buy --click signup --out report.json
//
// Drive a live Chrome tab over the DevTools protocol:
//
//	abtest attach ws://127.0.0.1:9222/devtools/browser/<id> --url https://shop.test --test-id checkout
//
// Without a DevTools URL, attach launches a local browser found on the
// PATH or named by ABTEST_BROWSER_PATH.
//
// The API base URL and test identifier can also be set with the
// ABTEST_API_URL and ABTEST_TEST_ID environment variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grafana/xk6-abtest/browserprocess"
)

// populated by ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() {
		if r := recover(); r != nil {
			browserprocess.ForceProcessShutdown()
			panic(r)
		}
	}()

	if err := buildRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1) //nolint:gocritic
	}
}
