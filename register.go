// Package abtest registers the A/B test SDK as the k6 extension
// k6/x/abtest.
package abtest

import (
	"github.com/grafana/xk6-abtest/browser"

	k6modules "go.k6.io/k6/js/modules"
)

func init() {
	k6modules.Register("k6/x/abtest", browser.New())
}
