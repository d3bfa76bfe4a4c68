package browser

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/grafana/xk6-abtest/common"
	"github.com/grafana/xk6-abtest/dom"
)

// mapSDK to the JS module. Calls block the VU until the request settles
// and throw on failure, unlike the page-facing SDK which only logs.
func mapSDK(vu moduleVU, sdk *common.SDK) mapping {
	rt := vu.Runtime()

	return mapping{
		"requestAssignment": func() (mapping, error) {
			a, err := sdk.RequestAssignment(vu.context()).Wait(vu.context())
			if err != nil {
				return nil, err //nolint:wrapcheck
			}
			sections := make([]any, 0, len(a.Sections))
			for _, s := range a.Sections {
				sections = append(sections, map[string]any(s))
			}
			return mapping{
				"variantId": a.VariantID,
				"sections":  sections,
			}, nil
		},
		"reportClick": func(label string) (string, error) {
			ev, err := sdk.ReportClick(vu.context(), label).Wait(vu.context())
			if err != nil {
				return "", err //nolint:wrapcheck
			}
			return ev.Event, nil
		},
		"state": func() *goja.Object {
			return MapState(rt, sdk.State())
		},
		"installState": func() error {
			return Install(rt, sdk.State())
		},
		"wait": func() error {
			return sdk.Wait(vu.context()) //nolint:wrapcheck
		},
	}
}

func parseScriptAttributes(page string) (*common.Options, error) {
	opts, err := common.ParseScriptAttributes(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing script attributes: %w", err)
	}
	return opts, nil
}

// classifyElement classifies a click on the element of page whose id is
// elementID.
func classifyElement(page, elementID string) (string, bool, error) {
	doc, err := dom.Parse(strings.NewReader(page))
	if err != nil {
		return "", false, err //nolint:wrapcheck
	}
	n := doc.GetElementByID(elementID)
	if n == nil {
		return "", false, fmt.Errorf("no element with id %q", elementID)
	}
	label, ok := common.Classify(doc.Node(n))

	return label, ok, nil
}
